// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"mlex/cnf"
	"mlex/database"
	"mlex/engine"
	"mlex/handlers"
	"mlex/rdb"
)

type apiServer struct {
	server   *http.Server
	conf     *cnf.Conf
	radapter *rdb.Adapter
	db       *database.AnalysisDB
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	actions := handlers.NewActions(api.conf, api.radapter, api.db)

	protected := engine.Group("/tools").Use(AuthRequired(api.conf))

	engine.GET("/", mkServerInfo(api.conf))

	engine.POST(
		"/analysis", actions.AnalyseText)

	engine.GET(
		"/analysis/word/:word", actions.AnalyseWord)

	engine.GET(
		"/analysis/sentence", actions.AnalyseSentence)

	engine.GET(
		"/lemmatize", actions.Lemmatize)

	engine.GET(
		"/texts/recent", actions.RecentTexts)

	engine.GET(
		"/analyses/:word", actions.WordHistory)

	engine.GET(
		"/morphemes/counts", actions.StorageCounts)

	protected.POST(
		"/morphemes", actions.AddMorpheme)

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (s *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down MLEX HTTP API server")
	return s.server.Shutdown(ctx)
}

func mkServerInfo(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
			"name":     "MLEX - a morphological and lexical analysis server",
			"language": conf.Language,
		})
	}
}

func runApiServer(
	conf *cnf.Conf,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	radapter := rdb.NewAdapter(conf.Redis, ctx)
	err := radapter.TestConnection(redisConnectionTestTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
		return
	}

	var analysisDB *database.AnalysisDB
	if conf.DB != nil {
		sqlDB, err := engine.Open(conf.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database connection")
			return
		}
		analysisDB = database.NewAnalysisDB(sqlDB)
	}

	server := newAPIServer(conf, radapter, analysisDB)

	services := []service{server}
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}

func newAPIServer(
	conf *cnf.Conf,
	radapter *rdb.Adapter,
	db *database.AnalysisDB,
) *apiServer {
	return &apiServer{
		conf:     conf,
		radapter: radapter,
		db:       db,
	}
}
