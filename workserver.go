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
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"mlex/cnf"
	"mlex/database"
	"mlex/engine"
	"mlex/monitoring"
	"mlex/morphology"
	"mlex/pipeline"
	"mlex/rdb"
	"mlex/segment"
	"mlex/worker"
)

func getWorkerID() (workerID string) {
	workerID = getEnv("WORKER_ID")
	if workerID == "" {
		workerID = strconv.Itoa(os.Getpid())
	}
	return
}

// -------

type NullLogger struct{}

func (n *NullLogger) Log(rec rdb.JobLog) {}

// -------

// bootstrapMorphemes builds the morpheme table the worker will use.
// With a database configured, stored custom morphemes extend the
// built-in inventory; otherwise the built-in one is used as is.
func bootstrapMorphemes(ctx context.Context, conf *cnf.Conf, db *database.AnalysisDB) *morphology.Table {
	table := morphology.NewDefaultTable()
	if db == nil {
		return table
	}
	entries, err := db.LoadMorphemes(ctx, conf.Language)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load stored morphemes")
		return table
	}
	var numLoaded int
	for _, entry := range entries {
		err := table.Add(entry.Form, entry.Kind, entry.Meaning)
		if err != nil {
			// built-in entries may have been persisted too
			log.Debug().
				Str("form", entry.Form).
				Str("kind", string(entry.Kind)).
				Msg("skipping already present morpheme")
			continue
		}
		numLoaded++
	}
	log.Info().
		Int("numLoaded", numLoaded).
		Int("tableSize", table.Size()).
		Msg("loaded stored morphemes")
	return table
}

func runWorker(conf *cnf.Conf) {
	workerID := getWorkerID()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	radapter := rdb.NewAdapter(conf.Redis, ctx)

	err := radapter.TestConnection(redisConnectionTestTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
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

	table := bootstrapMorphemes(ctx, conf, analysisDB)
	pl := pipeline.New(segment.NewSegmenter(), morphology.NewAnalyzer(table))

	var jobLogger worker.JobLogger
	if conf.Monitoring != nil {
		twriter, err := monitoring.NewTimescaleDBWriter(
			ctx, conf.Monitoring.DB, conf.TimezoneLocation())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize monitoring")
			return
		}
		twriter.Start(ctx)
		jobLogger = twriter

	} else {
		jobLogger = &NullLogger{}
	}

	ch := radapter.Subscribe()
	wrk := worker.NewWorker(workerID, radapter, ch, pl, analysisDB, jobLogger)

	services := []service{wrk}
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
