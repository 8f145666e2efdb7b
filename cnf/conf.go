// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of MLEX.
//
//  MLEX is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  MLEX is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with MLEX.  If not, see <https://www.gnu.org/licenses/>.

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"

	"mlex/engine"
	"mlex/monitoring"
	"mlex/rdb"
)

const (
	dfltServerWriteTimeoutSecs = 30
	dfltWorkerJobTimeoutSecs   = 30
	dfltLanguage               = "en"
	dfltTimeZone               = "Europe/Prague"
)

// Conf is a global configuration of the app. It is loaded once
// at startup and passed into constructors explicitly - nothing
// here is read from process-wide state later on.
type Conf struct {
	ListenAddress          string           `json:"listenAddress"`
	PublicURL              string           `json:"publicUrl"`
	ListenPort             int              `json:"listenPort"`
	ServerReadTimeoutSecs  int              `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int              `json:"serverWriteTimeoutSecs"`
	WorkerJobTimeoutSecs   int              `json:"workerJobTimeoutSecs"`
	CorsAllowedOrigins     []string         `json:"corsAllowedOrigins"`
	AuthHeaderName         string           `json:"authHeaderName"`
	AuthTokens             []string         `json:"authTokens"`
	Language               string           `json:"language"`
	Redis                  *rdb.Conf        `json:"redis"`
	DB                     *engine.DBConf   `json:"db"`
	Monitoring             *monitoring.Conf `json:"monitoring"`
	LogFile                string           `json:"logFile"`
	LogLevel               logging.LogLevel `json:"logLevel"`
	TimeZone               string           `json:"timeZone"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as ValidateAndDefaults
	// already tried to load the location
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

func (conf *Conf) WorkerJobTimeout() time.Duration {
	return time.Duration(conf.WorkerJobTimeoutSecs) * time.Second
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

func ValidateAndDefaults(conf *Conf) {
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.WorkerJobTimeoutSecs == 0 {
		conf.WorkerJobTimeoutSecs = dfltWorkerJobTimeoutSecs
		log.Warn().Msgf(
			"workerJobTimeoutSecs not specified, using default: %d",
			dfltWorkerJobTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s", conf.ListenAddress)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if conf.Language == "" {
		conf.Language = dfltLanguage
		log.Warn().Msgf("language not specified, using default: %s", dfltLanguage)
	}
	if conf.Redis == nil {
		log.Fatal().Msg("missing Redis configuration")
		return
	}
	if conf.DB == nil {
		log.Warn().Msg("no database configured - analysis results will not be persisted")
	}
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		log.Fatal().Err(err).Msg("invalid time zone")
	}
}
