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

package monitoring

import (
	"context"
	"time"

	"github.com/czcorpus/hltscl"
	"github.com/rs/zerolog/log"

	"mlex/rdb"
)

/*
Expected tables:

create table mlex_operations_stats (
  "time" timestamp with time zone NOT NULL,
  num_jobs int,
  num_errors int,
  duration_secs float
);
select create_hypertable('mlex_operations_stats', 'time');

create table mlex_called_funcs (
  "time" timestamp with time zone NOT NULL,
  func text,
  num_calls int
);
select create_hypertable('mlex_called_funcs', 'time');
*/

type Conf struct {
	DB hltscl.PgConf `json:"db"`
}

// TimescaleDBWriter logs processed jobs into TimescaleDB
// hypertables. It is optional - workers run with a null logger
// when no monitoring database is configured.
type TimescaleDBWriter struct {
	tableWriter   *hltscl.TableWriter
	opsDataCh     chan<- hltscl.Entry
	errCh         <-chan hltscl.WriteError
	fnTableWriter *hltscl.TableWriter
	fnDataCh      chan<- hltscl.Entry
	fnErrCh       <-chan hltscl.WriteError
	location      *time.Location
}

func (sw *TimescaleDBWriter) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("about to close TimescaleDBWriter")
				return
			case err := <-sw.errCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", "mlex_operations_stats").
					Msg("error writing data to TimescaleDB")
			case err := <-sw.fnErrCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", "mlex_called_funcs").
					Msg("error writing data to TimescaleDB")
			}
		}
	}()
}

func (sw *TimescaleDBWriter) Stop(ctx context.Context) error {
	log.Warn().Msg("stopping TimescaleDBWriter")
	return nil
}

func (sw *TimescaleDBWriter) Log(item rdb.JobLog) {
	if sw.tableWriter != nil {
		var numErr int
		if item.Err != nil {
			numErr++
		}
		sw.opsDataCh <- *sw.tableWriter.NewEntry(time.Now().In(sw.location)).
			Int("num_jobs", 1).
			Int("num_errors", numErr).
			Float("duration_secs", item.TimeSpent().Seconds())

		sw.fnDataCh <- *sw.fnTableWriter.NewEntry(time.Now().In(sw.location)).
			Str("func", item.Func).
			Int("num_calls", 1)
	}
}

func NewTimescaleDBWriter(
	ctx context.Context,
	conf hltscl.PgConf,
	tz *time.Location,
) (*TimescaleDBWriter, error) {

	conn, err := hltscl.CreatePool(conf)
	if err != nil {
		return nil, err
	}
	twriter := hltscl.NewTableWriter(conn, "mlex_operations_stats", "time", tz)
	opsDataCh, errCh := twriter.Activate(
		ctx,
		hltscl.WithTimeout(20*time.Second),
	)
	fnWriter := hltscl.NewTableWriter(conn, "mlex_called_funcs", "time", tz)
	fnDataCh, fnErrCh := fnWriter.Activate(
		ctx,
		hltscl.WithTimeout(20*time.Second),
	)
	return &TimescaleDBWriter{
		tableWriter:   twriter,
		opsDataCh:     opsDataCh,
		errCh:         errCh,
		fnTableWriter: fnWriter,
		fnDataCh:      fnDataCh,
		fnErrCh:       fnErrCh,
		location:      tz,
	}, nil
}
