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

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"mlex/database"
	"mlex/merror"
	"mlex/pipeline"
	"mlex/rdb"
	"mlex/rdb/results"
)

const (
	DefaultTickerInterval = 2 * time.Second
)

// JobLogger is a sink for per-job processing records (typically
// a monitoring database writer).
type JobLogger interface {
	Log(rec rdb.JobLog)
}

type recoveredError struct {
	error
}

// Worker picks analysis queries from the Redis queue and publishes
// their results. All the linguistic work happens here; the API
// server only dispatches and waits.
type Worker struct {
	ID         string
	messages   <-chan *redis.Message
	radapter   *rdb.Adapter
	pipeline   *pipeline.Pipeline
	db         *database.AnalysisDB
	wordCache  *WordCache
	ticker     *time.Ticker
	jobLogger  JobLogger
	currJobLog *rdb.JobLog
}

func (w *Worker) publishResult(res results.SerializableResult, channel string) error {
	ans, err := rdb.CreateWorkerResult(res)
	if err != nil {
		return err
	}
	if w.currJobLog != nil {
		w.currJobLog.End = time.Now()
		w.currJobLog.Err = res.Err()
		w.jobLogger.Log(*w.currJobLog)
		w.currJobLog = nil
	}
	return w.radapter.PublishResult(channel, ans)
}

func (w *Worker) sendPublishingErr(query rdb.Query, err error) {
	res := results.NewErrorResult(query.Func, err)
	if err := w.publishResult(res, query.Channel); err != nil {
		log.Error().Err(err).Msg("failed to publish general publishing error")
	}
}

func (w *Worker) runQueryProtected(query rdb.Query) (ansErr error) {
	defer func() {
		if r := recover(); r != nil {
			ansErr = recoveredError{merror.PanicValueToErr(r)}
		}
	}()
	switch query.Func {
	case "analyzeText":
		var args rdb.TextAnalysisArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans := w.analyzeText(args)
		if err := w.publishResult(ans, query.Channel); err != nil {
			w.sendPublishingErr(query, err)
			return err
		}
	case "analyzeWord":
		var args rdb.WordAnalysisArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans := w.analyzeWord(args)
		if err := w.publishResult(ans, query.Channel); err != nil {
			w.sendPublishingErr(query, err)
			return err
		}
	case "analyzeSentence":
		var args rdb.SentenceAnalysisArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans := w.analyzeSentence(args)
		if err := w.publishResult(ans, query.Channel); err != nil {
			w.sendPublishingErr(query, err)
			return err
		}
	case "lemmatize":
		var args rdb.LemmatizeArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans := w.lemmatize(args)
		if err := w.publishResult(ans, query.Channel); err != nil {
			w.sendPublishingErr(query, err)
			return err
		}
	case "addMorpheme":
		var args rdb.AddMorphemeArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return err
		}
		ans := w.addMorpheme(args)
		if err := w.publishResult(ans, query.Channel); err != nil {
			w.sendPublishingErr(query, err)
			return err
		}
	default:
		ans := &results.ErrorResult{Error: fmt.Sprintf("unknown query function: %s", query.Func)}
		if err := w.publishResult(ans, query.Channel); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) tryNextQuery() error {
	// a small random delay spreads wake-ups among concurrent workers
	time.Sleep(time.Duration(rand.Intn(40)) * time.Millisecond)
	query, err := w.radapter.DequeueQuery()
	if err == rdb.ErrorEmptyQueue {
		return nil

	} else if err != nil {
		return err
	}
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("received query")

	isActive, err := w.radapter.SomeoneListens(query)
	if err != nil {
		return err
	}
	if !isActive {
		log.Warn().
			Str("func", query.Func).
			Str("channel", query.Channel).
			Msg("worker found an inactive query")
		return nil
	}

	w.currJobLog = &rdb.JobLog{
		WorkerID: w.ID,
		Func:     query.Func,
		Begin:    time.Now(),
	}

	err = w.runQueryProtected(query)
	var rcvErr recoveredError
	if errors.As(err, &rcvErr) {
		ans := &results.ErrorResult{
			Error: fmt.Sprintf("worker panicked: %s", rcvErr.Error()),
			Func:  query.Func,
		}
		if err := w.publishResult(ans, query.Channel); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Str("workerId", w.ID).Msg("worker exiting")
				return
			case <-w.ticker.C:
				if err := w.tryNextQuery(); err != nil {
					log.Error().Err(err).Msg("failed to process query")
				}
			case msg := <-w.messages:
				if msg != nil && msg.Payload == rdb.MsgNewQuery {
					if err := w.tryNextQuery(); err != nil {
						log.Error().Err(err).Msg("failed to process query")
					}
				}
			}
		}
	}()
}

func (w *Worker) Stop(ctx context.Context) error {
	w.ticker.Stop()
	return nil
}

func NewWorker(
	workerID string,
	radapter *rdb.Adapter,
	messages <-chan *redis.Message,
	pl *pipeline.Pipeline,
	db *database.AnalysisDB,
	jobLogger JobLogger,
) *Worker {
	return &Worker{
		ID:        workerID,
		radapter:  radapter,
		messages:  messages,
		pipeline:  pl,
		db:        db,
		wordCache: NewWordCache(),
		ticker:    time.NewTicker(DefaultTickerInterval),
		jobLogger: jobLogger,
	}
}
