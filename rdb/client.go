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

package rdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"mlex/merror"
	"mlex/rdb/results"
)

const (
	MsgNewQuery                = "newQuery"
	MsgNewResult               = "newResult"
	DefaultQueueKey            = "mlexQueue"
	DefaultResultChannelPrefix = "mlexResults"
	DefaultQueryChannel        = "mlexQueries"
	DefaultResultExpiration    = 10 * time.Minute
	DefaultQueryAnswerTimeout  = 60 * time.Second
)

var (
	ErrorEmptyQueue = errors.New("no queries in the queue")
)

type Conf struct {
	Host                string `json:"host"`
	Port                int    `json:"port"`
	DB                  int    `json:"db"`
	Password            string `json:"password"`
	ChannelQuery        string `json:"channelQuery"`
	ChannelResultPrefix string `json:"channelResultPrefix"`
	CachePath           string `json:"cachePath"`
}

type Query struct {
	Channel string          `json:"channel"`
	Func    string          `json:"func"`
	Args    json.RawMessage `json:"args"`
}

func (q Query) ToJSON() (string, error) {
	ans, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(ans), nil
}

// NewQuery creates a query with serialized args.
func NewQuery(fn string, args any) (Query, error) {
	rawArgs, err := json.Marshal(args)
	if err != nil {
		return Query{}, fmt.Errorf("failed to serialize args for %s: %w", fn, err)
	}
	return Query{Func: fn, Args: rawArgs}, nil
}

func DecodeQuery(q string) (Query, error) {
	var ans Query
	err := json.Unmarshal([]byte(q), &ans)
	return ans, err
}

// Adapter provides access to the Redis-based query queue
// and to the pub/sub channels used to exchange worker results.
type Adapter struct {
	ctx                 context.Context
	c                   *redis.Client
	channelQuery        string
	channelResultPrefix string
	cachePath           string
}

func (a *Adapter) TestConnection(timeout time.Duration) error {
	tick := time.NewTicker(2 * time.Second)
	timeoutCh := time.After(timeout)
	for {
		select {
		case <-tick.C:
			if err := a.c.Ping(a.ctx).Err(); err == nil {
				return nil
			} else {
				log.Info().Err(err).Msg("waiting for Redis connection...")
			}
		case <-timeoutCh:
			return merror.TimeoutError{
				Msg: fmt.Sprintf("failed to connect to Redis within %s", timeout),
			}
		}
	}
}

func (a *Adapter) SomeoneListens(query Query) (bool, error) {
	cmd := a.c.PubSubNumSub(a.ctx, query.Channel)
	if cmd.Err() != nil {
		return false, fmt.Errorf("failed to check channel listeners: %w", cmd.Err())
	}
	return cmd.Val()[query.Channel] > 0, nil
}

// PublishQuery enqueues a new query and returns a channel
// providing the worker result (or a timeout error result in
// case no worker responds within the timeout).
func (a *Adapter) PublishQuery(query Query, timeout time.Duration) (<-chan *WorkerResult, error) {
	query.Channel = fmt.Sprintf("%s:%s", a.channelResultPrefix, uuid.New().String())
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		Msg("publishing query")

	msg, err := query.ToJSON()
	if err != nil {
		return nil, err
	}
	if err := a.c.LPush(a.ctx, DefaultQueueKey, msg).Err(); err != nil {
		return nil, err
	}
	sub := a.c.Subscribe(a.ctx, query.Channel)
	ans := make(chan *WorkerResult)

	go func() {
		defer sub.Close()
		defer close(ans)
		result := new(WorkerResult)
		select {
		case item := <-sub.Channel():
			cmd := a.c.Get(a.ctx, item.Payload)
			if cmd.Err() != nil {
				result.AttachValue(results.NewErrorResult(query.Func, cmd.Err()))

			} else if err := json.Unmarshal([]byte(cmd.Val()), &result); err != nil {
				result.AttachValue(results.NewErrorResult(query.Func, err))
			}
		case <-time.After(timeout):
			result.AttachValue(results.NewErrorResult(
				query.Func,
				merror.TimeoutError{
					Msg: fmt.Sprintf("no worker response within %s", timeout),
				},
			))
		}
		ans <- result
	}()
	return ans, a.c.Publish(a.ctx, a.channelQuery, MsgNewQuery).Err()
}

func (a *Adapter) DequeueQuery() (Query, error) {
	cmd := a.c.RPop(a.ctx, DefaultQueueKey)
	if errors.Is(cmd.Err(), redis.Nil) {
		return Query{}, ErrorEmptyQueue
	}
	if cmd.Err() != nil {
		return Query{}, fmt.Errorf("failed to dequeue query: %w", cmd.Err())
	}
	q, err := DecodeQuery(cmd.Val())
	if err != nil {
		return Query{}, fmt.Errorf("failed to deserialize query: %w", err)
	}
	return q, nil
}

func (a *Adapter) PublishResult(channelName string, value *WorkerResult) error {
	log.Debug().
		Str("channel", channelName).
		Str("resultType", value.ResultType.String()).
		Msg("publishing result")
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	a.c.Set(a.ctx, channelName, string(data), DefaultResultExpiration)
	return a.c.Publish(a.ctx, channelName, channelName).Err()
}

func (a *Adapter) Subscribe() <-chan *redis.Message {
	sub := a.c.Subscribe(a.ctx, a.channelQuery)
	return sub.Channel()
}

func NewAdapter(conf *Conf, ctx context.Context) *Adapter {
	chRes := conf.ChannelResultPrefix
	chQuery := conf.ChannelQuery
	if chRes == "" {
		chRes = DefaultResultChannelPrefix
		log.Warn().
			Str("channel", chRes).
			Msg("Redis channel for results not specified, using default")
	}
	if chQuery == "" {
		chQuery = DefaultQueryChannel
		log.Warn().
			Str("channel", chQuery).
			Msg("Redis channel for queries not specified, using default")
	}
	return &Adapter{
		c: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ctx:                 ctx,
		channelQuery:        chQuery,
		channelResultPrefix: chRes,
		cachePath:           conf.CachePath,
	}
}
