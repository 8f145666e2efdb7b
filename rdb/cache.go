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
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"

	"mlex/rdb/results"
)

// CacheResult wraps a query-publishing function with a filesystem
// cache keyed by the query function and its args. With no cache
// path configured it is a plain pass-through. Cache write failures
// are logged but never fail the query itself.
func (a *Adapter) CacheResult(fn func(Query) (<-chan *WorkerResult, error), query Query) (<-chan *WorkerResult, error) {
	if len(a.cachePath) == 0 {
		return fn(query)
	}

	hashKey := sha1.Sum(append([]byte(query.Func), query.Args...))
	path := a.cachePath + "/" + query.Func + hex.EncodeToString(hashKey[:])

	pe := fs.PathExists(path)
	isf, _ := fs.IsFile(path)
	ans := make(chan *WorkerResult)
	if pe && isf {
		go func() {
			defer close(ans)
			result := new(WorkerResult)
			data, err := os.ReadFile(path)
			if err == nil {
				err = json.Unmarshal(data, result)
			}
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("failed to read cached result")
				result.AttachValue(results.NewErrorResult(query.Func, err))
			}
			ans <- result
		}()
		return ans, nil
	}

	resultCh, err := fn(query)
	if err != nil {
		return nil, err
	}
	go func() {
		defer close(ans)
		result := <-resultCh
		if result.Value != nil && result.Value.Err() == nil {
			if data, err := json.Marshal(result); err != nil {
				log.Error().Err(err).Msg("failed to serialize result for cache")

			} else if err := os.WriteFile(path, data, 0644); err != nil {
				log.Error().Err(err).Str("path", path).Msg("failed to write cached result")
			}
		}
		ans <- result
	}()
	return ans, nil
}
