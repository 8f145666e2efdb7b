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
	"strings"

	"mlex/morphology"
)

// WordCache caches single-word analyses within one worker.
// It must be cleared whenever the morpheme table changes,
// otherwise stale decompositions would survive the mutation.
type WordCache struct {
	data map[string]morphology.WordAnalysis
}

func (wc *WordCache) Get(word string) (morphology.WordAnalysis, bool) {
	v, ok := wc.data[strings.ToLower(word)]
	return v, ok
}

func (wc *WordCache) Set(word string, value morphology.WordAnalysis) {
	wc.data[strings.ToLower(word)] = value
}

func (wc *WordCache) Clear() {
	wc.data = make(map[string]morphology.WordAnalysis)
}

func NewWordCache() *WordCache {
	return &WordCache{
		data: make(map[string]morphology.WordAnalysis),
	}
}
