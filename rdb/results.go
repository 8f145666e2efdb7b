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
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mlex/rdb/results"
)

// Args of the supported worker functions. The Func value of a
// query decides which one applies (see worker.runQueryProtected).

type TextAnalysisArgs struct {
	Text              string `json:"text"`
	AnalyzeMorphology bool   `json:"analyzeMorphology"`
	StoreResult       bool   `json:"storeResult"`
}

type WordAnalysisArgs struct {
	Word string `json:"word"`
}

type SentenceAnalysisArgs struct {
	Sentence string `json:"sentence"`
}

type LemmatizeArgs struct {
	Text string `json:"text"`
}

type AddMorphemeArgs struct {
	Form     string `json:"form"`
	Kind     string `json:"kind"`
	Meaning  string `json:"meaning"`
	Language string `json:"language"`
}

// ----------------

// JobLog describes a single job processed by a worker.
type JobLog struct {
	WorkerID string    `json:"workerId"`
	Func     string    `json:"func"`
	Begin    time.Time `json:"begin"`
	End      time.Time `json:"end"`
	Err      error     `json:"error"`
}

func (jl *JobLog) TimeSpent() time.Duration {
	return jl.End.Sub(jl.Begin)
}

// ----------------

// WorkerResult is the envelope a worker publishes. The concrete
// Value type is determined by ResultType when deserializing.
type WorkerResult struct {
	ID           string                     `json:"id"`
	ResultType   results.ResultType         `json:"resultType"`
	Value        results.SerializableResult `json:"value"`
	HasUserError bool                       `json:"hasUserError"`
	ProcBegin    time.Time                  `json:"procBegin"`
	ProcEnd      time.Time                  `json:"procEnd"`
}

func (wr *WorkerResult) AttachValue(value results.SerializableResult) {
	wr.ResultType = value.Type()
	wr.Value = value
	wr.HasUserError = value.Err() != nil
}

func (wr *WorkerResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID           string             `json:"id"`
		ResultType   results.ResultType `json:"resultType"`
		Value        json.RawMessage    `json:"value"`
		HasUserError bool               `json:"hasUserError"`
		ProcBegin    time.Time          `json:"procBegin"`
		ProcEnd      time.Time          `json:"procEnd"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	wr.ID = aux.ID
	wr.ResultType = aux.ResultType
	wr.HasUserError = aux.HasUserError
	wr.ProcBegin = aux.ProcBegin
	wr.ProcEnd = aux.ProcEnd

	var value results.SerializableResult
	switch aux.ResultType {
	case results.ResultTypeTextAnalysis:
		value = &results.TextAnalysis{}
	case results.ResultTypeWordAnalysis:
		value = &results.WordAnalysis{}
	case results.ResultTypeSentenceAnalysis:
		value = &results.SentenceAnalysis{}
	case results.ResultTypeLemmata:
		value = &results.Lemmata{}
	case results.ResultTypeMorphemeAdded:
		value = &results.MorphemeAdded{}
	case results.ResultTypeError:
		value = &results.ErrorResult{}
	default:
		return fmt.Errorf("unknown result type: %s", aux.ResultType)
	}
	if len(aux.Value) > 0 {
		if err := json.Unmarshal(aux.Value, value); err != nil {
			return err
		}
	}
	wr.Value = value
	return nil
}

// CreateWorkerResult wraps a concrete result into a publishable
// envelope with a fresh id.
func CreateWorkerResult(value results.SerializableResult) (*WorkerResult, error) {
	ans := &WorkerResult{ID: uuid.New().String()}
	ans.AttachValue(value)
	return ans, nil
}
