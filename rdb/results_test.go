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
	"testing"

	"github.com/stretchr/testify/assert"

	"mlex/morphology"
	"mlex/rdb/results"
)

func TestQueryRoundTrip(t *testing.T) {
	query, err := NewQuery("analyzeWord", WordAnalysisArgs{Word: "running"})
	assert.NoError(t, err)
	query.Channel = "mlexResults:xyz"
	msg, err := query.ToJSON()
	assert.NoError(t, err)
	decoded, err := DecodeQuery(msg)
	assert.NoError(t, err)
	assert.Equal(t, "analyzeWord", decoded.Func)
	assert.Equal(t, "mlexResults:xyz", decoded.Channel)
	var args WordAnalysisArgs
	assert.NoError(t, json.Unmarshal(decoded.Args, &args))
	assert.Equal(t, "running", args.Word)
}

func TestWorkerResultRoundTrip(t *testing.T) {
	src, err := CreateWorkerResult(&results.WordAnalysis{
		Analysis: morphology.WordAnalysis{
			Original:      "running",
			Root:          "run",
			Suffix:        "ing",
			Lemma:         "run",
			PosCandidates: morphology.POSSet{morphology.POSVerb},
		},
	})
	assert.NoError(t, err)
	data, err := json.Marshal(src)
	assert.NoError(t, err)

	var decoded WorkerResult
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, src.ID, decoded.ID)
	assert.Equal(t, results.ResultTypeWordAnalysis, decoded.ResultType)
	value, ok := decoded.Value.(*results.WordAnalysis)
	assert.True(t, ok)
	assert.Equal(t, "run", value.Analysis.Lemma)
	assert.False(t, decoded.HasUserError)
}

func TestWorkerResultErrorDispatch(t *testing.T) {
	src, err := CreateWorkerResult(
		results.NewErrorResult("analyzeText", assert.AnError))
	assert.NoError(t, err)
	assert.True(t, src.HasUserError)
	data, err := json.Marshal(src)
	assert.NoError(t, err)

	var decoded WorkerResult
	assert.NoError(t, json.Unmarshal(data, &decoded))
	value, ok := decoded.Value.(*results.ErrorResult)
	assert.True(t, ok)
	assert.Equal(t, "analyzeText", value.Func)
	assert.Error(t, decoded.Value.Err())
}

func TestWorkerResultUnknownType(t *testing.T) {
	var decoded WorkerResult
	err := json.Unmarshal([]byte(`{"resultType": "somethingElse"}`), &decoded)
	assert.Error(t, err)
}
