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

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"mlex/cnf"
	"mlex/database"
	"mlex/rdb"
	"mlex/rdb/results"
)

const (
	maxTextLength     = 100000
	maxSentenceLength = 10000
	maxWordLength     = 255
)

// Actions wraps all the HTTP handlers of the service. The actual
// linguistic processing is delegated to workers via the Redis
// queue; handlers just validate input and wait for results.
type Actions struct {
	conf     *cnf.Conf
	radapter *rdb.Adapter
	db       *database.AnalysisDB
}

type textAnalysisRequest struct {
	Text              string `json:"text"`
	AnalyzeMorphology *bool  `json:"analyzeMorphology"`
	StoreResult       bool   `json:"storeResult"`
}

type addMorphemeRequest struct {
	Form    string `json:"form"`
	Kind    string `json:"kind"`
	Meaning string `json:"meaning"`
}

// publishAndWait pushes the query to the worker queue and blocks
// until a result (or a timeout result) arrives. Cacheable queries
// go through the adapter's filesystem cache; note that the cache
// is oblivious to later morpheme additions, so a configured cache
// path requires purging the directory when the inventory changes.
func (a *Actions) publishAndWait(ctx *gin.Context, fn string, args any, cacheable bool) (*rdb.WorkerResult, bool) {
	query, err := rdb.NewQuery(fn, args)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return nil, false
	}
	publish := func(q rdb.Query) (<-chan *rdb.WorkerResult, error) {
		return a.radapter.PublishQuery(q, a.conf.WorkerJobTimeout())
	}
	var wait <-chan *rdb.WorkerResult
	if cacheable {
		wait, err = a.radapter.CacheResult(publish, query)

	} else {
		wait, err = publish(query)
	}
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return nil, false
	}
	rawResult := <-wait
	if ok := HandleWorkerError(ctx, rawResult); !ok {
		return nil, false
	}
	return rawResult, true
}

// AnalyseText processes a whole text: sentence and word segmentation
// plus (optionally) morphological analysis of each unique word.
func (a *Actions) AnalyseText(ctx *gin.Context) {
	var req textAnalysisRequest
	if err := ctx.BindJSON(&req); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing or empty `text`"), http.StatusBadRequest)
		return
	}
	if len(req.Text) > maxTextLength {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("text too long - max length is %d", maxTextLength),
			http.StatusBadRequest,
		)
		return
	}
	analyzeMorphology := true
	if req.AnalyzeMorphology != nil {
		analyzeMorphology = *req.AnalyzeMorphology
	}
	// storing is a side effect, so such requests bypass the cache
	rawResult, ok := a.publishAndWait(ctx, "analyzeText", rdb.TextAnalysisArgs{
		Text:              req.Text,
		AnalyzeMorphology: analyzeMorphology,
		StoreResult:       req.StoreResult,
	}, !req.StoreResult)
	if !ok {
		return
	}
	result, ok := TypedOrRespondError[*results.TextAnalysis](ctx, rawResult)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}

// AnalyseWord returns the morphological decomposition of a single word.
func (a *Actions) AnalyseWord(ctx *gin.Context) {
	word := ctx.Param("word")
	if strings.TrimSpace(word) == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing word"), http.StatusBadRequest)
		return
	}
	if len(word) > maxWordLength {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("word too long - max length is %d", maxWordLength),
			http.StatusBadRequest,
		)
		return
	}
	rawResult, ok := a.publishAndWait(ctx, "analyzeWord", rdb.WordAnalysisArgs{Word: word}, true)
	if !ok {
		return
	}
	result, ok := TypedOrRespondError[*results.WordAnalysis](ctx, rawResult)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}

// AnalyseSentence tokenizes a single sentence and analyzes its words
// in their positional order.
func (a *Actions) AnalyseSentence(ctx *gin.Context) {
	sentence := ctx.Query("q")
	if strings.TrimSpace(sentence) == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing `q` argument"), http.StatusBadRequest)
		return
	}
	if len(sentence) > maxSentenceLength {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("sentence too long - max length is %d", maxSentenceLength),
			http.StatusBadRequest,
		)
		return
	}
	rawResult, ok := a.publishAndWait(
		ctx, "analyzeSentence", rdb.SentenceAnalysisArgs{Sentence: sentence}, true)
	if !ok {
		return
	}
	result, ok := TypedOrRespondError[*results.SentenceAnalysis](ctx, rawResult)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}

// Lemmatize replaces each word of the text with its lemma.
func (a *Actions) Lemmatize(ctx *gin.Context) {
	text := ctx.Query("q")
	if strings.TrimSpace(text) == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing `q` argument"), http.StatusBadRequest)
		return
	}
	if len(text) > maxTextLength {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("text too long - max length is %d", maxTextLength),
			http.StatusBadRequest,
		)
		return
	}
	rawResult, ok := a.publishAndWait(ctx, "lemmatize", rdb.LemmatizeArgs{Text: text}, true)
	if !ok {
		return
	}
	result, ok := TypedOrRespondError[*results.Lemmata](ctx, rawResult)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}

// AddMorpheme registers a custom prefix or suffix. The operation
// goes through the worker queue so there is a single writer to the
// shared morpheme table.
func (a *Actions) AddMorpheme(ctx *gin.Context) {
	var req addMorphemeRequest
	if err := ctx.BindJSON(&req); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Form) == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing or empty `form`"), http.StatusBadRequest)
		return
	}
	query, err := rdb.NewQuery("addMorpheme", rdb.AddMorphemeArgs{
		Form:     req.Form,
		Kind:     req.Kind,
		Meaning:  req.Meaning,
		Language: a.conf.Language,
	})
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	wait, err := a.radapter.PublishQuery(query, a.conf.WorkerJobTimeout())
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return
	}
	rawResult := <-wait
	if errRes, isErr := rawResult.Value.(*results.ErrorResult); isErr {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(errRes.Err()),
			http.StatusInternalServerError,
		)
		return
	}
	result, ok := TypedOrRespondError[*results.MorphemeAdded](ctx, rawResult)
	if !ok {
		return
	}
	// a duplicate morpheme deserves its own status so clients
	// can tell it apart from a malformed request
	if werr := result.Err(); werr != nil {
		status := http.StatusInternalServerError
		if rawResult.HasUserError {
			status = http.StatusBadRequest
		}
		if strings.Contains(result.Error, "already registered") {
			status = http.StatusConflict
		}
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(werr), status)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, result)
}

func NewActions(
	conf *cnf.Conf,
	radapter *rdb.Adapter,
	db *database.AnalysisDB,
) *Actions {
	return &Actions{
		conf:     conf,
		radapter: radapter,
		db:       db,
	}
}
