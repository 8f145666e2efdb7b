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

	"mlex/database"
)

const (
	dfltRecordsLimit = 10
	maxRecordsLimit  = 100
)

var errNoStorage = errors.New("result storage is not configured")

// RecentTexts lists the most recently processed and stored texts.
// These handlers read the database directly - there is no point
// in pushing simple lookups through the worker queue.
func (a *Actions) RecentTexts(ctx *gin.Context) {
	if a.db == nil {
		uniresp.RespondWithErrorJSON(ctx, errNoStorage, http.StatusNotFound)
		return
	}
	limit, ok := GetURLIntArgOrFail(ctx, "limit", dfltRecordsLimit)
	if !ok {
		return
	}
	if limit <= 0 || limit > maxRecordsLimit {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("limit must be between 1 and %d", maxRecordsLimit),
			http.StatusBadRequest,
		)
		return
	}
	recs, err := a.db.RecentTexts(ctx, limit)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string][]database.TextSegmentRecord{"texts": recs})
}

// WordHistory lists stored analyses of a word, most recent first.
func (a *Actions) WordHistory(ctx *gin.Context) {
	if a.db == nil {
		uniresp.RespondWithErrorJSON(ctx, errNoStorage, http.StatusNotFound)
		return
	}
	word := ctx.Param("word")
	if strings.TrimSpace(word) == "" {
		uniresp.RespondWithErrorJSON(
			ctx, errors.New("missing word"), http.StatusBadRequest)
		return
	}
	limit, ok := GetURLIntArgOrFail(ctx, "limit", dfltRecordsLimit)
	if !ok {
		return
	}
	if limit <= 0 || limit > maxRecordsLimit {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("limit must be between 1 and %d", maxRecordsLimit),
			http.StatusBadRequest,
		)
		return
	}
	recs, err := a.db.WordAnalyses(ctx, word, limit)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
		"word":     strings.ToLower(word),
		"analyses": recs,
	})
}

// StorageCounts reports record counts of the storage tables.
func (a *Actions) StorageCounts(ctx *gin.Context) {
	if a.db == nil {
		uniresp.RespondWithErrorJSON(ctx, errNoStorage, http.StatusNotFound)
		return
	}
	counts, err := a.db.TableCounts(ctx)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, counts)
}
