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
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"

	"mlex/rdb"
)

func TypedOrRespondError[T any](ctx *gin.Context, w *rdb.WorkerResult) (T, bool) {
	if w.Value == nil {
		var ans T
		return ans, false
	}
	vt, ok := w.Value.(T)
	if !ok {
		var n T
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf(
				"unexpected type for %s: %s",
				reflect.TypeOf(n), reflect.TypeOf(w.Value)),
			http.StatusInternalServerError,
		)
		return n, false
	}
	return vt, true
}

func HandleWorkerError(ctx *gin.Context, result *rdb.WorkerResult) bool {
	if err := result.Value.Err(); err != nil {
		if result.HasUserError {
			uniresp.WriteJSONErrorResponse(
				ctx.Writer,
				uniresp.NewActionErrorFrom(err),
				http.StatusBadRequest,
			)

		} else {
			uniresp.WriteJSONErrorResponse(
				ctx.Writer,
				uniresp.NewActionErrorFrom(err),
				http.StatusInternalServerError,
			)
		}
		return false
	}
	return true
}

func GetURLIntArgOrFail(ctx *gin.Context, name string, dflt int) (int, bool) {
	if !ctx.Request.URL.Query().Has(name) {
		return dflt, true
	}
	value, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("invalid numeric value of argument %s", name),
			http.StatusBadRequest,
		)
		return 0, false
	}
	return value, true
}
