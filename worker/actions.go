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

	"github.com/rs/zerolog/log"

	"mlex/morphology"
	"mlex/rdb"
	"mlex/rdb/results"
)

// analyzeText runs the full pipeline and optionally stores the
// result. A storage failure does not invalidate the computed
// analysis - the result is returned without a storage id.
func (w *Worker) analyzeText(args rdb.TextAnalysisArgs) *results.TextAnalysis {
	ans, err := w.pipeline.ProcessText(args.Text, args.AnalyzeMorphology)
	if err != nil {
		return &results.TextAnalysis{Error: err.Error()}
	}
	ret := &results.TextAnalysis{Result: ans}
	if args.StoreResult && w.db != nil {
		storageID, err := w.db.StoreResult(context.Background(), ans)
		if err != nil {
			log.Error().Err(err).Msg("failed to store analysis result")

		} else {
			ret.StorageID = storageID
		}
	}
	return ret
}

func (w *Worker) analyzeWord(args rdb.WordAnalysisArgs) *results.WordAnalysis {
	if cached, ok := w.wordCache.Get(args.Word); ok {
		return &results.WordAnalysis{Analysis: cached}
	}
	ans := w.pipeline.Analyzer().AnalyzeWord(args.Word)
	if err := ans.Validate(); err != nil {
		return &results.WordAnalysis{Error: err.Error()}
	}
	w.wordCache.Set(args.Word, ans)
	return &results.WordAnalysis{Analysis: ans}
}

func (w *Worker) analyzeSentence(args rdb.SentenceAnalysisArgs) *results.SentenceAnalysis {
	ans, err := w.pipeline.AnalyzeSentence(args.Sentence)
	if err != nil {
		return &results.SentenceAnalysis{Error: err.Error()}
	}
	return &results.SentenceAnalysis{
		Sentence:  ans.Sentence,
		Tokens:    ans.Tokens,
		WordCount: ans.WordCount,
		Analyses:  ans.Analyses,
	}
}

func (w *Worker) lemmatize(args rdb.LemmatizeArgs) *results.Lemmata {
	return &results.Lemmata{
		Text:       args.Text,
		Lemmatized: w.pipeline.LemmatizeText(args.Text),
	}
}

// addMorpheme registers a custom morpheme in the database (when
// configured) and in the in-memory table. The word cache must be
// dropped as previous decompositions may no longer hold.
func (w *Worker) addMorpheme(args rdb.AddMorphemeArgs) *results.MorphemeAdded {
	language := args.Language
	if language == "" {
		language = "en"
	}
	kind := morphology.MorphemeKind(args.Kind)
	if err := kind.Validate(); err != nil {
		return &results.MorphemeAdded{Error: err.Error()}
	}
	var storageID int64
	if w.db != nil {
		var err error
		storageID, err = w.db.AddMorpheme(
			context.Background(), args.Form, args.Kind, args.Meaning, language)
		if err != nil {
			return &results.MorphemeAdded{Error: err.Error()}
		}
	}
	table := w.pipeline.Analyzer().Table()
	if err := table.Add(args.Form, kind, args.Meaning); err != nil {
		return &results.MorphemeAdded{StorageID: storageID, Error: err.Error()}
	}
	w.wordCache.Clear()
	return &results.MorphemeAdded{
		Entry:     morphology.MorphemeEntry{Form: args.Form, Kind: kind, Meaning: args.Meaning},
		StorageID: storageID,
	}
}
