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

package pipeline

import (
	"math"
	"strings"

	"mlex/merror"
	"mlex/morphology"
	"mlex/segment"
)

// Statistics extends plain segmentation statistics with
// morphology-derived aggregates.
type Statistics struct {
	segment.TextStatistics
	AnalyzedWords       int     `json:"analyzedWords"`
	TotalMorphemes      int     `json:"totalMorphemes"`
	AvgMorphemesPerWord float64 `json:"avgMorphemesPerWord"`
	WordsWithPrefix     int     `json:"wordsWithPrefix"`
	WordsWithSuffix     int     `json:"wordsWithSuffix"`
}

// AnalysisResult is the single object handed over to the storage
// collaborator. All contained entities are read-only once the
// ProcessText call returns.
type AnalysisResult struct {
	Text         string                             `json:"text"`
	Sentences    []segment.Sentence                 `json:"sentences"`
	WordAnalyses map[string]morphology.WordAnalysis `json:"wordAnalyses,omitempty"`
	Statistics   Statistics                         `json:"statistics"`
	Warnings     []string                           `json:"warnings,omitempty"`
}

// SentenceAnalysis is the result of a single-sentence analysis.
type SentenceAnalysis struct {
	Sentence  string                    `json:"sentence"`
	Tokens    []segment.Token           `json:"tokens"`
	WordCount int                       `json:"wordCount"`
	Analyses  []morphology.WordAnalysis `json:"analyses"`
}

// Pipeline sequences segmentation and morphology into a unified
// result. It owns no linguistic logic itself - it is a composition
// point over a fixed, closed list of stages.
type Pipeline struct {
	segmenter *segment.Segmenter
	analyzer  *morphology.Analyzer
	stages    []Stage
}

func New(segmenter *segment.Segmenter, analyzer *morphology.Analyzer) *Pipeline {
	return &Pipeline{
		segmenter: segmenter,
		analyzer:  analyzer,
		stages: []Stage{
			&SegmentationStage{segmenter: segmenter},
			&MorphologyStage{analyzer: analyzer},
		},
	}
}

func (p *Pipeline) Analyzer() *morphology.Analyzer {
	return p.analyzer
}

// ProcessText runs the whole pipeline over the text. Morphological
// analysis failures of individual words degrade to warnings; an
// empty (whitespace-only) text is an InputError with no partial
// result.
func (p *Pipeline) ProcessText(text string, analyzeMorphology bool) (*AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, merror.InputError{Msg: "empty text"}
	}
	st := &state{
		text:              text,
		analyzeMorphology: analyzeMorphology,
	}
	for _, stage := range p.stages {
		if err := stage.Run(st); err != nil {
			return nil, err
		}
	}
	ans := &AnalysisResult{
		Text:         text,
		Sentences:    st.segmented.Sentences,
		WordAnalyses: st.analyses,
		Warnings:     st.warnings,
	}
	ans.Statistics = p.compileStatistics(st)
	return ans, nil
}

func (p *Pipeline) compileStatistics(st *state) Statistics {
	ans := Statistics{
		TextStatistics: p.segmenter.GetStatistics(st.segmented),
	}
	if len(st.analyses) == 0 {
		return ans
	}
	ans.AnalyzedWords = len(st.analyses)
	for _, wa := range st.analyses {
		ans.TotalMorphemes += len(wa.Morphemes)
		if wa.Prefix != "" {
			ans.WordsWithPrefix++
		}
		if wa.Suffix != "" {
			ans.WordsWithSuffix++
		}
	}
	avg := float64(ans.TotalMorphemes) / float64(ans.AnalyzedWords)
	ans.AvgMorphemesPerWord = math.Round(avg*100) / 100
	return ans
}

// AnalyzeSentence tokenizes a single sentence and analyzes each
// word occurrence in order (no deduplication here - the output
// is positional).
func (p *Pipeline) AnalyzeSentence(sentence string) (*SentenceAnalysis, error) {
	if strings.TrimSpace(sentence) == "" {
		return nil, merror.InputError{Msg: "empty sentence"}
	}
	tokens := p.segmenter.Tokenize(sentence, true)
	var words []string
	for _, t := range tokens {
		if !t.IsPunctuation {
			words = append(words, t.Text)
		}
	}
	return &SentenceAnalysis{
		Sentence:  sentence,
		Tokens:    tokens,
		WordCount: len(words),
		Analyses:  p.analyzer.AnalyzeBatch(words),
	}, nil
}

// LemmatizeText replaces each word of the text with its lemma.
func (p *Pipeline) LemmatizeText(text string) string {
	words := p.segmenter.SegmentWords(text)
	lemmas := make([]string, len(words))
	for i, w := range words {
		lemmas[i] = p.analyzer.Lemmatize(w)
	}
	return strings.Join(lemmas, " ")
}
