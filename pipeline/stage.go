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
	"fmt"

	"mlex/morphology"
	"mlex/segment"
)

type StageType string

const (
	StageSegmentation StageType = "segmentation"
	StageMorphology   StageType = "morphology"
)

// Stage is one step of the analysis pipeline. The stage set is
// closed: a new stage means a new implementation here and a new
// item in the pipeline's stage list, there is no runtime
// registration.
type Stage interface {
	Type() StageType
	Run(st *state) error
}

// state carries intermediate data between stages of a single
// ProcessText call. It is never shared between calls.
type state struct {
	text              string
	analyzeMorphology bool
	segmented         *segment.Segmented
	analyses          map[string]morphology.WordAnalysis
	warnings          []string
}

// ---------------------------

type SegmentationStage struct {
	segmenter *segment.Segmenter
}

func (stg *SegmentationStage) Type() StageType {
	return StageSegmentation
}

func (stg *SegmentationStage) Run(st *state) error {
	st.segmented = stg.segmenter.Process(st.text)
	return nil
}

// ---------------------------

// wordAnalyzer is the part of morphology.Analyzer the stage needs.
type wordAnalyzer interface {
	AnalyzeBatch(words []string) []morphology.WordAnalysis
}

type MorphologyStage struct {
	analyzer wordAnalyzer
}

func (stg *MorphologyStage) Type() StageType {
	return StageMorphology
}

// Run analyzes each distinct word form exactly once, so the cost
// is O(unique words), not O(total tokens). A word whose analysis
// violates an invariant is dropped with a warning; the rest of
// the result stays intact.
func (stg *MorphologyStage) Run(st *state) error {
	if !st.analyzeMorphology {
		return nil
	}
	seen := make(map[string]bool)
	var words []string
	for _, sent := range st.segmented.Sentences {
		for _, w := range sent.Words {
			if !seen[w] {
				seen[w] = true
				words = append(words, w)
			}
		}
	}
	st.analyses = make(map[string]morphology.WordAnalysis, len(words))
	for i, wa := range stg.analyzer.AnalyzeBatch(words) {
		if err := wa.Validate(); err != nil {
			st.warnings = append(
				st.warnings, fmt.Sprintf("skipped word %s: %s", words[i], err))
			continue
		}
		st.analyses[words[i]] = wa
	}
	return nil
}
