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
	"testing"

	"github.com/stretchr/testify/assert"

	"mlex/morphology"
	"mlex/segment"
)

// emptyRootAnalyzer yields analyses violating the non-empty-root
// invariant for every word.
type emptyRootAnalyzer struct{}

func (a emptyRootAnalyzer) AnalyzeBatch(words []string) []morphology.WordAnalysis {
	ans := make([]morphology.WordAnalysis, len(words))
	for i, w := range words {
		ans[i] = morphology.WordAnalysis{Original: w}
	}
	return ans
}

func TestMorphologyStageDropsInvalidAnalyses(t *testing.T) {
	st := &state{
		text:              "the cat sat",
		analyzeMorphology: true,
		segmented:         segment.NewSegmenter().Process("the cat sat"),
	}
	stg := &MorphologyStage{analyzer: emptyRootAnalyzer{}}
	assert.NoError(t, stg.Run(st))
	assert.Equal(t, 0, len(st.analyses))
	assert.Equal(t, 3, len(st.warnings))
	assert.Contains(t, st.warnings[0], "skipped word the")
	assert.Contains(t, st.warnings[1], "skipped word cat")
	assert.Contains(t, st.warnings[2], "skipped word sat")
}

func TestMorphologyStageSkippedWhenDisabled(t *testing.T) {
	st := &state{
		text:              "the cat sat",
		analyzeMorphology: false,
		segmented:         segment.NewSegmenter().Process("the cat sat"),
	}
	stg := &MorphologyStage{analyzer: emptyRootAnalyzer{}}
	assert.NoError(t, stg.Run(st))
	assert.Nil(t, st.analyses)
	assert.Empty(t, st.warnings)
}
