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

	"mlex/merror"
	"mlex/morphology"
	"mlex/segment"
)

func testPipeline() *Pipeline {
	return New(
		segment.NewSegmenter(),
		morphology.NewAnalyzer(morphology.NewDefaultTable()),
	)
}

func TestProcessTextFull(t *testing.T) {
	p := testPipeline()
	ans, err := p.ProcessText("The children were running quickly.", true)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(ans.Sentences))
	assert.Equal(t,
		[]string{"the", "children", "were", "running", "quickly"},
		ans.Sentences[0].Words,
	)
	assert.Equal(t, 5, len(ans.WordAnalyses))
	assert.Equal(t, "child", ans.WordAnalyses["children"].Lemma)
	assert.Equal(t, "be", ans.WordAnalyses["were"].Lemma)
	assert.Equal(t, "run", ans.WordAnalyses["running"].Lemma)
	assert.Equal(t, 0, len(ans.Warnings))
}

func TestProcessTextStatistics(t *testing.T) {
	p := testPipeline()
	ans, err := p.ProcessText("The children were running quickly.", true)
	assert.NoError(t, err)
	st := ans.Statistics
	assert.Equal(t, 1, st.SentenceCount)
	assert.Equal(t, 5, st.WordCount)
	assert.Equal(t, 5, st.UniqueWordCount)
	assert.Equal(t, 6, st.TokenCount)
	assert.Equal(t, 5, st.AnalyzedWords)
	assert.Equal(t, 5.0, st.AvgWordsPerSentence)
	// running = run + ing, quickly = quick + ly, the rest are
	// single morphemes
	assert.Equal(t, 7, st.TotalMorphemes)
	assert.Equal(t, 0, st.WordsWithPrefix)
	assert.Equal(t, 2, st.WordsWithSuffix)
	assert.Equal(t, 1.4, st.AvgMorphemesPerWord)
}

func TestProcessTextSkipsMorphology(t *testing.T) {
	p := testPipeline()
	ans, err := p.ProcessText("The children were running quickly.", false)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(ans.Sentences))
	assert.Equal(t, 0, len(ans.WordAnalyses))
	assert.Equal(t, 0, ans.Statistics.AnalyzedWords)
}

func TestProcessTextDeduplicatesWords(t *testing.T) {
	p := testPipeline()
	ans, err := p.ProcessText("The cat saw the cat.", true)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(ans.WordAnalyses))
}

func TestProcessTextEmptyInput(t *testing.T) {
	p := testPipeline()
	_, err := p.ProcessText("   \n ", true)
	assert.Error(t, err)
	assert.IsType(t, merror.InputError{}, err)
}

func TestAnalyzeSentence(t *testing.T) {
	p := testPipeline()
	ans, err := p.AnalyzeSentence("The cats were running.")
	assert.NoError(t, err)
	assert.Equal(t, 4, ans.WordCount)
	assert.Equal(t, 5, len(ans.Tokens))
	assert.Equal(t, 4, len(ans.Analyses))
	// positional output: repeated forms are analyzed per occurrence
	assert.Equal(t, "the", ans.Analyses[0].Original)
	assert.Equal(t, "cat", ans.Analyses[1].Lemma)
}

func TestAnalyzeSentenceEmpty(t *testing.T) {
	p := testPipeline()
	_, err := p.AnalyzeSentence("")
	assert.Error(t, err)
}

func TestLemmatizeText(t *testing.T) {
	p := testPipeline()
	ans := p.LemmatizeText("The children were running quickly")
	assert.Equal(t, "the child be run quick", ans)
}

func TestLemmatizeTextEmpty(t *testing.T) {
	p := testPipeline()
	assert.Equal(t, "", p.LemmatizeText(""))
}
