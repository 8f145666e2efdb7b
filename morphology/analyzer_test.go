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

package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(NewDefaultTable())
}

func TestAnalyzeIrregularVerb(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("went")
	assert.Equal(t, "go", ans.Root)
	assert.Equal(t, "go", ans.Lemma)
	assert.Equal(t, "", ans.Prefix)
	assert.Equal(t, "", ans.Suffix)
	assert.Equal(t, POSSet{POSVerb}, ans.PosCandidates)
}

func TestAnalyzeIrregularPlural(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("children")
	assert.Equal(t, "child", ans.Root)
	assert.Equal(t, "child", ans.Lemma)
	assert.Equal(t, POSSet{POSNoun}, ans.PosCandidates)
}

func TestAnalyzeDoubledConsonantGerund(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("running")
	assert.Equal(t, "ing", ans.Suffix)
	assert.Equal(t, "run", ans.Root)
	assert.Equal(t, "run", ans.Lemma)
	assert.True(t, ans.PosCandidates.Contains(POSVerb))
}

func TestAnalyzeAdverb(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("quickly")
	assert.Equal(t, "ly", ans.Suffix)
	assert.Equal(t, "quick", ans.Root)
	assert.Equal(t, "quick", ans.Lemma)
	assert.Equal(t, POSSet{POSAdverb}, ans.PosCandidates)
}

func TestAnalyzeLongestPrefixWins(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("undercook")
	// both "un" and "under" match; the longer one must win
	assert.Equal(t, "under", ans.Prefix)
	assert.Equal(t, "cook", ans.Root)
}

func TestAnalyzePrefixAndSuffix(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("replayed")
	assert.Equal(t, "re", ans.Prefix)
	assert.Equal(t, "ed", ans.Suffix)
	assert.Equal(t, "play", ans.Root)
	assert.Equal(t, "replay", ans.Lemma)
	assert.Equal(t, 3, len(ans.Morphemes))
	assert.Equal(t, KindPrefix, ans.Morphemes[0].Kind)
	assert.Equal(t, KindRoot, ans.Morphemes[1].Kind)
	assert.Equal(t, KindSuffix, ans.Morphemes[2].Kind)
}

func TestAnalyzeIToY(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("babies")
	assert.Equal(t, "es", ans.Suffix)
	assert.Equal(t, "baby", ans.Root)
	assert.Equal(t, "baby", ans.Lemma)
}

func TestAnalyzeNoAffix(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("table")
	assert.Equal(t, "table", ans.Root)
	assert.Equal(t, "table", ans.Lemma)
	assert.Equal(t, "", ans.Prefix)
	assert.Equal(t, "", ans.Suffix)
	assert.Equal(t, POSSet{POSUnknown}, ans.PosCandidates)
	assert.Equal(t, 1, len(ans.Morphemes))
}

func TestAnalyzeMinRemainderGuard(t *testing.T) {
	a := testAnalyzer()
	// stripping "-ing" would leave "s" which is below the minimum
	// remainder; the word must stay unsplit
	ans := a.AnalyzeWord("sing")
	assert.Equal(t, "", ans.Suffix)
	assert.Equal(t, "sing", ans.Root)
}

func TestAnalyzeLowercases(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("  QUICKLY ")
	assert.Equal(t, "quickly", ans.Original)
	assert.Equal(t, "quick", ans.Root)
}

func TestAnalyzeEmptyWord(t *testing.T) {
	a := testAnalyzer()
	ans := a.AnalyzeWord("   ")
	assert.Equal(t, "", ans.Original)
	assert.Equal(t, "", ans.Root)
	assert.NoError(t, ans.Validate())
}

func TestAnalyzeBatchMatchesSingle(t *testing.T) {
	a := testAnalyzer()
	words := []string{"running", "children", "quickly", "running"}
	batch := a.AnalyzeBatch(words)
	assert.Equal(t, len(words), len(batch))
	for i, w := range words {
		assert.Equal(t, a.AnalyzeWord(w), batch[i])
	}
}

func TestLemmatize(t *testing.T) {
	a := testAnalyzer()
	assert.Equal(t, "be", a.Lemmatize("were"))
	assert.Equal(t, "cry", a.Lemmatize("cried"))
	assert.Equal(t, "stop", a.Lemmatize("stopped"))
}

func TestSegmentMorphemesOrder(t *testing.T) {
	a := testAnalyzer()
	morphemes := a.SegmentMorphemes("unhelpful")
	assert.Equal(t, 3, len(morphemes))
	assert.Equal(t, "un", morphemes[0].Form)
	assert.Equal(t, "help", morphemes[1].Form)
	assert.Equal(t, "ful", morphemes[2].Form)
}
