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
	"fmt"
	"strings"

	"mlex/merror"
)

// minRootLen is the minimum remainder length an affix strip
// must leave; shorter remainders would produce degenerate roots.
const minRootLen = 3

// WordAnalysis is the result of a single-word morphological
// analysis. Root is always populated for a non-empty input;
// Prefix and Suffix are empty when no affix matched, in which
// case Root equals the (lowercased) original.
type WordAnalysis struct {
	Original      string          `json:"original"`
	Prefix        string          `json:"prefix,omitempty"`
	Root          string          `json:"root"`
	Suffix        string          `json:"suffix,omitempty"`
	Lemma         string          `json:"lemma"`
	PosCandidates POSSet          `json:"posCandidates"`
	Morphemes     []MorphemeEntry `json:"morphemes"`
}

// Validate checks the non-empty-root invariant.
func (wa WordAnalysis) Validate() error {
	if wa.Original != "" && wa.Root == "" {
		return merror.AnalysisError{
			Msg: fmt.Sprintf("analysis of %s produced an empty root", wa.Original),
		}
	}
	return nil
}

// Analyzer derives morphological structure of single words using
// a morpheme table and fixed irregular-form dictionaries. It is
// stateless apart from the (concurrent-read-safe) table, so a single
// instance may serve any number of goroutines.
type Analyzer struct {
	table *Table
}

func NewAnalyzer(table *Table) *Analyzer {
	return &Analyzer{table: table}
}

func (a *Analyzer) Table() *Table {
	return a.table
}

// AnalyzeWord applies the analysis branches in a fixed order, first
// match wins: irregular form lookup, then longest-first prefix and
// suffix stripping, then lemma reconstruction and POS inference from
// the matched suffix. An empty input yields a degenerate analysis,
// never an error.
func (a *Analyzer) AnalyzeWord(word string) WordAnalysis {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return WordAnalysis{}
	}
	ans := WordAnalysis{Original: w}

	if lemma, ok := irregularVerbs[w]; ok {
		ans.Root = lemma
		ans.Lemma = lemma
		ans.PosCandidates = POSSet{POSVerb}
		ans.Morphemes = []MorphemeEntry{
			{Form: lemma, Kind: KindRoot, Meaning: "verb root (irregular)"},
		}
		return ans
	}
	if lemma, ok := irregularPlurals[w]; ok {
		ans.Root = lemma
		ans.Lemma = lemma
		ans.PosCandidates = POSSet{POSNoun}
		ans.Morphemes = []MorphemeEntry{
			{Form: lemma, Kind: KindRoot, Meaning: "noun root (irregular plural)"},
		}
		return ans
	}

	remainder := w
	prefix, rest, matched := a.table.MatchPrefix(remainder, minRootLen)
	if matched {
		ans.Prefix = prefix.Form
		ans.Morphemes = append(ans.Morphemes, prefix)
		remainder = rest
	}
	suffix, rest, suffixMatched := a.table.MatchSuffix(remainder, minRootLen)
	if suffixMatched {
		ans.Suffix = suffix.Form
		remainder = rest
	}

	root := remainder
	if suffixMatched {
		root = reconstructRoot(remainder, suffix.Form)
	}
	ans.Root = root
	rootEntry := MorphemeEntry{Form: root, Kind: KindRoot, Meaning: "word root"}
	if known, ok := a.table.Root(root); ok {
		rootEntry = known
	}
	ans.Morphemes = append(ans.Morphemes, rootEntry)
	if suffixMatched {
		ans.Morphemes = append(ans.Morphemes, suffix)
	}

	if suffixMatched {
		ans.Lemma = ans.Prefix + root
		ans.PosCandidates = inferPOSFromSuffix(suffix.Form)

	} else {
		ans.Lemma = w
		ans.PosCandidates = POSSet{POSUnknown}
	}
	return ans
}

// Lemmatize returns just the lemma of the word.
func (a *Analyzer) Lemmatize(word string) string {
	return a.AnalyzeWord(word).Lemma
}

// SegmentMorphemes returns the morpheme entries actually matched,
// in surface order (prefix, root, suffix).
func (a *Analyzer) SegmentMorphemes(word string) []MorphemeEntry {
	return a.AnalyzeWord(word).Morphemes
}

// AnalyzeBatch analyzes the words independently; the output order
// matches the input order.
func (a *Analyzer) AnalyzeBatch(words []string) []WordAnalysis {
	ans := make([]WordAnalysis, len(words))
	for i, w := range words {
		ans[i] = a.AnalyzeWord(w)
	}
	return ans
}
