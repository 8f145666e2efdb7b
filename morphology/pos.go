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

// PartOfSpeech is a grammatical category candidate inferred
// from surface morphology only. MLEX makes no claim to
// disambiguate between multiple candidates.
type PartOfSpeech string

const (
	POSNoun      PartOfSpeech = "noun"
	POSVerb      PartOfSpeech = "verb"
	POSAdjective PartOfSpeech = "adjective"
	POSAdverb    PartOfSpeech = "adverb"
	POSUnknown   PartOfSpeech = "unknown"
)

func (pos PartOfSpeech) String() string {
	return string(pos)
}

// POSSet is a small ordered set of POS candidates. The order
// carries no ranking - it just keeps the output deterministic.
type POSSet []PartOfSpeech

func (ps POSSet) Contains(pos PartOfSpeech) bool {
	for _, v := range ps {
		if v == pos {
			return true
		}
	}
	return false
}

// posBySuffix maps a matched suffix to its POS candidates.
// A word with no matched affix gets POSUnknown.
var posBySuffix = map[string]POSSet{
	"ly":   {POSAdverb},
	"ness": {POSNoun},
	"tion": {POSNoun},
	"sion": {POSNoun},
	"ment": {POSNoun},
	"ity":  {POSNoun},
	"er":   {POSNoun, POSAdjective},
	"est":  {POSAdjective},
	"able": {POSAdjective},
	"ible": {POSAdjective},
	"ful":  {POSAdjective},
	"less": {POSAdjective},
	"ous":  {POSAdjective},
	"ive":  {POSAdjective},
	"al":   {POSAdjective},
	"ed":   {POSVerb, POSAdjective},
	"ing":  {POSVerb, POSNoun, POSAdjective},
	"s":    {POSNoun, POSVerb},
	"es":   {POSNoun, POSVerb},
	"ize":  {POSVerb},
	"ise":  {POSVerb},
}

func inferPOSFromSuffix(suffix string) POSSet {
	if ans, ok := posBySuffix[suffix]; ok {
		return ans
	}
	return POSSet{POSUnknown}
}
