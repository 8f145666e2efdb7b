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

package segment

import (
	"regexp"
	"strings"
	"unicode"
)

// reWord matches a maximal run of word characters, with internal
// apostrophes kept so contractions ("I'm") stay single tokens.
var reWord = regexp.MustCompile(`\w+(?:'\w+)*`)

// reUnit matches either a word run or a single standalone
// punctuation character.
var reUnit = regexp.MustCompile(`\w+(?:'\w+)*|[^\w\s]`)

// abbreviations which do not terminate a sentence, stored
// lowercased and including the final period.
var abbreviations = map[string]bool{
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "prof.": true,
	"sr.": true, "jr.": true, "etc.": true, "vs.": true, "i.e.": true,
	"e.g.": true, "cf.": true, "inc.": true, "ltd.": true,
	"ave.": true, "st.": true, "rd.": true, "blvd.": true,
}

// stopwords is a fixed set of high-frequency English function words.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"has": true, "he": true, "in": true, "is": true, "it": true,
	"its": true, "of": true, "on": true, "that": true, "the": true,
	"to": true, "was": true, "will": true, "with": true,
}

// Token is a single positioned unit of a sentence. Position is the
// zero-based index within the owning token sequence; StartChar and
// EndChar are byte offsets into the tokenized string.
type Token struct {
	Text          string `json:"text"`
	Position      int    `json:"position"`
	StartChar     int    `json:"startChar"`
	EndChar       int    `json:"endChar"`
	IsPunctuation bool   `json:"isPunctuation"`
	IsStopword    bool   `json:"isStopword"`
}

// Sentence is a positioned sentence along with its word list
// (lowercased, positional) and detailed tokens.
type Sentence struct {
	Text     string   `json:"text"`
	Position int      `json:"position"`
	Words    []string `json:"words"`
	Tokens   []Token  `json:"tokens"`
}

func (s Sentence) WordCount() int {
	return len(s.Words)
}

// Segmented is the full segmentation of a source text.
type Segmented struct {
	Text      string     `json:"text"`
	Sentences []Sentence `json:"sentences"`
}

// Segmenter splits raw text into sentences, words and tokens.
// It holds no mutable state and never fails on string input -
// absence of structure yields empty sequences, not errors.
type Segmenter struct{}

func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

func containsWordChar(s string) bool {
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// endsWithAbbreviation reports whether the chunk (which includes
// its final period) ends with a known abbreviation preceded by
// a word boundary.
func endsWithAbbreviation(chunk string) bool {
	chunk = strings.ToLower(chunk)
	for abbr := range abbreviations {
		if !strings.HasSuffix(chunk, abbr) {
			continue
		}
		idx := len(chunk) - len(abbr)
		if idx == 0 || !containsWordChar(chunk[idx-1:idx]) {
			return true
		}
	}
	return false
}

// SegmentSentences splits text on sentence-final punctuation
// (. ! ?) while suppressing splits after known abbreviations and
// inside unspaced sequences (i.e., decimals, "e.g."). A trailing
// substring without terminal punctuation is emitted as a final
// sentence if non-empty after trimming.
func (s *Segmenter) SegmentSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	sentences := make([]string, 0, 4)
	runes := []rune(text)
	start := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && (runes[j] == '.' || runes[j] == '!' || runes[j] == '?') {
			j++
		}
		for j < len(runes) && strings.ContainsRune(`'")]`, runes[j]) {
			j++
		}
		// a boundary must be followed by whitespace or text end,
		// otherwise we are inside a number or an abbreviation chain
		if j < len(runes) && !unicode.IsSpace(runes[j]) {
			i = j
			continue
		}
		if r == '.' && j-i == 1 && endsWithAbbreviation(string(runes[start:i+1])) {
			i = j
			continue
		}
		if sent := strings.TrimSpace(string(runes[start:j])); sent != "" {
			sentences = append(sentences, sent)
		}
		start = j
		i = j
	}
	if start < len(runes) {
		if sent := strings.TrimSpace(string(runes[start:])); sent != "" {
			sentences = append(sentences, sent)
		}
	}
	return sentences
}

// SegmentWords extracts lowercased word runs in source order;
// duplicates are kept as the list is positional.
func (s *Segmenter) SegmentWords(text string) []string {
	matches := reWord.FindAllString(text, -1)
	ans := make([]string, len(matches))
	for i, m := range matches {
		ans[i] = strings.ToLower(m)
	}
	return ans
}

// Tokenize produces one token per matched unit in source order.
// With preservePunctuation, standalone punctuation characters
// become tokens too; they are never stopwords.
func (s *Segmenter) Tokenize(text string, preservePunctuation bool) []Token {
	re := reUnit
	if !preservePunctuation {
		re = reWord
	}
	locs := re.FindAllStringIndex(text, -1)
	ans := make([]Token, 0, len(locs))
	for _, loc := range locs {
		tokText := text[loc[0]:loc[1]]
		isPunct := !containsWordChar(tokText)
		ans = append(ans, Token{
			Text:          tokText,
			Position:      len(ans),
			StartChar:     loc[0],
			EndChar:       loc[1],
			IsPunctuation: isPunct,
			IsStopword:    !isPunct && stopwords[strings.ToLower(tokText)],
		})
	}
	return ans
}

// Process runs the full segmentation of a text: sentences with
// per-sentence words and tokens (token positions reset at each
// sentence).
func (s *Segmenter) Process(text string) *Segmented {
	rawSentences := s.SegmentSentences(text)
	ans := &Segmented{
		Text:      text,
		Sentences: make([]Sentence, len(rawSentences)),
	}
	for i, sent := range rawSentences {
		ans.Sentences[i] = Sentence{
			Text:     sent,
			Position: i,
			Words:    s.SegmentWords(sent),
			Tokens:   s.Tokenize(sent, true),
		}
	}
	return ans
}
