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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentSentencesBasic(t *testing.T) {
	s := NewSegmenter()
	ans := s.SegmentSentences("This is first. This is second! Is this third?")
	assert.Equal(t, []string{
		"This is first.", "This is second!", "Is this third?"}, ans)
}

func TestSegmentSentencesAbbreviation(t *testing.T) {
	s := NewSegmenter()
	ans := s.SegmentSentences("Dr. Smith arrived. He left.")
	assert.Equal(t, []string{"Dr. Smith arrived.", "He left."}, ans)
}

func TestSegmentSentencesMidSentenceAbbreviation(t *testing.T) {
	s := NewSegmenter()
	ans := s.SegmentSentences("We need eggs, milk, etc. before noon.")
	assert.Equal(t, 1, len(ans))
}

func TestSegmentSentencesDecimalNumber(t *testing.T) {
	s := NewSegmenter()
	ans := s.SegmentSentences("The value is 3.14 exactly.")
	assert.Equal(t, []string{"The value is 3.14 exactly."}, ans)
}

func TestSegmentSentencesTrailingFragment(t *testing.T) {
	s := NewSegmenter()
	ans := s.SegmentSentences("Complete sentence. And a trailing fragment")
	assert.Equal(t, []string{
		"Complete sentence.", "And a trailing fragment"}, ans)
}

func TestSegmentSentencesEmptyInput(t *testing.T) {
	s := NewSegmenter()
	assert.Equal(t, []string{}, s.SegmentSentences(""))
	assert.Equal(t, []string{}, s.SegmentSentences("   \n\t  "))
}

func TestSegmentSentencesClosingQuote(t *testing.T) {
	s := NewSegmenter()
	ans := s.SegmentSentences(`He said "stop." Then he left.`)
	assert.Equal(t, 2, len(ans))
	assert.Equal(t, `He said "stop."`, ans[0])
}

func TestSegmentWordsLowercases(t *testing.T) {
	s := NewSegmenter()
	ans := s.SegmentWords("The Quick Brown FOX")
	assert.Equal(t, []string{"the", "quick", "brown", "fox"}, ans)
}

func TestSegmentWordsKeepsContractions(t *testing.T) {
	s := NewSegmenter()
	ans := s.SegmentWords("I'm sure it doesn't matter")
	assert.Equal(t, []string{"i'm", "sure", "it", "doesn't", "matter"}, ans)
}

func TestSegmentWordsKeepsDuplicates(t *testing.T) {
	s := NewSegmenter()
	ans := s.SegmentWords("the cat and the dog")
	assert.Equal(t, 5, len(ans))
}

func TestTokenizeWithPunctuation(t *testing.T) {
	s := NewSegmenter()
	tokens := s.Tokenize("Hello, world!", true)
	assert.Equal(t, 4, len(tokens))
	assert.Equal(t, "Hello", tokens[0].Text)
	assert.False(t, tokens[0].IsPunctuation)
	assert.Equal(t, ",", tokens[1].Text)
	assert.True(t, tokens[1].IsPunctuation)
	assert.Equal(t, "world", tokens[2].Text)
	assert.Equal(t, "!", tokens[3].Text)
	for i, tok := range tokens {
		assert.Equal(t, i, tok.Position)
	}
}

func TestTokenizeWithoutPunctuation(t *testing.T) {
	s := NewSegmenter()
	tokens := s.Tokenize("Hello, world!", false)
	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, "Hello", tokens[0].Text)
	assert.Equal(t, "world", tokens[1].Text)
}

func TestTokenizeMarksStopwords(t *testing.T) {
	s := NewSegmenter()
	tokens := s.Tokenize("The cat is on a mat.", true)
	var stopwords []string
	for _, tok := range tokens {
		if tok.IsStopword {
			stopwords = append(stopwords, tok.Text)
		}
	}
	assert.Equal(t, []string{"The", "is", "on", "a"}, stopwords)
}

func TestTokenizeCharOffsets(t *testing.T) {
	s := NewSegmenter()
	text := "ab, cd"
	tokens := s.Tokenize(text, true)
	for _, tok := range tokens {
		assert.Equal(t, tok.Text, text[tok.StartChar:tok.EndChar])
	}
}

func TestProcessWordCountsAreConsistent(t *testing.T) {
	s := NewSegmenter()
	text := "Dr. Smith arrived early. The meeting, however, was cancelled! Why?"
	seg := s.Process(text)
	var total int
	for _, sent := range seg.Sentences {
		total += sent.WordCount()
	}
	assert.Equal(t, len(s.SegmentWords(text)), total)
}

func TestSegmentSentencesIdempotent(t *testing.T) {
	s := NewSegmenter()
	text := "Dr. Smith arrived early. The meeting was cancelled! Why? No idea"
	first := s.SegmentSentences(text)
	second := s.SegmentSentences(strings.Join(first, " "))
	assert.Equal(t, first, second)
}

func TestProcessSentencePositions(t *testing.T) {
	s := NewSegmenter()
	seg := s.Process("One. Two. Three.")
	assert.Equal(t, 3, len(seg.Sentences))
	for i, sent := range seg.Sentences {
		assert.Equal(t, i, sent.Position)
	}
}

func TestGetStatistics(t *testing.T) {
	s := NewSegmenter()
	seg := s.Process("The cat sat. The cat ran!")
	stats := s.GetStatistics(seg)
	assert.Equal(t, 2, stats.SentenceCount)
	assert.Equal(t, 6, stats.WordCount)
	// "the" and "cat" repeat
	assert.Equal(t, 4, stats.UniqueWordCount)
	assert.Equal(t, 8, stats.TokenCount)
	assert.Equal(t, 2, stats.StopwordCount)
	assert.Equal(t, 3.0, stats.AvgWordsPerSentence)
}

func TestGetStatisticsEmpty(t *testing.T) {
	s := NewSegmenter()
	stats := s.GetStatistics(s.Process(""))
	assert.Equal(t, 0, stats.SentenceCount)
	assert.Equal(t, 0.0, stats.AvgWordsPerSentence)
}
