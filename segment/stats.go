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

import "math"

// TextStatistics is a pure aggregation over an already computed
// segmentation; it is derived data and never persisted on its own.
type TextStatistics struct {
	SentenceCount       int     `json:"sentenceCount"`
	WordCount           int     `json:"wordCount"`
	UniqueWordCount     int     `json:"uniqueWordCount"`
	TokenCount          int     `json:"tokenCount"`
	StopwordCount       int     `json:"stopwordCount"`
	AvgWordsPerSentence float64 `json:"avgWordsPerSentence"`
}

// GetStatistics aggregates counts from the segmentation result.
// No re-tokenization happens here; word uniqueness is
// case-insensitive (words are already lowercased).
func (s *Segmenter) GetStatistics(seg *Segmented) TextStatistics {
	var ans TextStatistics
	ans.SentenceCount = len(seg.Sentences)
	unique := make(map[string]bool)
	for _, sent := range seg.Sentences {
		ans.WordCount += len(sent.Words)
		ans.TokenCount += len(sent.Tokens)
		for _, w := range sent.Words {
			unique[w] = true
		}
		for _, t := range sent.Tokens {
			if t.IsStopword {
				ans.StopwordCount++
			}
		}
	}
	ans.UniqueWordCount = len(unique)
	if ans.SentenceCount > 0 {
		avg := float64(ans.WordCount) / float64(ans.SentenceCount)
		ans.AvgWordsPerSentence = math.Round(avg*100) / 100
	}
	return ans
}
