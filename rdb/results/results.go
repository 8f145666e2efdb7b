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

package results

import (
	"errors"

	"mlex/morphology"
	"mlex/pipeline"
	"mlex/segment"
)

const (
	ResultTypeTextAnalysis     ResultType = "textAnalysis"
	ResultTypeWordAnalysis     ResultType = "wordAnalysis"
	ResultTypeSentenceAnalysis ResultType = "sentenceAnalysis"
	ResultTypeLemmata          ResultType = "lemmata"
	ResultTypeMorphemeAdded    ResultType = "morphemeAdded"
	ResultTypeError            ResultType = "error"
)

type ResultType string

func (rt ResultType) String() string {
	return string(rt)
}

// SerializableResult is any value a worker can publish
// as an answer to a query.
type SerializableResult interface {
	Type() ResultType
	Err() error
}

func errToStr(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

func strToErr(s string) error {
	if s != "" {
		return errors.New(s)
	}
	return nil
}

// ----

type TextAnalysis struct {
	Result *pipeline.AnalysisResult `json:"result"`

	// StorageID is the database id of the stored result
	// (zero if storing was not requested or not configured)
	StorageID int64 `json:"storageId,omitempty"`

	Error string `json:"error,omitempty"`
}

func (res *TextAnalysis) Type() ResultType {
	return ResultTypeTextAnalysis
}

func (res *TextAnalysis) Err() error {
	return strToErr(res.Error)
}

// ----

type WordAnalysis struct {
	Analysis morphology.WordAnalysis `json:"analysis"`
	Error    string                  `json:"error,omitempty"`
}

func (res *WordAnalysis) Type() ResultType {
	return ResultTypeWordAnalysis
}

func (res *WordAnalysis) Err() error {
	return strToErr(res.Error)
}

// ----

type SentenceAnalysis struct {
	Sentence  string                    `json:"sentence"`
	Tokens    []segment.Token           `json:"tokens"`
	WordCount int                       `json:"wordCount"`
	Analyses  []morphology.WordAnalysis `json:"analyses"`
	Error     string                    `json:"error,omitempty"`
}

func (res *SentenceAnalysis) Type() ResultType {
	return ResultTypeSentenceAnalysis
}

func (res *SentenceAnalysis) Err() error {
	return strToErr(res.Error)
}

// ----

type Lemmata struct {
	Text       string `json:"text"`
	Lemmatized string `json:"lemmatized"`
	Error      string `json:"error,omitempty"`
}

func (res *Lemmata) Type() ResultType {
	return ResultTypeLemmata
}

func (res *Lemmata) Err() error {
	return strToErr(res.Error)
}

// ----

type MorphemeAdded struct {
	Entry     morphology.MorphemeEntry `json:"entry"`
	StorageID int64                    `json:"storageId,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

func (res *MorphemeAdded) Type() ResultType {
	return ResultTypeMorphemeAdded
}

func (res *MorphemeAdded) Err() error {
	return strToErr(res.Error)
}

// ----

type ErrorResult struct {
	Func  string `json:"func"`
	Error string `json:"error"`
}

func (res *ErrorResult) Type() ResultType {
	return ResultTypeError
}

func (res *ErrorResult) Err() error {
	return strToErr(res.Error)
}

// NewErrorResult is a shortcut for wrapping a failed operation.
func NewErrorResult(fn string, err error) *ErrorResult {
	return &ErrorResult{Func: fn, Error: errToStr(err)}
}
