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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"mlex/merror"
)

func TestTableAddAndMatch(t *testing.T) {
	tbl := NewTable()
	err := tbl.Add("un", KindPrefix, "not")
	assert.NoError(t, err)
	entry, rest, ok := tbl.MatchPrefix("unhappy", 3)
	assert.True(t, ok)
	assert.Equal(t, "un", entry.Form)
	assert.Equal(t, "happy", rest)
}

func TestTableAddDuplicate(t *testing.T) {
	tbl := NewTable()
	assert.NoError(t, tbl.Add("ing", KindSuffix, "present participle"))
	err := tbl.Add("ing", KindSuffix, "different meaning")
	assert.Error(t, err)
	assert.IsType(t, merror.ConflictError{}, err)
	// the table must be left unchanged
	entries := tbl.Entries(KindSuffix)
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "present participle", entries[0].Meaning)
}

func TestTableSameFormDifferentKind(t *testing.T) {
	tbl := NewTable()
	assert.NoError(t, tbl.Add("er", KindSuffix, "agent"))
	assert.NoError(t, tbl.Add("er", KindPrefix, "hypothetical"))
}

func TestTableAddEmptyForm(t *testing.T) {
	tbl := NewTable()
	err := tbl.Add("  ", KindSuffix, "")
	assert.Error(t, err)
	assert.IsType(t, merror.InputError{}, err)
}

func TestTableAddInvalidKind(t *testing.T) {
	tbl := NewTable()
	err := tbl.Add("xyz", MorphemeKind("circumfix"), "")
	assert.Error(t, err)
}

func TestTableLongestFirstOrdering(t *testing.T) {
	tbl := NewTable()
	assert.NoError(t, tbl.Add("s", KindSuffix, ""))
	assert.NoError(t, tbl.Add("ness", KindSuffix, ""))
	assert.NoError(t, tbl.Add("es", KindSuffix, ""))
	entries := tbl.Entries(KindSuffix)
	assert.Equal(t, []string{"ness", "es", "s"}, []string{
		entries[0].Form, entries[1].Form, entries[2].Form})
}

func TestTableEqualLengthInsertionOrder(t *testing.T) {
	tbl := NewTable()
	assert.NoError(t, tbl.Add("ed", KindSuffix, "first"))
	assert.NoError(t, tbl.Add("es", KindSuffix, "second"))
	assert.NoError(t, tbl.Add("er", KindSuffix, "third"))
	entries := tbl.Entries(KindSuffix)
	assert.Equal(t, "first", entries[0].Meaning)
	assert.Equal(t, "second", entries[1].Meaning)
	assert.Equal(t, "third", entries[2].Meaning)
}

func TestTableMatchRespectsMinRemainder(t *testing.T) {
	tbl := NewTable()
	assert.NoError(t, tbl.Add("ing", KindSuffix, ""))
	_, _, ok := tbl.MatchSuffix("sing", 3)
	assert.False(t, ok)
	entry, rest, ok := tbl.MatchSuffix("walking", 3)
	assert.True(t, ok)
	assert.Equal(t, "ing", entry.Form)
	assert.Equal(t, "walk", rest)
}

func TestTableNormalizesForm(t *testing.T) {
	tbl := NewTable()
	assert.NoError(t, tbl.Add(" ING ", KindSuffix, ""))
	entry, _, ok := tbl.MatchSuffix("walking", 3)
	assert.True(t, ok)
	assert.Equal(t, "ing", entry.Form)
}

// readers must never observe a partially written entry while Add
// runs; the assertions here are meaningful under the race detector
func TestTableConcurrentReadsDuringAdd(t *testing.T) {
	tbl := NewDefaultTable()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if e, rest, ok := tbl.MatchPrefix("undercooked", 3); ok {
					assert.Equal(t, "undercooked", e.Form+rest)
					assert.Equal(t, KindPrefix, e.Kind)
				}
				if e, rest, ok := tbl.MatchSuffix("happiness", 3); ok {
					assert.Equal(t, "happiness", rest+e.Form)
					assert.Equal(t, KindSuffix, e.Kind)
				}
				for _, e := range tbl.Entries(KindSuffix) {
					assert.NotEmpty(t, e.Form)
					assert.NoError(t, e.Kind.Validate())
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		assert.NoError(t, tbl.Add(fmt.Sprintf("zz%02d", i), KindSuffix, "synthetic"))
	}
	close(stop)
	wg.Wait()
	assert.Equal(t, len(defaultMorphemes)+50, tbl.Size())
}

func TestDefaultTableSeed(t *testing.T) {
	tbl := NewDefaultTable()
	assert.Equal(t, len(defaultMorphemes), tbl.Size())
	_, _, ok := tbl.MatchPrefix("undercook", 3)
	assert.True(t, ok)
	_, _, ok = tbl.MatchSuffix("happiness", 3)
	assert.True(t, ok)
}
