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
	"sync"

	"mlex/merror"
)

type MorphemeKind string

const (
	KindPrefix MorphemeKind = "prefix"
	KindSuffix MorphemeKind = "suffix"
	KindRoot   MorphemeKind = "root"
	KindInfix  MorphemeKind = "infix"
)

func (k MorphemeKind) Validate() error {
	if k == KindPrefix || k == KindSuffix || k == KindRoot || k == KindInfix {
		return nil
	}
	return merror.InputError{Msg: fmt.Sprintf("unknown morpheme kind: %s", k)}
}

// MorphemeEntry is immutable reference data looked up
// by exact string match.
type MorphemeEntry struct {
	Form    string       `json:"form"`
	Kind    MorphemeKind `json:"kind"`
	Meaning string       `json:"meaning,omitempty"`
}

// Table holds known prefixes, suffixes and roots. Affix entries of
// each kind are kept sorted by form length (longest first) with ties
// broken by insertion order - the first inserted entry wins. This
// ordering is part of the contract: it decides which affix matches
// when several candidates share a common prefix/suffix, and it must
// stay stable so the analysis output is deterministic.
//
// The table supports concurrent reads; Add is the only writer path
// and is serialized against readers, so an in-flight analysis sees
// either the pre- or post-mutation table, never a partial entry.
//
// A table covers a single language. A multi-language deployment
// runs one table per language, each bootstrapped from the seed
// inventory plus the morphemes stored for that language (see
// database.AnalysisDB.LoadMorphemes).
type Table struct {
	mu       sync.RWMutex
	prefixes []MorphemeEntry
	suffixes []MorphemeEntry
	infixes  []MorphemeEntry
	roots    map[string]MorphemeEntry
	present  map[string]bool
}

func NewTable() *Table {
	return &Table{
		roots:   make(map[string]MorphemeEntry),
		present: make(map[string]bool),
	}
}

// NewDefaultTable creates a table seeded with the built-in
// English affix inventory.
func NewDefaultTable() *Table {
	t := NewTable()
	for _, e := range defaultMorphemes {
		t.Add(e.Form, e.Kind, e.Meaning)
	}
	return t
}

func entryKey(form string, kind MorphemeKind) string {
	return string(kind) + ":" + form
}

// Add registers a new morpheme. A duplicate (form, kind) pair
// is rejected with merror.ConflictError; the table is left
// unchanged in that case.
func (t *Table) Add(form string, kind MorphemeKind, meaning string) error {
	form = strings.ToLower(strings.TrimSpace(form))
	if form == "" {
		return merror.InputError{Msg: "empty morpheme form"}
	}
	if err := kind.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	key := entryKey(form, kind)
	if t.present[key] {
		return merror.ConflictError{
			Msg: fmt.Sprintf("morpheme already registered: %s (%s)", form, kind),
		}
	}
	entry := MorphemeEntry{Form: form, Kind: kind, Meaning: meaning}
	switch kind {
	case KindPrefix:
		t.prefixes = insertByLength(t.prefixes, entry)
	case KindSuffix:
		t.suffixes = insertByLength(t.suffixes, entry)
	case KindInfix:
		t.infixes = insertByLength(t.infixes, entry)
	case KindRoot:
		t.roots[form] = entry
	}
	t.present[key] = true
	return nil
}

// insertByLength places the entry after all entries of greater or
// equal form length, i.e. among equally long forms the first
// inserted one keeps precedence.
func insertByLength(entries []MorphemeEntry, entry MorphemeEntry) []MorphemeEntry {
	pos := len(entries)
	for i, v := range entries {
		if len(v.Form) < len(entry.Form) {
			pos = i
			break
		}
	}
	entries = append(entries, MorphemeEntry{})
	copy(entries[pos+1:], entries[pos:])
	entries[pos] = entry
	return entries
}

// MatchPrefix finds the first (i.e. longest, then earliest inserted)
// prefix entry which is a proper prefix of word leaving a remainder
// of at least minRemainder characters.
func (t *Table) MatchPrefix(word string, minRemainder int) (MorphemeEntry, string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, e := range t.prefixes {
		if strings.HasPrefix(word, e.Form) && len(word)-len(e.Form) >= minRemainder {
			return e, word[len(e.Form):], true
		}
	}
	return MorphemeEntry{}, word, false
}

// MatchSuffix is the suffix counterpart of MatchPrefix.
func (t *Table) MatchSuffix(word string, minRemainder int) (MorphemeEntry, string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, e := range t.suffixes {
		if strings.HasSuffix(word, e.Form) && len(word)-len(e.Form) >= minRemainder {
			return e, word[:len(word)-len(e.Form)], true
		}
	}
	return MorphemeEntry{}, word, false
}

// Root returns the root entry for the form, if known.
func (t *Table) Root(form string) (MorphemeEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.roots[form]
	return e, ok
}

// Entries returns a copy of all entries of the given kind
// in their lookup order.
func (t *Table) Entries(kind MorphemeKind) []MorphemeEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var src []MorphemeEntry
	switch kind {
	case KindPrefix:
		src = t.prefixes
	case KindSuffix:
		src = t.suffixes
	case KindInfix:
		src = t.infixes
	case KindRoot:
		ans := make([]MorphemeEntry, 0, len(t.roots))
		for _, e := range t.roots {
			ans = append(ans, e)
		}
		return ans
	}
	ans := make([]MorphemeEntry, len(src))
	copy(ans, src)
	return ans
}

func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.prefixes) + len(t.suffixes) + len(t.infixes) + len(t.roots)
}

// defaultMorphemes is the built-in seed inventory. The slice order
// matters for equally long forms (see Table docs).
var defaultMorphemes = []MorphemeEntry{
	{Form: "un", Kind: KindPrefix, Meaning: "not, opposite of"},
	{Form: "re", Kind: KindPrefix, Meaning: "again, back"},
	{Form: "pre", Kind: KindPrefix, Meaning: "before"},
	{Form: "post", Kind: KindPrefix, Meaning: "after"},
	{Form: "dis", Kind: KindPrefix, Meaning: "not, opposite"},
	{Form: "mis", Kind: KindPrefix, Meaning: "wrongly"},
	{Form: "anti", Kind: KindPrefix, Meaning: "against"},
	{Form: "auto", Kind: KindPrefix, Meaning: "self"},
	{Form: "co", Kind: KindPrefix, Meaning: "together"},
	{Form: "de", Kind: KindPrefix, Meaning: "remove, reduce"},
	{Form: "ex", Kind: KindPrefix, Meaning: "out of, former"},
	{Form: "in", Kind: KindPrefix, Meaning: "not, in"},
	{Form: "inter", Kind: KindPrefix, Meaning: "between"},
	{Form: "non", Kind: KindPrefix, Meaning: "not"},
	{Form: "over", Kind: KindPrefix, Meaning: "excessive"},
	{Form: "sub", Kind: KindPrefix, Meaning: "under"},
	{Form: "super", Kind: KindPrefix, Meaning: "above"},
	{Form: "trans", Kind: KindPrefix, Meaning: "across"},
	{Form: "under", Kind: KindPrefix, Meaning: "below"},
	{Form: "ed", Kind: KindSuffix, Meaning: "past tense"},
	{Form: "ing", Kind: KindSuffix, Meaning: "present participle"},
	{Form: "s", Kind: KindSuffix, Meaning: "plural/3rd person"},
	{Form: "es", Kind: KindSuffix, Meaning: "plural"},
	{Form: "er", Kind: KindSuffix, Meaning: "comparative/agent"},
	{Form: "est", Kind: KindSuffix, Meaning: "superlative"},
	{Form: "ly", Kind: KindSuffix, Meaning: "adverb"},
	{Form: "ness", Kind: KindSuffix, Meaning: "state/quality"},
	{Form: "tion", Kind: KindSuffix, Meaning: "action/process"},
	{Form: "sion", Kind: KindSuffix, Meaning: "action/process"},
	{Form: "ment", Kind: KindSuffix, Meaning: "action/result"},
	{Form: "able", Kind: KindSuffix, Meaning: "capable of"},
	{Form: "ible", Kind: KindSuffix, Meaning: "capable of"},
	{Form: "ful", Kind: KindSuffix, Meaning: "full of"},
	{Form: "less", Kind: KindSuffix, Meaning: "without"},
	{Form: "ous", Kind: KindSuffix, Meaning: "possessing"},
	{Form: "ive", Kind: KindSuffix, Meaning: "tending to"},
	{Form: "al", Kind: KindSuffix, Meaning: "relating to"},
	{Form: "ity", Kind: KindSuffix, Meaning: "state/quality"},
	{Form: "ize", Kind: KindSuffix, Meaning: "make/become"},
	{Form: "ise", Kind: KindSuffix, Meaning: "make/become"},
}
