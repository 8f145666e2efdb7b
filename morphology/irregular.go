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

// Irregular forms are an enumerable exception list, not a general
// solution. The tables below cover the most frequent English cases;
// they are consulted before any affix stripping takes place.
// Forms the suffix reconstruction rules derive correctly on their
// own (running, sitting, ...) are deliberately not listed here so
// their surface decomposition (root + suffix) stays available.

var irregularVerbs = map[string]string{
	"was": "be", "were": "be", "been": "be", "being": "be",
	"had": "have", "has": "have", "having": "have",
	"did": "do", "does": "do", "done": "do", "doing": "do",
	"went": "go", "gone": "go", "going": "go",
	"saw": "see", "seen": "see", "seeing": "see",
	"took": "take", "taken": "take", "taking": "take",
	"came": "come", "coming": "come",
	"got": "get", "gotten": "get",
	"made": "make", "making": "make",
	"said": "say", "saying": "say",
	"thought": "think", "thinking": "think",
	"found": "find", "finding": "find",
	"gave": "give", "given": "give", "giving": "give",
	"told": "tell", "telling": "tell",
	"felt": "feel", "feeling": "feel",
	"knew": "know", "known": "know", "knowing": "know",
	"left": "leave", "leaving": "leave",
	"kept": "keep", "keeping": "keep",
	"held": "hold", "holding": "hold",
	"wrote": "write", "written": "write", "writing": "write",
	"stood": "stand", "standing": "stand",
	"heard": "hear", "hearing": "hear",
	"brought": "bring", "bringing": "bring",
	"began": "begin", "begun": "begin",
	"ran": "run",
	"sat": "sit",
	"spoke": "speak", "spoken": "speak", "speaking": "speak",
	"ate": "eat", "eaten": "eat", "eating": "eat",
}

var irregularPlurals = map[string]string{
	"children": "child",
	"men":      "man",
	"women":    "woman",
	"feet":     "foot",
	"teeth":    "tooth",
	"mice":     "mouse",
	"geese":    "goose",
	"people":   "person",
}
