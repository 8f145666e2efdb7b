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

import "strings"

func isVowel(c byte) bool {
	return c == 'a' || c == 'e' || c == 'i' || c == 'o' || c == 'u'
}

// endsWithDoubledConsonant reports whether the last two characters
// are the same consonant (running -> runn).
func endsWithDoubledConsonant(s string) bool {
	if len(s) < 3 {
		return false
	}
	last := s[len(s)-1]
	return last == s[len(s)-2] && !isVowel(last) && last != 'y'
}

// reconstructRoot undoes the orthographic changes inflection
// introduced into the stripped root, e.g. stripping "-ing" from
// "running" leaves "runn" which must become "run", and stripping
// "-es" from "babies" leaves "babi" which must become "baby".
// The rules are a deterministic approximation - irregular cases
// belong to the irregular-form tables.
func reconstructRoot(root, suffix string) string {
	switch suffix {
	case "ing":
		if endsWithDoubledConsonant(root) {
			return root[:len(root)-1]
		}
	case "ed":
		if endsWithDoubledConsonant(root) {
			return root[:len(root)-1]
		}
		if strings.HasSuffix(root, "i") {
			// cried -> cri -> cry
			return root[:len(root)-1] + "y"
		}
	case "es":
		if strings.HasSuffix(root, "i") {
			// babies -> babi -> baby
			return root[:len(root)-1] + "y"
		}
		if strings.HasSuffix(root, "v") {
			// leaves -> leav -> leaf
			return root[:len(root)-1] + "f"
		}
	}
	return root
}
