/*
Copyright 2026 Koilabs Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package iri

import (
	"strings"
	"unicode/utf8"
)

// scanner is a cursor over the code points of an input string. It supports
// single-rune lookahead and save/restore of the cursor position, which is all
// the grammar needs: each production dispatches on its first distinguishing
// character, so no deeper backtracking ever occurs.
//
// Offsets are byte offsets into the original string, so callers can slice
// the input directly when reporting diagnostics.
type scanner struct {
	s   string
	off int
}

func newScanner(s string) *scanner {
	return &scanner{s: s}
}

// peek returns the next code point without advancing the cursor.
func (sc *scanner) peek() (rune, bool) {
	if sc.off >= len(sc.s) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(sc.s[sc.off:])
	return r, true
}

// next returns the next code point and advances the cursor past it.
// Advancing past the end returns false, never an error.
func (sc *scanner) next() (rune, bool) {
	if sc.off >= len(sc.s) {
		return 0, false
	}
	r, n := utf8.DecodeRuneInString(sc.s[sc.off:])
	sc.off += n
	return r, true
}

// mark saves the current cursor position for a later reset.
func (sc *scanner) mark() int {
	return sc.off
}

// reset restores a position previously obtained from mark.
func (sc *scanner) reset(m int) {
	sc.off = m
}

// offset returns the current byte offset into the input.
func (sc *scanner) offset() int {
	return sc.off
}

// rest returns the unread portion of the input.
func (sc *scanner) rest() string {
	return sc.s[sc.off:]
}

// text returns the input bytes between two offsets.
func (sc *scanner) text(from, to int) string {
	return sc.s[from:to]
}

// skip advances the cursor by n bytes.
func (sc *scanner) skip(n int) {
	sc.off += n
}

// startsWith reports whether the unread input begins with r.
func (sc *scanner) startsWith(r rune) bool {
	pr, ok := sc.peek()
	return ok && pr == r
}

// startsWithString reports whether the unread input begins with s.
func (sc *scanner) startsWithString(s string) bool {
	return strings.HasPrefix(sc.rest(), s)
}
