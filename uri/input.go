/*
Copyright 2026 Minuri Authors

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

package uri

// scanner is a byte cursor over the input string. Productions record the
// position with mark, attempt a match, and rewind with restore when an
// ordered alternative fails. Entities capture the consumed span with since,
// which keeps them zero-copy views of the original input.
type scanner struct {
	src string
	pos int
}

// newScanner creates a scanner positioned at the start of s.
func newScanner(s string) *scanner {
	return &scanner{src: s}
}

// eof reports whether the scanner has consumed all input.
func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

// mark returns the current position for a later restore or since.
func (s *scanner) mark() int {
	return s.pos
}

// restore rewinds the scanner to a position previously returned by mark.
func (s *scanner) restore(m int) {
	s.pos = m
}

// since returns the input consumed between mark m and the current position.
func (s *scanner) since(m int) string {
	return s.src[m:s.pos]
}

// peek returns the next byte without consuming it. The second return value
// is false at end of input.
func (s *scanner) peek() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	return s.src[s.pos], true
}

// next consumes and returns the next byte. The second return value is false
// at end of input.
func (s *scanner) next() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	b := s.src[s.pos]
	s.pos++
	return b, true
}

// take consumes the next byte if it equals b and reports whether it did.
func (s *scanner) take(b byte) bool {
	if s.eof() || s.src[s.pos] != b {
		return false
	}
	s.pos++
	return true
}

// takeLit consumes lit if the input starts with it at the current position.
func (s *scanner) takeLit(lit string) bool {
	if len(s.src)-s.pos < len(lit) || s.src[s.pos:s.pos+len(lit)] != lit {
		return false
	}
	s.pos += len(lit)
	return true
}

// takePct consumes a pct-encoded triple ("%" HEXDIG HEXDIG). On a mismatch
// nothing is consumed.
func (s *scanner) takePct() bool {
	m := s.pos
	if !s.take('%') {
		return false
	}
	h1, ok1 := s.next()
	h2, ok2 := s.next()
	if !ok1 || !ok2 || !isHexDigit(h1) || !isHexDigit(h2) {
		s.restore(m)
		return false
	}
	return true
}

// takeWhile consumes the run of bytes satisfying pred and returns it. The
// run may be empty.
func (s *scanner) takeWhile(pred func(byte) bool) string {
	m := s.pos
	for {
		b, ok := s.peek()
		if !ok || !pred(b) {
			break
		}
		s.pos++
	}
	return s.since(m)
}
