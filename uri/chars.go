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

// This file defines the RFC 3986 character classes as byte predicates.
// Percent-encoded triples span three bytes and are handled by the scanner
// helpers, not here.

// isAlpha reports whether b is an ASCII letter (ALPHA).
func isAlpha(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// isDigit reports whether b is an ASCII digit (DIGIT).
func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// isHexDigit reports whether b is a hexadecimal digit (HEXDIG).
func isHexDigit(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// isUnreserved reports whether b may appear in a URI without being
// percent-encoded.
func isUnreserved(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '-' || b == '.' || b == '_' || b == '~'
}

// isSubDelim reports whether b is one of the sub-delims.
func isSubDelim(b byte) bool {
	switch b {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// isGenDelim reports whether b is one of the gen-delims.
func isGenDelim(b byte) bool {
	switch b {
	case ':', '/', '?', '#', '[', ']', '@':
		return true
	}
	return false
}

// isReserved reports whether b is a reserved character.
func isReserved(b byte) bool {
	return isGenDelim(b) || isSubDelim(b)
}

// isSchemeByte reports whether b may appear in a scheme after its leading
// letter.
func isSchemeByte(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '+' || b == '-' || b == '.'
}

// isPCharByte reports whether b is a single-byte pchar. The pct-encoded
// alternative of pchar is handled separately.
func isPCharByte(b byte) bool {
	return isUnreserved(b) || isSubDelim(b) || b == ':' || b == '@'
}

// isUserInfoByte reports whether b may appear in the userinfo component
// outside of a percent-encoded triple.
func isUserInfoByte(b byte) bool {
	return isUnreserved(b) || isSubDelim(b) || b == ':'
}

// isRegNameByte reports whether b may appear in a registered name outside
// of a percent-encoded triple.
func isRegNameByte(b byte) bool {
	return isUnreserved(b) || isSubDelim(b)
}

// isIPvFutureByte reports whether b may appear after the version prefix of
// an IPvFuture literal.
func isIPvFutureByte(b byte) bool {
	return isUnreserved(b) || isSubDelim(b) || b == ':'
}

// isFragmentByte reports whether b may appear in a query or fragment run
// outside of a percent-encoded triple. The two components share the same
// character class.
func isFragmentByte(b byte) bool {
	return isPCharByte(b) || b == '/' || b == '?'
}
