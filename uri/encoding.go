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

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Decode expands percent-encoded triples in s. Each %HH becomes the
// character with code point HH. A percent sign followed by fewer than two
// characters is re-emitted literally; a percent sign followed by two
// characters that are not both hexadecimal digits is a *DecodeError.
func Decode(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '%' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+2 >= len(s) {
			b.WriteString(s[i:])
			break
		}
		h1, h2 := s[i+1], s[i+2]
		if !isHexDigit(h1) || !isHexDigit(h2) {
			return "", &DecodeError{Sequence: s[i : i+3]}
		}
		b.WriteRune(rune(hexVal(h1)<<4 | hexVal(h2)))
		i += 3
	}
	return b.String(), nil
}

// Encode writes s to b, percent-encoding every byte that is not unreserved.
// Multi-byte characters are encoded byte by byte in UTF-8 order, with
// uppercase hexadecimal digits. It never fails.
func Encode(s string, b *strings.Builder) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(b, "%%%02X", c)
	}
}

// hexVal returns the value of the hexadecimal digit b. The caller must have
// checked isHexDigit.
func hexVal(b byte) byte {
	switch {
	case b <= '9':
		return b - '0'
	case b <= 'F':
		return b - 'A' + 10
	default:
		return b - 'a' + 10
	}
}

// encodeComponent NFC-normalizes s and percent-encodes it. Builders use it
// to serialize decoded component text back into URI form.
func encodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	Encode(norm.NFC.String(s), &b)
	return b.String()
}

// decodeOrRaw percent-decodes s, keeping the encoded text unchanged when
// decoding fails. Builder conversions use it so that a malformed component
// never makes the conversion itself fail.
func decodeOrRaw(s string) string {
	d, err := Decode(s)
	if err != nil {
		return s
	}
	return d
}
