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

//nolint:testpackage // White-box tests for the percent codec.
package uri

import (
	"errors"
	"strings"
	"testing"
)

// TestDecode tests percent-decoding, including the malformed-input
// policies: a short trailer is re-emitted literally, two non-hex digits
// are an error.
func TestDecode(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "hello", "hello", false},
		{"space", "hello%20world", "hello world", false},
		{"lowercase hex", "%2f", "/", false},
		{"uppercase hex", "%2F", "/", false},
		{"adjacent triples", "%41%42%43", "ABC", false},
		{"high byte", "%E9", "é", false},
		{"bare percent at end", "caf%", "caf%", false},
		{"one char after percent", "caf%a", "caf%a", false},
		{"non-hex pair", "caf%zz", "", true},
		{"percent then delimiter", "a%2#b", "", true},
		{"empty", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.input)
			if tc.wantErr {
				var decErr *DecodeError
				if !errors.As(err, &decErr) {
					t.Fatalf("Decode(%q) error = %v, want *DecodeError", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Decode(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// TestDecodeErrorSequence tests that the error reports the offending
// triple.
func TestDecodeErrorSequence(t *testing.T) {
	_, err := Decode("x%G1y")
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if decErr.Sequence != "%G1" {
		t.Errorf("Sequence = %q, want %q", decErr.Sequence, "%G1")
	}
}

// TestEncode tests percent-encoding, including multi-byte UTF-8 input.
func TestEncode(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"unreserved untouched", "AZaz09-._~", "AZaz09-._~"},
		{"space", "a b", "a%20b"},
		{"reserved", "/?#[]@", "%2F%3F%23%5B%5D%40"},
		{"percent itself", "100%", "100%25"},
		{"two-byte rune", "é", "%C3%A9"},
		{"three-byte rune", "€", "%E2%82%AC"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var b strings.Builder
			Encode(tc.input, &b)
			if got := b.String(); got != tc.want {
				t.Errorf("Encode(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// TestEncodeDecodeRoundTrip tests that decoding an encoded string returns
// the original for ASCII input, where decoding is byte-exact.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"with space",
		"a/b?c#d",
		"100% sure",
		"key=value&key2=value2",
		"!$&'()*+,;=:@",
	}

	for _, in := range inputs {
		var b strings.Builder
		Encode(in, &b)
		got, err := Decode(b.String())
		if err != nil {
			t.Fatalf("Decode(Encode(%q)) unexpected error: %v", in, err)
		}
		if got != in {
			t.Errorf("Decode(Encode(%q)) = %q", in, got)
		}
	}
}

// TestEncodeComponent tests that component text is NFC-normalized before
// encoding.
func TestEncodeComponent(t *testing.T) {
	// "e" followed by a combining acute accent composes to "é".
	decomposed := "cafe\u0301"
	if got, want := encodeComponent(decomposed), "caf%C3%A9"; got != want {
		t.Errorf("encodeComponent(%q) = %q, want %q", decomposed, got, want)
	}
}

// TestDecodeOrRaw tests the builder conversion fallback.
func TestDecodeOrRaw(t *testing.T) {
	if got := decodeOrRaw("a%20b"); got != "a b" {
		t.Errorf("decodeOrRaw(%q) = %q, want %q", "a%20b", got, "a b")
	}
	if got := decodeOrRaw("a%zzb"); got != "a%zzb" {
		t.Errorf("decodeOrRaw(%q) = %q, want the input unchanged", "a%zzb", got)
	}
}
