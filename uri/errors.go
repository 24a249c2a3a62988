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
	"errors"
	"fmt"
)

// errNoMatch is the sentinel cause carried by every grammar failure. The
// parser works by ordered alternation, so by the time an entry point gives
// up there is no single offending character to point at.
var errNoMatch = errors.New("no grammar alternative matched")

// ParseError is returned by the parse entry points when the input does not
// match the requested production. The message is diagnostic text only;
// callers should not parse it.
type ParseError struct {
	// Message describes the failure.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error returns a string representation of the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("uri parse error: %s", e.Message)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError builds a ParseError for input rejected by a production.
func newParseError(production, input string) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("cannot parse %q as %s", input, production),
		Err:     errNoMatch,
	}
}

// DecodeError is returned by Decode when a percent sign is followed by two
// characters that are not both hexadecimal digits.
type DecodeError struct {
	// Sequence is the malformed triple, including the percent sign.
	Sequence string
}

// Error returns a string representation of the decode error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid percent encoding %q", e.Sequence)
}
