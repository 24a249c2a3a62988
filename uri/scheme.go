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

import "strings"

// SchemeKind discriminates the recognized schemes from everything else.
type SchemeKind int

const (
	// SchemeOther is any scheme other than the recognized ones.
	SchemeOther SchemeKind = iota
	// SchemeHTTP is the http scheme.
	SchemeHTTP
	// SchemeHTTPS is the https scheme.
	SchemeHTTPS
)

// Scheme is a parsed scheme component. Raw is the exact matched text; Kind
// classifies it case-insensitively so that HTTP and HTTPS can be recognized
// without string comparisons downstream.
type Scheme struct {
	Kind SchemeKind
	Raw  string
}

// classifyScheme maps scheme text to its kind, ignoring case.
func classifyScheme(raw string) SchemeKind {
	switch {
	case strings.EqualFold(raw, "http"):
		return SchemeHTTP
	case strings.EqualFold(raw, "https"):
		return SchemeHTTPS
	default:
		return SchemeOther
	}
}

// String returns the raw matched text.
func (s Scheme) String() string {
	return s.Raw
}

// Text returns the canonical scheme text: "http" or "https" for the
// recognized kinds, the raw text otherwise.
func (s Scheme) Text() string {
	switch s.Kind {
	case SchemeHTTP:
		return "http"
	case SchemeHTTPS:
		return "https"
	default:
		return s.Raw
	}
}

// Builder converts the parsed scheme into an owning SchemeBuilder.
func (s Scheme) Builder() SchemeBuilder {
	return SchemeBuilder{Kind: s.Kind, Name: s.Raw}
}

// SchemeBuilder is an owning, mutable scheme. Name is only consulted when
// Kind is SchemeOther.
type SchemeBuilder struct {
	Kind SchemeKind
	Name string
}

// String serializes the scheme. Recognized kinds render their canonical
// lowercase text.
func (b SchemeBuilder) String() string {
	switch b.Kind {
	case SchemeHTTP:
		return "http"
	case SchemeHTTPS:
		return "https"
	default:
		return b.Name
	}
}
