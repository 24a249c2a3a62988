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

// Package uri parses and reconstructs Uniform Resource Identifiers as
// defined by RFC 3986.
//
// Parsing produces a tree of entities whose fields are substring views of
// the input, with the percent-encoding preserved; String on a parsed entity
// returns the exact matched text. Each entity has a Builder counterpart
// that owns its strings with the percent-encoding removed; builders are
// mutable and String on a builder re-encodes. The two representations meet
// in the Builder conversion methods.
//
// The package performs no normalization and no relative-reference
// resolution.
package uri

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// URI is a parsed absolute URI. Raw is the exact consumed text; trailing
// input beyond the match is not part of it. Authority, Query and Fragment
// are nil when their component is absent. Path is always present, possibly
// PathEmpty.
type URI struct {
	Raw       string
	Scheme    Scheme
	Authority *Authority
	Path      Path
	Query     *Query
	Fragment  *Fragment
}

// String returns the raw consumed text.
func (u *URI) String() string {
	return u.Raw
}

// Builder converts the parsed URI into an owning URIBuilder, converting
// every component in turn.
func (u *URI) Builder() *URIBuilder {
	b := &URIBuilder{
		Scheme: u.Scheme.Builder(),
		Path:   u.Path.Builder(),
	}
	if u.Authority != nil {
		b.Authority = u.Authority.Builder()
	}
	if u.Query != nil {
		b.Query = u.Query.Builder()
	}
	if u.Fragment != nil {
		b.Fragment = u.Fragment.Builder()
	}
	return b
}

// URIBuilder is an owning, mutable URI.
type URIBuilder struct {
	Scheme    SchemeBuilder
	Authority *AuthorityBuilder
	Path      PathBuilder
	Query     *QueryBuilder
	Fragment  *FragmentBuilder
}

// String serializes the URI, re-encoding every component.
func (b *URIBuilder) String() string {
	var sb strings.Builder
	sb.WriteString(b.Scheme.String())
	sb.WriteByte(':')
	if b.Authority != nil {
		sb.WriteString("//")
		sb.WriteString(b.Authority.String())
	}
	sb.WriteString(b.Path.String())
	if b.Query != nil {
		sb.WriteByte('?')
		sb.WriteString(b.Query.String())
	}
	if b.Fragment != nil {
		sb.WriteByte('#')
		sb.WriteString(b.Fragment.String())
	}
	return sb.String()
}

// RelativeReference is a parsed relative reference: a URI without a scheme.
type RelativeReference struct {
	Raw       string
	Authority *Authority
	Path      Path
	Query     *Query
	Fragment  *Fragment
}

// String returns the raw consumed text.
func (r *RelativeReference) String() string {
	return r.Raw
}

// Builder converts the parsed reference into an owning
// RelativeReferenceBuilder.
func (r *RelativeReference) Builder() *RelativeReferenceBuilder {
	b := &RelativeReferenceBuilder{Path: r.Path.Builder()}
	if r.Authority != nil {
		b.Authority = r.Authority.Builder()
	}
	if r.Query != nil {
		b.Query = r.Query.Builder()
	}
	if r.Fragment != nil {
		b.Fragment = r.Fragment.Builder()
	}
	return b
}

// RelativeReferenceBuilder is an owning, mutable relative reference.
type RelativeReferenceBuilder struct {
	Authority *AuthorityBuilder
	Path      PathBuilder
	Query     *QueryBuilder
	Fragment  *FragmentBuilder
}

// String serializes the reference, re-encoding every component.
func (b *RelativeReferenceBuilder) String() string {
	var sb strings.Builder
	if b.Authority != nil {
		sb.WriteString("//")
		sb.WriteString(b.Authority.String())
	}
	sb.WriteString(b.Path.String())
	if b.Query != nil {
		sb.WriteByte('?')
		sb.WriteString(b.Query.String())
	}
	if b.Fragment != nil {
		sb.WriteByte('#')
		sb.WriteString(b.Fragment.String())
	}
	return sb.String()
}

// URIReference is either an absolute URI or a relative reference. Exactly
// one of the two fields is non-nil.
type URIReference struct {
	URI      *URI
	Relative *RelativeReference
}

// String returns the raw consumed text of whichever form was parsed.
func (r *URIReference) String() string {
	if r.URI != nil {
		return r.URI.String()
	}
	return r.Relative.String()
}

// Builder converts the parsed reference into an owning
// URIReferenceBuilder.
func (r *URIReference) Builder() *URIReferenceBuilder {
	if r.URI != nil {
		return &URIReferenceBuilder{URI: r.URI.Builder()}
	}
	return &URIReferenceBuilder{Relative: r.Relative.Builder()}
}

// URIReferenceBuilder is an owning, mutable URI reference. Exactly one of
// the two fields is non-nil.
type URIReferenceBuilder struct {
	URI      *URIBuilder
	Relative *RelativeReferenceBuilder
}

// String serializes whichever form the builder holds.
func (b *URIReferenceBuilder) String() string {
	if b.URI != nil {
		return b.URI.String()
	}
	return b.Relative.String()
}

// ParseURI parses s as an absolute URI. Input beyond the matched prefix is
// ignored; Raw records exactly the consumed text.
func ParseURI(s string) (*URI, error) {
	p := newScanner(s)
	u, ok := parseURI(p)
	if !ok {
		return nil, newParseError("URI", s)
	}
	return u, nil
}

// ParseURIReference parses s as a URI reference, trying the absolute form
// first and falling back to a relative reference.
func ParseURIReference(s string) (*URIReference, error) {
	p := newScanner(s)
	if u, ok := parseURI(p); ok {
		return &URIReference{URI: u}, nil
	}
	p = newScanner(s)
	return &URIReference{Relative: parseRelativeRef(p)}, nil
}

// ParseRelativeReference parses s as a relative reference. The empty
// reference is valid, so any input yields a reference; input beyond the
// matched prefix is ignored.
func ParseRelativeReference(s string) (*RelativeReference, error) {
	return parseRelativeRef(newScanner(s)), nil
}

// ParsePath parses s as a standalone path. The empty path is valid, so any
// input yields a path; input beyond the matched prefix is ignored.
func ParsePath(s string) (*Path, error) {
	p := parsePath(newScanner(s))
	return &p, nil
}

// ParseNormalizedURI NFC-normalizes s before parsing it as an absolute
// URI. The entity views refer to the normalized text.
func ParseNormalizedURI(s string) (*URI, error) {
	return ParseURI(norm.NFC.String(s))
}

// ParseNormalizedURIReference NFC-normalizes s before parsing it as a URI
// reference.
func ParseNormalizedURIReference(s string) (*URIReference, error) {
	return ParseURIReference(norm.NFC.String(s))
}
