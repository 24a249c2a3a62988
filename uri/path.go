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

// PathKind discriminates the path grammar alternatives.
type PathKind int

const (
	// PathEmpty is the empty path. It carries no segments and serializes
	// to the empty string.
	PathEmpty PathKind = iota
	// PathAbEmpty is retained for completeness of the classification; the
	// composite grammar reports a path in abempty position as PathAbsolute
	// when it consumed characters and PathEmpty otherwise.
	PathAbEmpty
	// PathAbsolute is a path starting with "/".
	PathAbsolute
	// PathNoScheme is a relative path whose first segment contains no
	// ":". It only occurs inside a relative reference.
	PathNoScheme
	// PathRootless is a path starting directly with a non-empty segment.
	PathRootless
)

// Path is a parsed path. Raw is the matched text and Segments are views
// into it, still percent-encoded; segment boundaries are exactly the "/"
// characters of Raw. PathEmpty has no segments.
type Path struct {
	Kind     PathKind
	Raw      string
	Segments []string
}

// String returns the raw matched text.
func (p *Path) String() string {
	return p.Raw
}

// Builder converts the parsed path into an owning PathBuilder,
// percent-decoding every segment. A segment that fails to decode is carried
// over still encoded. Every non-empty parsed path converts to an absolute
// builder path.
func (p *Path) Builder() PathBuilder {
	if p.Kind == PathEmpty {
		return PathBuilder{Kind: PathBuilderEmpty}
	}
	segs := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		segs[i] = decodeOrRaw(s)
	}
	return PathBuilder{Kind: PathBuilderAbsolute, Segments: segs}
}

// PathBuilderKind discriminates the owning path forms.
type PathBuilderKind int

const (
	// PathBuilderEmpty is the empty path.
	PathBuilderEmpty PathBuilderKind = iota
	// PathBuilderAbsolute is a rooted path.
	PathBuilderAbsolute
	// PathBuilderRelative is a path relative to the current location.
	PathBuilderRelative
)

// PathBuilder is an owning, mutable path holding decoded segments.
type PathBuilder struct {
	Kind     PathBuilderKind
	Segments []string
}

// Parent returns the path one level above. An absolute path drops its last
// segment, stopping at the root. A relative path drops its last segment or,
// when it has none left, appends "..". The empty path has no parent and
// returns itself.
func (b PathBuilder) Parent() PathBuilder {
	switch b.Kind {
	case PathBuilderEmpty:
		return b
	case PathBuilderRelative:
		if len(b.Segments) == 0 {
			return PathBuilder{Kind: b.Kind, Segments: []string{".."}}
		}
	default:
		if len(b.Segments) == 0 {
			return b
		}
	}
	segs := make([]string, len(b.Segments)-1)
	copy(segs, b.Segments)
	return PathBuilder{Kind: b.Kind, Segments: segs}
}

// Child returns the path extended with one more segment. The empty path
// stays empty.
func (b PathBuilder) Child(name string) PathBuilder {
	if b.Kind == PathBuilderEmpty {
		return b
	}
	segs := make([]string, len(b.Segments)+1)
	copy(segs, b.Segments)
	segs[len(b.Segments)] = name
	return PathBuilder{Kind: b.Kind, Segments: segs}
}

// String serializes the path, percent-encoding every segment. Absolute
// paths start with "/", relative paths with "./".
func (b PathBuilder) String() string {
	if b.Kind == PathBuilderEmpty {
		return ""
	}
	var sb strings.Builder
	if b.Kind == PathBuilderAbsolute {
		sb.WriteByte('/')
	} else {
		sb.WriteString("./")
	}
	for i, seg := range b.Segments {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(encodeComponent(seg))
	}
	return sb.String()
}
