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

// Fragment is a parsed fragment component. Raw is the matched text without
// the leading "#".
type Fragment struct {
	Raw string
}

// String returns the raw matched text.
func (f *Fragment) String() string {
	return f.Raw
}

// Builder converts the parsed fragment into an owning FragmentBuilder,
// percent-decoding the text. Text that fails to decode is carried over
// still encoded.
func (f *Fragment) Builder() *FragmentBuilder {
	return &FragmentBuilder{Text: decodeOrRaw(f.Raw)}
}

// FragmentBuilder is an owning, mutable fragment.
type FragmentBuilder struct {
	Text string
}

// String serializes the fragment, percent-encoded. The leading "#" is
// written by the URI, not here.
func (b *FragmentBuilder) String() string {
	return encodeComponent(b.Text)
}
