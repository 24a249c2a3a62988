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

// Param is one query parameter. Values is nil when the pair had no "=".
type Param struct {
	Key    string
	Values []string
}

// Query is a parsed query component. Raw is the matched text without the
// leading "?". Params applies the secondary split: pairs are separated by
// "&" or ";", each pair splits on its first "=", and the value side splits
// on "," into Values.
type Query struct {
	Raw    string
	Params []Param
}

// splitQuery applies the secondary split to a matched query run.
func splitQuery(raw string) []Param {
	if raw == "" {
		return nil
	}
	var params []Param
	for _, pair := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '&' || r == ';'
	}) {
		i := strings.IndexByte(pair, '=')
		if i < 0 {
			params = append(params, Param{Key: pair})
			continue
		}
		params = append(params, Param{
			Key:    pair[:i],
			Values: strings.Split(pair[i+1:], ","),
		})
	}
	return params
}

// String returns the raw matched text.
func (q *Query) String() string {
	return q.Raw
}

// Builder converts the parsed query into an owning QueryBuilder,
// percent-decoding keys and values. Text that fails to decode is carried
// over still encoded.
func (q *Query) Builder() *QueryBuilder {
	b := &QueryBuilder{}
	for _, p := range q.Params {
		out := Param{Key: decodeOrRaw(p.Key)}
		if p.Values != nil {
			out.Values = make([]string, len(p.Values))
			for i, v := range p.Values {
				out.Values[i] = decodeOrRaw(v)
			}
		}
		b.Params = append(b.Params, out)
	}
	return b
}

// QueryBuilder is an owning, mutable query.
type QueryBuilder struct {
	Params []Param
}

// String serializes the query, percent-encoding keys and values. Pairs are
// joined with "&" and values with ","; a parameter with nil Values renders
// as a bare key. The leading "?" is written by the URI, not here.
func (b *QueryBuilder) String() string {
	var sb strings.Builder
	for i, p := range b.Params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(encodeComponent(p.Key))
		if p.Values == nil {
			continue
		}
		sb.WriteByte('=')
		for j, v := range p.Values {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(encodeComponent(v))
		}
	}
	return sb.String()
}
