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
	"net/netip"
	"strconv"
)

// This file implements the RFC 3986 productions as an ordered-alternative
// recursive descent over the scanner. Every production either consumes the
// text it matched or leaves the scanner where it found it.

// parseURI matches URI = scheme ":" hier-part [ "?" query ] [ "#" fragment ].
func parseURI(s *scanner) (*URI, bool) {
	start := s.mark()
	sch, ok := parseScheme(s)
	if !ok || !s.take(':') {
		s.restore(start)
		return nil, false
	}
	auth, path := parseHierPart(s)
	q := parseOptQuery(s)
	f := parseOptFragment(s)
	return &URI{
		Raw:       s.since(start),
		Scheme:    sch,
		Authority: auth,
		Path:      path,
		Query:     q,
		Fragment:  f,
	}, true
}

// parseRelativeRef matches relative-ref = relative-part [ "?" query ]
// [ "#" fragment ]. It cannot fail: the empty reference is valid.
func parseRelativeRef(s *scanner) *RelativeReference {
	start := s.mark()
	auth, path := parseRelativePart(s)
	q := parseOptQuery(s)
	f := parseOptFragment(s)
	return &RelativeReference{
		Raw:       s.since(start),
		Authority: auth,
		Path:      path,
		Query:     q,
		Fragment:  f,
	}
}

// parseHierPart matches hier-part. The alternatives are tried in grammar
// order: "//" authority path-abempty, then path-absolute, path-rootless and
// path-empty. It cannot fail because path-empty always matches.
func parseHierPart(s *scanner) (*Authority, Path) {
	m := s.mark()
	if s.takeLit("//") {
		if a, ok := parseAuthority(s); ok {
			return a, parsePathAbEmpty(s)
		}
		s.restore(m)
	}
	if p, ok := parsePathAbsolute(s); ok {
		return nil, p
	}
	if p, ok := parsePathRootless(s); ok {
		return nil, p
	}
	return nil, Path{Kind: PathEmpty}
}

// parseRelativePart matches relative-part. It differs from hier-part only
// in using path-noscheme, whose first segment may not contain ":".
func parseRelativePart(s *scanner) (*Authority, Path) {
	m := s.mark()
	if s.takeLit("//") {
		if a, ok := parseAuthority(s); ok {
			return a, parsePathAbEmpty(s)
		}
		s.restore(m)
	}
	if p, ok := parsePathAbsolute(s); ok {
		return nil, p
	}
	if p, ok := parsePathNoScheme(s); ok {
		return nil, p
	}
	return nil, Path{Kind: PathEmpty}
}

// parseScheme matches scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
// The generic token is scanned first and classified afterwards, so a scheme
// that merely starts with a recognized name, such as "httpx", still parses.
func parseScheme(s *scanner) (Scheme, bool) {
	m := s.mark()
	b, ok := s.peek()
	if !ok || !isAlpha(b) {
		return Scheme{}, false
	}
	s.next()
	s.takeWhile(isSchemeByte)
	raw := s.since(m)
	return Scheme{Kind: classifyScheme(raw), Raw: raw}, true
}

// parseAuthority matches authority = [ userinfo "@" ] host [ ":" port ].
// The userinfo span commits only when the "@" follows; a ":" port suffix
// whose digits overflow uint16 is rolled back and left unconsumed.
func parseAuthority(s *scanner) (*Authority, bool) {
	start := s.mark()
	var ui *UserInfo
	if span, ok := scanUserInfo(s); ok && s.take('@') {
		u := splitUserInfo(span)
		ui = &u
	} else {
		s.restore(start)
	}
	host, ok := parseHost(s)
	if !ok {
		s.restore(start)
		return nil, false
	}
	var port uint16
	var hasPort bool
	pm := s.mark()
	if s.take(':') {
		if v, ok := parsePort(s); ok {
			port, hasPort = v, true
		} else {
			s.restore(pm)
		}
	}
	return &Authority{
		Raw:      s.since(start),
		UserInfo: ui,
		Host:     host,
		Port:     port,
		HasPort:  hasPort,
	}, true
}

// scanUserInfo matches the non-empty userinfo span before the "@".
func scanUserInfo(s *scanner) (string, bool) {
	m := s.mark()
	for {
		b, ok := s.peek()
		if !ok {
			break
		}
		if isUserInfoByte(b) {
			s.next()
			continue
		}
		if b == '%' && s.takePct() {
			continue
		}
		break
	}
	if s.pos == m {
		return "", false
	}
	return s.since(m), true
}

// parseHost matches host = IP-literal / IPv4address / reg-name. The
// reg-name alternative matches the empty string, so host cannot fail.
func parseHost(s *scanner) (HostInfo, bool) {
	if h, ok := parseIPLiteral(s); ok {
		return h, true
	}
	if h, ok := parseIPv4(s); ok {
		return h, true
	}
	return parseRegName(s), true
}

// parseIPLiteral matches IP-literal = "[" ( IPv6address / IPvFuture ) "]".
// The stored Raw excludes the brackets.
func parseIPLiteral(s *scanner) (HostInfo, bool) {
	m := s.mark()
	if s.take('[') {
		if raw, ok := scanIPv6(s); ok && s.take(']') {
			if addr, err := netip.ParseAddr(raw); err == nil {
				return HostInfo{Kind: HostIPv6, Raw: raw, Addr: addr}, true
			}
		}
		s.restore(m)
	}
	if s.take('[') {
		if raw, ok := scanIPvFuture(s); ok && s.take(']') {
			return HostInfo{Kind: HostIPvFuture, Raw: raw}, true
		}
		s.restore(m)
	}
	return HostInfo{}, false
}

// parseIPv4 matches IPv4address in host position. The octet values are
// accumulated during the scan because the grammar tolerates leading zeros.
func parseIPv4(s *scanner) (HostInfo, bool) {
	m := s.mark()
	raw, oct, ok := scanIPv4(s)
	if !ok {
		s.restore(m)
		return HostInfo{}, false
	}
	return HostInfo{Kind: HostIPv4, Raw: raw, Addr: netip.AddrFrom4(oct)}, true
}

// scanIPv4 matches dec-octet "." dec-octet "." dec-octet "." dec-octet and
// returns the matched text with the four octet values.
func scanIPv4(s *scanner) (string, [4]byte, bool) {
	m := s.mark()
	var oct [4]byte
	for i := range 4 {
		if i > 0 && !s.take('.') {
			s.restore(m)
			return "", oct, false
		}
		v, ok := takeDecOctet(s)
		if !ok {
			s.restore(m)
			return "", oct, false
		}
		oct[i] = v
	}
	return s.since(m), oct, true
}

// takeDecOctet consumes one to three decimal digits whose value is at most
// 255.
func takeDecOctet(s *scanner) (byte, bool) {
	m := s.mark()
	v, n := 0, 0
	for n < 3 {
		b, ok := s.peek()
		if !ok || !isDigit(b) {
			break
		}
		v = v*10 + int(b-'0')
		s.next()
		n++
	}
	if n == 0 || v > 255 {
		s.restore(m)
		return 0, false
	}
	return byte(v), true
}

// scanIPv6 matches IPv6address and returns the matched text. The shapes
// are tried in RFC order; the optional prefix before "::" backtracks so it
// never consumes the first colon of the elision.
func scanIPv6(s *scanner) (string, bool) {
	start := s.mark()
	if takeH16Groups(s, 6) && takeLs32(s) {
		return s.since(start), true
	}
	s.restore(start)
	if s.takeLit("::") && takeH16Groups(s, 5) && takeLs32(s) {
		return s.since(start), true
	}
	s.restore(start)
	type shape struct {
		prefixMax int
		groups    int
		ls32      bool
		tailH16   bool
	}
	shapes := []shape{
		{1, 4, true, false},
		{2, 3, true, false},
		{3, 2, true, false},
		{4, 1, true, false},
		{5, 0, true, false},
		{6, 0, false, true},
		{7, 0, false, false},
	}
	for _, sh := range shapes {
		takeH16Prefix(s, sh.prefixMax)
		if s.takeLit("::") &&
			takeH16Groups(s, sh.groups) &&
			(!sh.ls32 || takeLs32(s)) &&
			(!sh.tailH16 || takeH16(s)) {
			return s.since(start), true
		}
		s.restore(start)
	}
	return "", false
}

// takeH16 consumes one to four hexadecimal digits.
func takeH16(s *scanner) bool {
	n := 0
	for n < 4 {
		b, ok := s.peek()
		if !ok || !isHexDigit(b) {
			break
		}
		s.next()
		n++
	}
	return n > 0
}

// takeH16Groups consumes exactly n repetitions of h16 ":".
func takeH16Groups(s *scanner, n int) bool {
	for range n {
		m := s.mark()
		if !takeH16(s) || !s.take(':') {
			s.restore(m)
			return false
		}
	}
	return true
}

// takeH16Prefix consumes up to max colon-separated h16 groups without a
// trailing colon. It never consumes a colon that starts a "::" and it
// always succeeds, possibly matching nothing.
func takeH16Prefix(s *scanner, max int) {
	m := s.mark()
	if !takeH16(s) {
		s.restore(m)
		return
	}
	for n := 1; n < max; n++ {
		m2 := s.mark()
		if !s.take(':') {
			break
		}
		if !takeH16(s) {
			s.restore(m2)
			break
		}
	}
}

// takeLs32 consumes ls32 = ( h16 ":" h16 ) / IPv4address.
func takeLs32(s *scanner) bool {
	m := s.mark()
	if takeH16(s) && s.take(':') && takeH16(s) {
		return true
	}
	s.restore(m)
	if _, _, ok := scanIPv4(s); ok {
		return true
	}
	s.restore(m)
	return false
}

// scanIPvFuture matches IPvFuture = "v" 1*HEXDIG "." 1*( unreserved /
// sub-delims / ":" ), without the surrounding brackets. ABNF literals are
// case-insensitive, so "V" is accepted too.
func scanIPvFuture(s *scanner) (string, bool) {
	m := s.mark()
	b, ok := s.peek()
	if !ok || (b != 'v' && b != 'V') {
		return "", false
	}
	s.next()
	if s.takeWhile(isHexDigit) == "" || !s.take('.') {
		s.restore(m)
		return "", false
	}
	if s.takeWhile(isIPvFutureByte) == "" {
		s.restore(m)
		return "", false
	}
	return s.since(m), true
}

// parseRegName matches reg-name, which may be empty.
func parseRegName(s *scanner) HostInfo {
	m := s.mark()
	for {
		b, ok := s.peek()
		if !ok {
			break
		}
		if isRegNameByte(b) {
			s.next()
			continue
		}
		if b == '%' && s.takePct() {
			continue
		}
		break
	}
	return HostInfo{Kind: HostRegName, Raw: s.since(m)}
}

// parsePort matches a non-empty digit run that fits in uint16. A run that
// overflows fails the whole port alternative, leaving the ":" unconsumed
// for the caller to roll back.
func parsePort(s *scanner) (uint16, bool) {
	m := s.mark()
	raw := s.takeWhile(isDigit)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		s.restore(m)
		return 0, false
	}
	return uint16(v), true
}

// parsePathAbEmpty matches path-abempty = *( "/" segment ). A match that
// consumed nothing is classified PathEmpty, anything else PathAbsolute, so
// that a URI with an authority reports the same path classification as one
// without.
func parsePathAbEmpty(s *scanner) Path {
	m := s.mark()
	segs := parseSlashSegments(s)
	raw := s.since(m)
	if raw == "" {
		return Path{Kind: PathEmpty}
	}
	return Path{Kind: PathAbsolute, Raw: raw, Segments: segs}
}

// parsePathAbsolute matches a path starting with "/".
func parsePathAbsolute(s *scanner) (Path, bool) {
	p := parsePathAbEmpty(s)
	if p.Kind == PathEmpty {
		return Path{}, false
	}
	return p, true
}

// parsePathRootless matches path-rootless = segment-nz *( "/" segment ).
func parsePathRootless(s *scanner) (Path, bool) {
	m := s.mark()
	first := scanSegment(s)
	if first == "" {
		return Path{}, false
	}
	segs := append([]string{first}, parseSlashSegments(s)...)
	return Path{Kind: PathRootless, Raw: s.since(m), Segments: segs}, true
}

// parsePathNoScheme matches path-noscheme = segment-nz-nc *( "/" segment ).
func parsePathNoScheme(s *scanner) (Path, bool) {
	m := s.mark()
	first := scanSegmentNC(s)
	if first == "" {
		return Path{}, false
	}
	segs := append([]string{first}, parseSlashSegments(s)...)
	return Path{Kind: PathNoScheme, Raw: s.since(m), Segments: segs}, true
}

// parseSlashSegments matches *( "/" segment ). Each "/" opens a segment,
// so a trailing slash contributes an empty final segment.
func parseSlashSegments(s *scanner) []string {
	var segs []string
	for s.take('/') {
		segs = append(segs, scanSegment(s))
	}
	return segs
}

// scanSegment matches segment = *pchar, which may be empty.
func scanSegment(s *scanner) string {
	m := s.mark()
	for {
		b, ok := s.peek()
		if !ok {
			break
		}
		if isPCharByte(b) {
			s.next()
			continue
		}
		if b == '%' && s.takePct() {
			continue
		}
		break
	}
	return s.since(m)
}

// scanSegmentNC matches the segment-nz-nc run, a segment without ":".
func scanSegmentNC(s *scanner) string {
	m := s.mark()
	for {
		b, ok := s.peek()
		if !ok {
			break
		}
		if b != ':' && isPCharByte(b) {
			s.next()
			continue
		}
		if b == '%' && s.takePct() {
			continue
		}
		break
	}
	return s.since(m)
}

// scanFragmentRun matches *( pchar / "/" / "?" ), the shared body of the
// query and fragment components.
func scanFragmentRun(s *scanner) string {
	m := s.mark()
	for {
		b, ok := s.peek()
		if !ok {
			break
		}
		if isFragmentByte(b) {
			s.next()
			continue
		}
		if b == '%' && s.takePct() {
			continue
		}
		break
	}
	return s.since(m)
}

// parseOptQuery matches [ "?" query ].
func parseOptQuery(s *scanner) *Query {
	if !s.take('?') {
		return nil
	}
	raw := scanFragmentRun(s)
	return &Query{Raw: raw, Params: splitQuery(raw)}
}

// parseOptFragment matches [ "#" fragment ].
func parseOptFragment(s *scanner) *Fragment {
	if !s.take('#') {
		return nil
	}
	return &Fragment{Raw: scanFragmentRun(s)}
}

// parsePath matches the standalone path production: path-absolute, then
// path-rootless, then path-empty. It cannot fail. The noscheme form is
// reachable only through relative-part, its sole grammar position.
func parsePath(s *scanner) Path {
	if p, ok := parsePathAbsolute(s); ok {
		return p
	}
	if p, ok := parsePathRootless(s); ok {
		return p
	}
	return Path{Kind: PathEmpty}
}
