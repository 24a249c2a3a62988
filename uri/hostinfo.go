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
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// HostKind discriminates the four host forms of an authority.
type HostKind int

const (
	// HostRegName is a registered name, possibly empty.
	HostRegName HostKind = iota
	// HostIPv4 is a dotted-decimal IPv4 address.
	HostIPv4
	// HostIPv6 is an IPv6 address, written in brackets.
	HostIPv6
	// HostIPvFuture is a version-prefixed future literal, written in
	// brackets.
	HostIPvFuture
)

// HostInfo is the parsed host of an authority. Raw is the matched text
// without the surrounding brackets for the bracketed kinds. Addr is set for
// HostIPv4 and HostIPv6.
type HostInfo struct {
	Kind HostKind
	Raw  string
	Addr netip.Addr
}

// IPv4 returns the address octets of an HostIPv4 host.
func (h HostInfo) IPv4() [4]byte {
	return h.Addr.As4()
}

// IPv6 returns the address bytes of an HostIPv6 host.
func (h HostInfo) IPv6() [16]byte {
	return h.Addr.As16()
}

// String returns the raw matched text, without brackets.
func (h HostInfo) String() string {
	return h.Raw
}

// Builder converts the parsed host into an owning HostInfoBuilder.
// Registered names are percent-decoded; a name that fails to decode is
// carried over still encoded. IPvFuture text stays as matched.
func (h HostInfo) Builder() HostInfoBuilder {
	b := HostInfoBuilder{Kind: h.Kind, Addr: h.Addr}
	switch h.Kind {
	case HostRegName:
		b.Hostname = decodeOrRaw(h.Raw)
	case HostIPvFuture:
		b.Hostname = h.Raw
	}
	return b
}

// HostInfoBuilder is an owning, mutable host. Hostname holds the registered
// name or the IPvFuture text; Addr holds the typed address for the IP
// kinds.
type HostInfoBuilder struct {
	Kind     HostKind
	Hostname string
	Addr     netip.Addr
}

// String serializes the host. IP addresses render canonically, with
// brackets for IPv6 and IPvFuture. Registered names containing non-ASCII
// characters are converted with IDNA ToASCII, falling back to
// percent-encoding when the conversion fails.
func (b HostInfoBuilder) String() string {
	switch b.Kind {
	case HostIPv4:
		return b.Addr.String()
	case HostIPv6:
		return "[" + b.Addr.String() + "]"
	case HostIPvFuture:
		return "[" + b.Hostname + "]"
	default:
		return renderRegName(b.Hostname)
	}
}

// renderRegName serializes a registered name for the authority component.
func renderRegName(name string) string {
	if isASCII(name) {
		var sb strings.Builder
		Encode(name, &sb)
		return sb.String()
	}
	if a, err := idna.ToASCII(norm.NFC.String(name)); err == nil {
		return a
	}
	return encodeComponent(name)
}

// isASCII reports whether s contains only ASCII bytes.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
