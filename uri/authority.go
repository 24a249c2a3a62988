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
	"strconv"
	"strings"
)

// Authority is the parsed authority component of a URI. Raw is the matched
// text without the leading "//". UserInfo is nil when the component has no
// "@" part. Port is valid only when HasPort is set.
type Authority struct {
	Raw      string
	UserInfo *UserInfo
	Host     HostInfo
	Port     uint16
	HasPort  bool
}

// String returns the raw matched text.
func (a *Authority) String() string {
	return a.Raw
}

// Builder converts the parsed authority into an owning AuthorityBuilder.
func (a *Authority) Builder() *AuthorityBuilder {
	b := &AuthorityBuilder{
		Host:    a.Host.Builder(),
		Port:    a.Port,
		HasPort: a.HasPort,
	}
	if a.UserInfo != nil {
		ui := a.UserInfo.Builder()
		b.UserInfo = &ui
	}
	return b
}

// AuthorityBuilder is an owning, mutable authority. Port is rendered only
// when HasPort is set.
type AuthorityBuilder struct {
	UserInfo *UserInfoBuilder
	Host     HostInfoBuilder
	Port     uint16
	HasPort  bool
}

// String serializes the authority without the leading "//".
func (b *AuthorityBuilder) String() string {
	var sb strings.Builder
	if b.UserInfo != nil {
		sb.WriteString(b.UserInfo.String())
		sb.WriteByte('@')
	}
	sb.WriteString(b.Host.String())
	if b.HasPort {
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(uint64(b.Port), 10))
	}
	return sb.String()
}
