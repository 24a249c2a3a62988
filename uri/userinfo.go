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

// UserInfo is the parsed userinfo component of an authority. Raw is the
// matched span without the trailing "@". Username and Password are views
// into Raw, split on the first ":"; a span without a colon has the whole
// text as Username and HasPassword false.
type UserInfo struct {
	Raw         string
	Username    string
	Password    string
	HasPassword bool
}

// splitUserInfo applies the secondary split to a matched userinfo span.
func splitUserInfo(raw string) UserInfo {
	u := UserInfo{Raw: raw}
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		u.Username = raw[:i]
		u.Password = raw[i+1:]
		u.HasPassword = true
	} else {
		u.Username = raw
	}
	return u
}

// String returns the raw matched text.
func (u UserInfo) String() string {
	return u.Raw
}

// Builder converts the parsed userinfo into an owning UserInfoBuilder,
// percent-decoding both fields. A field that fails to decode is carried
// over still encoded.
func (u UserInfo) Builder() UserInfoBuilder {
	return UserInfoBuilder{
		Username:    decodeOrRaw(u.Username),
		Password:    decodeOrRaw(u.Password),
		HasPassword: u.HasPassword,
	}
}

// UserInfoBuilder is an owning, mutable userinfo. Password is rendered only
// when HasPassword is set.
type UserInfoBuilder struct {
	Username    string
	Password    string
	HasPassword bool
}

// String serializes the userinfo, percent-encoding both fields. The
// trailing "@" is written by the authority, not here.
func (b UserInfoBuilder) String() string {
	var sb strings.Builder
	sb.WriteString(encodeComponent(b.Username))
	if b.HasPassword {
		sb.WriteByte(':')
		sb.WriteString(encodeComponent(b.Password))
	}
	return sb.String()
}
