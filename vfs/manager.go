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

package vfs

import (
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jplu/minuri/uri"
)

// Manager dispatches URIs to registered providers by scheme. Set LogOutput
// before the first operation to get a log line per registration and
// lookup; when it is nil the logger stays disabled.
type Manager struct {
	LogOutput io.Writer

	mu        sync.RWMutex
	providers map[string]Provider

	initLogOnce sync.Once
	logger      zerolog.Logger
}

// NewManager creates a manager with no providers.
func NewManager() *Manager {
	return &Manager{providers: make(map[string]Provider)}
}

// Log returns the manager logger, building it on first use.
func (m *Manager) Log() *zerolog.Logger {
	if m.LogOutput != nil {
		m.initLogOnce.Do(func() {
			m.logger = zerolog.New(m.LogOutput).With().Timestamp().Logger()
		})
	}
	return &m.logger
}

// Register adds p under every scheme it announces, replacing any previous
// provider for those schemes. Schemes are case-insensitive.
func (m *Manager) Register(p Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, scheme := range p.Schemes() {
		scheme = strings.ToLower(scheme)
		m.providers[scheme] = p
		m.Log().Debug().Str("scheme", scheme).Msg("provider registered")
	}
}

// Lookup parses rawURI, selects the provider registered for its scheme and
// provisions a filesystem from it.
func (m *Manager) Lookup(rawURI string) (FileSystem, error) {
	u, err := uri.ParseURI(rawURI)
	if err != nil {
		return nil, errors.Wrapf(err, "vfs: parse %q", rawURI)
	}
	scheme := strings.ToLower(u.Scheme.Text())
	m.mu.RLock()
	p, ok := m.providers[scheme]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScheme, "%q", scheme)
	}
	m.Log().Debug().Str("scheme", scheme).Str("uri", rawURI).Msg("lookup")
	return p.Provision(rawURI)
}
