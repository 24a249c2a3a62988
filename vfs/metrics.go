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
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Metrics is a snapshot of the counters kept for one file or for the whole
// filesystem.
type Metrics struct {
	Reads        uint64
	Writes       uint64
	BytesRead    uint64
	BytesWritten uint64
}

// fileMetrics holds the live counters for one path.
type fileMetrics struct {
	reads        atomic.Uint64
	writes       atomic.Uint64
	bytesRead    atomic.Uint64
	bytesWritten atomic.Uint64
}

func (m *fileMetrics) snapshot() Metrics {
	return Metrics{
		Reads:        m.reads.Load(),
		Writes:       m.writes.Load(),
		BytesRead:    m.bytesRead.Load(),
		BytesWritten: m.bytesWritten.Load(),
	}
}

// MetricsFS wraps another filesystem and counts reads, writes and bytes
// transferred, per file and in aggregate. Set LogOutput before the first
// operation to get a debug log line per open; when it is nil the logger
// stays disabled.
type MetricsFS struct {
	LogOutput io.Writer

	inner FileSystem

	mu    sync.RWMutex
	files map[string]*fileMetrics

	initLogOnce sync.Once
	logger      zerolog.Logger
}

// NewMetricsFS wraps inner with metrics collection.
func NewMetricsFS(inner FileSystem) *MetricsFS {
	return &MetricsFS{inner: inner, files: make(map[string]*fileMetrics)}
}

// Log returns the filesystem logger, building it on first use.
func (fs *MetricsFS) Log() *zerolog.Logger {
	if fs.LogOutput != nil {
		fs.initLogOnce.Do(func() {
			fs.logger = zerolog.New(fs.LogOutput).With().Timestamp().Logger()
		})
	}
	return &fs.logger
}

// metrics returns the counters for path, creating them on first use.
func (fs *MetricsFS) metrics(path string) *fileMetrics {
	fs.mu.RLock()
	m, ok := fs.files[path]
	fs.mu.RUnlock()
	if ok {
		return m
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if m, ok := fs.files[path]; ok {
		return m
	}
	m = &fileMetrics{}
	fs.files[path] = m
	return m
}

// FileMetrics returns a snapshot of the counters for path. A path that was
// never opened reports zeroes.
func (fs *MetricsFS) FileMetrics(path string) Metrics {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if m, ok := fs.files[path]; ok {
		return m.snapshot()
	}
	return Metrics{}
}

// TotalMetrics returns the counters summed over every tracked file.
func (fs *MetricsFS) TotalMetrics() Metrics {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	var total Metrics
	for _, m := range fs.files {
		s := m.snapshot()
		total.Reads += s.Reads
		total.Writes += s.Writes
		total.BytesRead += s.BytesRead
		total.BytesWritten += s.BytesWritten
	}
	return total
}

// Exists delegates to the wrapped filesystem.
func (fs *MetricsFS) Exists(path string) (bool, error) { return fs.inner.Exists(path) }

// IsFile delegates to the wrapped filesystem.
func (fs *MetricsFS) IsFile(path string) (bool, error) { return fs.inner.IsFile(path) }

// IsDir delegates to the wrapped filesystem.
func (fs *MetricsFS) IsDir(path string) (bool, error) { return fs.inner.IsDir(path) }

// FileSize delegates to the wrapped filesystem.
func (fs *MetricsFS) FileSize(path string) (int64, error) { return fs.inner.FileSize(path) }

// MkDir delegates to the wrapped filesystem.
func (fs *MetricsFS) MkDir(path string) error { return fs.inner.MkDir(path) }

// MkDirAll delegates to the wrapped filesystem.
func (fs *MetricsFS) MkDirAll(path string) error { return fs.inner.MkDirAll(path) }

// ReadDir delegates to the wrapped filesystem.
func (fs *MetricsFS) ReadDir(path string) ([]string, error) { return fs.inner.ReadDir(path) }

// RemoveDir delegates to the wrapped filesystem.
func (fs *MetricsFS) RemoveDir(path string) error { return fs.inner.RemoveDir(path) }

// RemoveDirAll delegates to the wrapped filesystem.
func (fs *MetricsFS) RemoveDirAll(path string) error { return fs.inner.RemoveDirAll(path) }

// Create opens a counting handle on the wrapped filesystem.
func (fs *MetricsFS) Create(path string) (File, error) {
	f, err := fs.inner.Create(path)
	if err != nil {
		return nil, err
	}
	fs.Log().Debug().Str("path", path).Msg("create")
	return &metricsFile{File: f, m: fs.metrics(path)}, nil
}

// Open opens a counting handle on the wrapped filesystem.
func (fs *MetricsFS) Open(path string) (File, error) {
	f, err := fs.inner.Open(path)
	if err != nil {
		return nil, err
	}
	fs.Log().Debug().Str("path", path).Msg("open")
	return &metricsFile{File: f, m: fs.metrics(path)}, nil
}

// Remove delegates to the wrapped filesystem. The counters for the path
// are kept; a removed file still reports its history.
func (fs *MetricsFS) Remove(path string) error { return fs.inner.Remove(path) }

// metricsFile counts the bytes moved through a wrapped handle.
type metricsFile struct {
	File
	m *fileMetrics
}

// Read counts the bytes read through the handle.
func (f *metricsFile) Read(p []byte) (int, error) {
	n, err := f.File.Read(p)
	if n > 0 {
		f.m.reads.Add(1)
		f.m.bytesRead.Add(uint64(n))
	}
	return n, err
}

// Write counts the bytes written through the handle.
func (f *metricsFile) Write(p []byte) (int, error) {
	n, err := f.File.Write(p)
	if n > 0 {
		f.m.writes.Add(1)
		f.m.bytesWritten.Add(uint64(n))
	}
	return n, err
}

// ReadAt counts the bytes read through the handle.
func (f *metricsFile) ReadAt(p []byte, off int64) (int, error) {
	n, err := f.File.ReadAt(p, off)
	if n > 0 {
		f.m.reads.Add(1)
		f.m.bytesRead.Add(uint64(n))
	}
	return n, err
}

// WriteAt counts the bytes written through the handle.
func (f *metricsFile) WriteAt(p []byte, off int64) (int, error) {
	n, err := f.File.WriteAt(p, off)
	if n > 0 {
		f.m.writes.Add(1)
		f.m.bytesWritten.Add(uint64(n))
	}
	return n, err
}
