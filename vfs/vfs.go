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

// Package vfs routes filesystem operations to storage backends selected by
// URI scheme. Paths handed to a FileSystem are URI paths: they are parsed
// with the uri package and their segments are percent-decoded before any
// backend sees them.
package vfs

import (
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/jplu/minuri/uri"
)

// Sentinel errors returned by backends and the manager. Backends wrap them
// with context; test with errors.Is.
var (
	ErrNotFound      = errors.New("vfs: path does not exist")
	ErrExists        = errors.New("vfs: path already exists")
	ErrParentMissing = errors.New("vfs: parent directory does not exist")
	ErrNotDirectory  = errors.New("vfs: not a directory")
	ErrNotFile       = errors.New("vfs: not a file")
	ErrNotEmpty      = errors.New("vfs: directory not empty")
	ErrInvalidPath   = errors.New("vfs: invalid path")
	ErrUnknownScheme = errors.New("vfs: no filesystem registered for scheme")
	ErrLocked        = errors.New("vfs: file already locked")
)

// LockMode is the advisory lock state of an open file.
type LockMode int

const (
	// Unlocked means no lock is held.
	Unlocked LockMode = iota
	// SharedLock allows concurrent shared holders and excludes exclusive
	// ones.
	SharedLock
	// ExclusiveLock excludes every other holder.
	ExclusiveLock
)

// FileSystem is a storage backend addressed by URI paths.
type FileSystem interface {
	// Exists reports whether path names a file or directory.
	Exists(path string) (bool, error)
	// IsFile reports whether path names a file.
	IsFile(path string) (bool, error)
	// IsDir reports whether path names a directory.
	IsDir(path string) (bool, error)
	// FileSize returns the size of the file at path in bytes.
	FileSize(path string) (int64, error)
	// MkDir creates the directory at path. The parent must exist.
	MkDir(path string) error
	// MkDirAll creates the directory at path along with any missing
	// parents.
	MkDirAll(path string) error
	// ReadDir returns the names of the entries directly under path.
	ReadDir(path string) ([]string, error)
	// RemoveDir removes the empty directory at path.
	RemoveDir(path string) error
	// RemoveDirAll removes the directory at path and everything under it.
	RemoveDirAll(path string) error
	// Create opens the file at path for reading and writing, creating it
	// if it does not exist. The parent directory must exist.
	Create(path string) (File, error)
	// Open opens the existing file at path for reading and writing.
	Open(path string) (File, error)
	// Remove removes the file at path.
	Remove(path string) error
}

// File is an open handle on a backend file.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.ReaderAt
	io.WriterAt
	io.Closer

	// Path returns the URI path the handle was opened with.
	Path() string
	// Size returns the current size of the file in bytes.
	Size() (int64, error)
	// Truncate resizes the file to size bytes.
	Truncate(size int64) error
	// Sync flushes buffered writes to the backend.
	Sync() error
	// Lock changes the advisory lock held by this handle. Lock(Unlocked)
	// releases it. Acquisition is non-blocking; a conflicting holder
	// makes it fail with ErrLocked.
	Lock(mode LockMode) error
	// LockState returns the advisory lock currently held by this handle.
	LockState() LockMode
}

// Provider provisions filesystems for the schemes it announces.
type Provider interface {
	// Schemes returns the URI schemes the provider serves.
	Schemes() []string
	// Configure applies backend settings before any Provision call.
	Configure(config map[string]string) error
	// Provision returns a filesystem for rawURI.
	Provision(rawURI string) (FileSystem, error)
}

// pathSegments parses p as a URI path and returns its percent-decoded
// segments. The whole string must match: characters the path grammar
// cannot consume, such as a bare space, make the path invalid instead of
// silently truncating it. Dot and dot-dot segments are rejected, and so
// is any segment whose decoded text contains a separator or NUL: "%2F"
// must not smuggle extra path levels past the per-segment checks, so a
// backend can never be walked out of its root. The empty path and "/"
// yield no segments.
func pathSegments(p string) ([]string, error) {
	parsed, err := uri.ParsePath(p)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPath, "%q: %v", p, err)
	}
	if parsed.Raw != p {
		return nil, errors.Wrapf(ErrInvalidPath, "%q: trailing characters", p)
	}
	b := parsed.Builder()
	for _, seg := range b.Segments {
		if seg == "." || seg == ".." {
			return nil, errors.Wrapf(ErrInvalidPath, "%q: dot segment", p)
		}
		if strings.ContainsAny(seg, "/\\\x00") {
			return nil, errors.Wrapf(ErrInvalidPath, "%q: separator in segment", p)
		}
	}
	return b.Segments, nil
}

// lockTable tracks process-local advisory locks keyed by canonical path.
// Both backends share it; the local backend does not reach for OS-level
// locks, so the advisory state is visible within one process only.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	shared    int
	exclusive bool
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*lockEntry)}
}

// transition moves one holder of key from mode to the requested mode,
// failing with ErrLocked when the request conflicts with other holders.
func (t *lockTable) transition(key string, held, want LockMode) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.locks[key]
	if e == nil {
		e = &lockEntry{}
		t.locks[key] = e
	}
	switch held {
	case SharedLock:
		e.shared--
	case ExclusiveLock:
		e.exclusive = false
	}
	var err error
	switch want {
	case SharedLock:
		if e.exclusive {
			err = errors.Wrapf(ErrLocked, "%q", key)
		} else {
			e.shared++
		}
	case ExclusiveLock:
		if e.exclusive || e.shared > 0 {
			err = errors.Wrapf(ErrLocked, "%q", key)
		} else {
			e.exclusive = true
		}
	}
	if err != nil {
		// Roll the held mode back so a failed upgrade keeps its lock.
		switch held {
		case SharedLock:
			e.shared++
		case ExclusiveLock:
			e.exclusive = true
		}
		return err
	}
	if e.shared == 0 && !e.exclusive {
		delete(t.locks, key)
	}
	return nil
}
