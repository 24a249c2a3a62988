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
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/jplu/minuri/uri"
)

// MemoryFS is an in-memory filesystem. It is safe for concurrent use. The
// root directory always exists.
type MemoryFS struct {
	mu    sync.RWMutex
	dirs  map[string]struct{}
	files map[string]*memNode
	locks *lockTable
}

// memNode is the shared content of one in-memory file. Handles reference
// the node so concurrent opens see each other's writes.
type memNode struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryFS creates an empty in-memory filesystem.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		dirs:  map[string]struct{}{"/": {}},
		files: make(map[string]*memNode),
		locks: newLockTable(),
	}
}

// memKey builds the canonical storage key for a segment list.
func memKey(segs []string) string {
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

// resolve parses path and returns its canonical key and parent key.
func (fs *MemoryFS) resolve(path string) (key, parent string, err error) {
	segs, err := pathSegments(path)
	if err != nil {
		return "", "", err
	}
	pb := uri.PathBuilder{Kind: uri.PathBuilderAbsolute, Segments: segs}
	return memKey(segs), memKey(pb.Parent().Segments), nil
}

// Exists reports whether path names a file or directory.
func (fs *MemoryFS) Exists(path string) (bool, error) {
	key, _, err := fs.resolve(path)
	if err != nil {
		return false, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if _, ok := fs.dirs[key]; ok {
		return true, nil
	}
	_, ok := fs.files[key]
	return ok, nil
}

// IsFile reports whether path names a file.
func (fs *MemoryFS) IsFile(path string) (bool, error) {
	key, _, err := fs.resolve(path)
	if err != nil {
		return false, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.files[key]
	return ok, nil
}

// IsDir reports whether path names a directory.
func (fs *MemoryFS) IsDir(path string) (bool, error) {
	key, _, err := fs.resolve(path)
	if err != nil {
		return false, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.dirs[key]
	return ok, nil
}

// FileSize returns the size of the file at path.
func (fs *MemoryFS) FileSize(path string) (int64, error) {
	key, _, err := fs.resolve(path)
	if err != nil {
		return 0, err
	}
	fs.mu.RLock()
	node, ok := fs.files[key]
	fs.mu.RUnlock()
	if !ok {
		return 0, errors.Wrapf(ErrNotFile, "%q", path)
	}
	node.mu.Lock()
	defer node.mu.Unlock()
	return int64(len(node.data)), nil
}

// MkDir creates the directory at path. The parent must already exist.
func (fs *MemoryFS) MkDir(path string) error {
	key, parent, err := fs.resolve(path)
	if err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.dirs[key]; ok {
		return errors.Wrapf(ErrExists, "%q", path)
	}
	if _, ok := fs.files[key]; ok {
		return errors.Wrapf(ErrExists, "%q", path)
	}
	if _, ok := fs.dirs[parent]; !ok {
		return errors.Wrapf(ErrParentMissing, "%q", path)
	}
	fs.dirs[key] = struct{}{}
	return nil
}

// MkDirAll creates the directory at path along with any missing parents.
// An existing directory is not an error.
func (fs *MemoryFS) MkDirAll(path string) error {
	segs, err := pathSegments(path)
	if err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := 1; i <= len(segs); i++ {
		key := memKey(segs[:i])
		if _, ok := fs.files[key]; ok {
			return errors.Wrapf(ErrNotDirectory, "%q", key)
		}
		fs.dirs[key] = struct{}{}
	}
	return nil
}

// ReadDir returns the sorted names of the entries directly under path.
func (fs *MemoryFS) ReadDir(path string) ([]string, error) {
	key, _, err := fs.resolve(path)
	if err != nil {
		return nil, err
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if _, ok := fs.dirs[key]; !ok {
		return nil, errors.Wrapf(ErrNotDirectory, "%q", path)
	}
	prefix := key
	if prefix != "/" {
		prefix += "/"
	}
	var names []string
	collect := func(k string) {
		if !strings.HasPrefix(k, prefix) || k == key {
			return
		}
		rest := k[len(prefix):]
		if !strings.Contains(rest, "/") {
			names = append(names, rest)
		}
	}
	for k := range fs.dirs {
		collect(k)
	}
	for k := range fs.files {
		collect(k)
	}
	sort.Strings(names)
	return names, nil
}

// RemoveDir removes the empty directory at path. The root cannot be
// removed.
func (fs *MemoryFS) RemoveDir(path string) error {
	key, _, err := fs.resolve(path)
	if err != nil {
		return err
	}
	if key == "/" {
		return errors.Wrapf(ErrInvalidPath, "%q: cannot remove root", path)
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.dirs[key]; !ok {
		return errors.Wrapf(ErrNotDirectory, "%q", path)
	}
	prefix := key + "/"
	for k := range fs.dirs {
		if strings.HasPrefix(k, prefix) {
			return errors.Wrapf(ErrNotEmpty, "%q", path)
		}
	}
	for k := range fs.files {
		if strings.HasPrefix(k, prefix) {
			return errors.Wrapf(ErrNotEmpty, "%q", path)
		}
	}
	delete(fs.dirs, key)
	return nil
}

// RemoveDirAll removes the directory at path and everything under it.
// Removing the root clears the filesystem but keeps the root itself.
func (fs *MemoryFS) RemoveDirAll(path string) error {
	key, _, err := fs.resolve(path)
	if err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.dirs[key]; !ok {
		return errors.Wrapf(ErrNotDirectory, "%q", path)
	}
	prefix := key
	if prefix != "/" {
		prefix += "/"
	}
	for k := range fs.dirs {
		if k != "/" && strings.HasPrefix(k, prefix) {
			delete(fs.dirs, k)
		}
	}
	for k := range fs.files {
		if strings.HasPrefix(k, prefix) {
			delete(fs.files, k)
		}
	}
	if key != "/" {
		delete(fs.dirs, key)
	}
	return nil
}

// Create opens the file at path, creating it empty if it does not exist.
// The parent directory must exist.
func (fs *MemoryFS) Create(path string) (File, error) {
	key, parent, err := fs.resolve(path)
	if err != nil {
		return nil, err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.dirs[key]; ok {
		return nil, errors.Wrapf(ErrNotFile, "%q", path)
	}
	node, ok := fs.files[key]
	if !ok {
		if _, ok := fs.dirs[parent]; !ok {
			return nil, errors.Wrapf(ErrParentMissing, "%q", path)
		}
		node = &memNode{}
		fs.files[key] = node
	}
	return &memFile{fs: fs, node: node, key: key, path: path}, nil
}

// Open opens the existing file at path.
func (fs *MemoryFS) Open(path string) (File, error) {
	key, _, err := fs.resolve(path)
	if err != nil {
		return nil, err
	}
	fs.mu.RLock()
	node, ok := fs.files[key]
	fs.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", path)
	}
	return &memFile{fs: fs, node: node, key: key, path: path}, nil
}

// Remove removes the file at path.
func (fs *MemoryFS) Remove(path string) error {
	key, _, err := fs.resolve(path)
	if err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.files[key]; !ok {
		return errors.Wrapf(ErrNotFound, "%q", path)
	}
	delete(fs.files, key)
	return nil
}

// memFile is a handle on a memNode with its own cursor and lock state.
type memFile struct {
	fs   *MemoryFS
	node *memNode
	key  string
	path string
	off  int64
	lock LockMode
}

// Read reads from the cursor position.
func (f *memFile) Read(p []byte) (int, error) {
	f.node.mu.Lock()
	defer f.node.mu.Unlock()
	if f.off >= int64(len(f.node.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.node.data[f.off:])
	f.off += int64(n)
	return n, nil
}

// Write writes at the cursor position, extending the file as needed.
func (f *memFile) Write(p []byte) (int, error) {
	f.node.mu.Lock()
	defer f.node.mu.Unlock()
	n := f.writeAt(p, f.off)
	f.off += int64(n)
	return n, nil
}

// ReadAt reads at an absolute offset without moving the cursor.
func (f *memFile) ReadAt(p []byte, off int64) (int, error) {
	f.node.mu.Lock()
	defer f.node.mu.Unlock()
	if off >= int64(len(f.node.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.node.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt writes at an absolute offset without moving the cursor.
func (f *memFile) WriteAt(p []byte, off int64) (int, error) {
	f.node.mu.Lock()
	defer f.node.mu.Unlock()
	return f.writeAt(p, off), nil
}

// writeAt is the shared write path. The caller holds the node lock.
func (f *memFile) writeAt(p []byte, off int64) int {
	end := off + int64(len(p))
	if end > int64(len(f.node.data)) {
		grown := make([]byte, end)
		copy(grown, f.node.data)
		f.node.data = grown
	}
	return copy(f.node.data[off:end], p)
}

// Seek moves the cursor.
func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	f.node.mu.Lock()
	defer f.node.mu.Unlock()
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = f.off
	case io.SeekEnd:
		base = int64(len(f.node.data))
	default:
		return 0, errors.Errorf("vfs: invalid seek whence %d", whence)
	}
	pos := base + offset
	if pos < 0 {
		return 0, errors.Errorf("vfs: negative seek position %d", pos)
	}
	f.off = pos
	return pos, nil
}

// Close releases any lock held by the handle. The handle stays readable in
// the sense that the node outlives it; Close only detaches lock state.
func (f *memFile) Close() error {
	return f.Lock(Unlocked)
}

// Path returns the URI path the handle was opened with.
func (f *memFile) Path() string {
	return f.path
}

// Size returns the current size of the file.
func (f *memFile) Size() (int64, error) {
	f.node.mu.Lock()
	defer f.node.mu.Unlock()
	return int64(len(f.node.data)), nil
}

// Truncate resizes the file.
func (f *memFile) Truncate(size int64) error {
	if size < 0 {
		return errors.Errorf("vfs: negative truncate size %d", size)
	}
	f.node.mu.Lock()
	defer f.node.mu.Unlock()
	if size <= int64(len(f.node.data)) {
		f.node.data = f.node.data[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, f.node.data)
	f.node.data = grown
	return nil
}

// Sync is a no-op for the in-memory backend.
func (f *memFile) Sync() error {
	return nil
}

// Lock changes the advisory lock held by this handle.
func (f *memFile) Lock(mode LockMode) error {
	if mode == f.lock {
		return nil
	}
	if err := f.fs.locks.transition(f.key, f.lock, mode); err != nil {
		return err
	}
	f.lock = mode
	return nil
}

// LockState returns the advisory lock held by this handle.
func (f *memFile) LockState() LockMode {
	return f.lock
}

// MemoryProvider provisions in-memory filesystems. The authority host of
// the URI names the pool; every URI with the same pool shares one
// filesystem.
type MemoryProvider struct {
	mu    sync.Mutex
	pools map[string]*MemoryFS
}

// NewMemoryProvider creates a provider with no pools.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{pools: make(map[string]*MemoryFS)}
}

// Schemes returns the schemes served by the provider.
func (p *MemoryProvider) Schemes() []string {
	return []string{"mem"}
}

// Configure accepts no settings.
func (p *MemoryProvider) Configure(map[string]string) error {
	return nil
}

// Provision returns the filesystem for the pool named by the URI host,
// creating it on first use.
func (p *MemoryProvider) Provision(rawURI string) (FileSystem, error) {
	u, err := uri.ParseURI(rawURI)
	if err != nil {
		return nil, errors.Wrapf(err, "mem: parse %q", rawURI)
	}
	var pool string
	if u.Authority != nil {
		pool = u.Authority.Host.Raw
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fs, ok := p.pools[pool]
	if !ok {
		fs = NewMemoryFS()
		p.pools[pool] = fs
	}
	return fs, nil
}
