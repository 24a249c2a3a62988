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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LocalFS is a filesystem backed by a directory on disk. URI paths are
// resolved under the root; the decoded segments are joined with the
// platform separator, so a path can never escape the root.
type LocalFS struct {
	root  string
	locks *lockTable
}

// NewLocalFS creates a filesystem rooted at dir. The directory is not
// created; it must exist before use.
func NewLocalFS(dir string) *LocalFS {
	return &LocalFS{root: dir, locks: newLockTable()}
}

// resolve maps a URI path to a location under the root.
func (fs *LocalFS) resolve(path string) (string, error) {
	segs, err := pathSegments(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{fs.root}, segs...)...), nil
}

// Exists reports whether path names a file or directory.
func (fs *LocalFS) Exists(path string) (bool, error) {
	loc, err := fs.resolve(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(loc); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "local: stat %q", path)
	}
	return true, nil
}

// IsFile reports whether path names a regular file.
func (fs *LocalFS) IsFile(path string) (bool, error) {
	loc, err := fs.resolve(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(loc)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "local: stat %q", path)
	}
	return info.Mode().IsRegular(), nil
}

// IsDir reports whether path names a directory.
func (fs *LocalFS) IsDir(path string) (bool, error) {
	loc, err := fs.resolve(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(loc)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "local: stat %q", path)
	}
	return info.IsDir(), nil
}

// FileSize returns the size of the file at path.
func (fs *LocalFS) FileSize(path string) (int64, error) {
	loc, err := fs.resolve(path)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(loc)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Wrapf(ErrNotFound, "%q", path)
		}
		return 0, errors.Wrapf(err, "local: stat %q", path)
	}
	if !info.Mode().IsRegular() {
		return 0, errors.Wrapf(ErrNotFile, "%q", path)
	}
	return info.Size(), nil
}

// MkDir creates the directory at path. The parent must exist.
func (fs *LocalFS) MkDir(path string) error {
	loc, err := fs.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Mkdir(loc, 0o755); err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(ErrExists, "%q", path)
		}
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrParentMissing, "%q", path)
		}
		return errors.Wrapf(err, "local: mkdir %q", path)
	}
	return nil
}

// MkDirAll creates the directory at path along with any missing parents.
func (fs *LocalFS) MkDirAll(path string) error {
	loc, err := fs.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(loc, 0o755); err != nil {
		return errors.Wrapf(err, "local: mkdir %q", path)
	}
	return nil
}

// ReadDir returns the sorted names of the entries directly under path.
func (fs *LocalFS) ReadDir(path string) ([]string, error) {
	loc, err := fs.resolve(path)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(loc)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotDirectory, "%q", path)
		}
		return nil, errors.Wrapf(err, "local: readdir %q", path)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// RemoveDir removes the empty directory at path.
func (fs *LocalFS) RemoveDir(path string) error {
	loc, err := fs.resolve(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(loc)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotDirectory, "%q", path)
		}
		return errors.Wrapf(err, "local: stat %q", path)
	}
	if !info.IsDir() {
		return errors.Wrapf(ErrNotDirectory, "%q", path)
	}
	if err := os.Remove(loc); err != nil {
		return errors.Wrapf(ErrNotEmpty, "%q: %v", path, err)
	}
	return nil
}

// RemoveDirAll removes the directory at path and everything under it.
func (fs *LocalFS) RemoveDirAll(path string) error {
	loc, err := fs.resolve(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(loc)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotDirectory, "%q", path)
		}
		return errors.Wrapf(err, "local: stat %q", path)
	}
	if !info.IsDir() {
		return errors.Wrapf(ErrNotDirectory, "%q", path)
	}
	if err := os.RemoveAll(loc); err != nil {
		return errors.Wrapf(err, "local: remove %q", path)
	}
	return nil
}

// Create opens the file at path for reading and writing, creating it if it
// does not exist. The parent directory must exist.
func (fs *LocalFS) Create(path string) (File, error) {
	loc, err := fs.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(loc, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrParentMissing, "%q", path)
		}
		return nil, errors.Wrapf(err, "local: create %q", path)
	}
	return &localFile{fs: fs, f: f, key: loc, path: path}, nil
}

// Open opens the existing file at path for reading and writing.
func (fs *LocalFS) Open(path string) (File, error) {
	loc, err := fs.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(loc, os.O_RDWR, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "%q", path)
		}
		return nil, errors.Wrapf(err, "local: open %q", path)
	}
	return &localFile{fs: fs, f: f, key: loc, path: path}, nil
}

// Remove removes the file at path.
func (fs *LocalFS) Remove(path string) error {
	loc, err := fs.resolve(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(loc)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "%q", path)
		}
		return errors.Wrapf(err, "local: stat %q", path)
	}
	if info.IsDir() {
		return errors.Wrapf(ErrNotFile, "%q", path)
	}
	if err := os.Remove(loc); err != nil {
		return errors.Wrapf(err, "local: remove %q", path)
	}
	return nil
}

// localFile wraps an os.File. Advisory locks live in the owning LocalFS
// lock table and are visible within this process only.
type localFile struct {
	fs   *LocalFS
	f    *os.File
	key  string
	path string
	lock LockMode
}

func (f *localFile) Read(p []byte) (int, error) { return f.f.Read(p) }

func (f *localFile) Write(p []byte) (int, error) { return f.f.Write(p) }

func (f *localFile) ReadAt(p []byte, off int64) (int, error) { return f.f.ReadAt(p, off) }

func (f *localFile) WriteAt(p []byte, off int64) (int, error) { return f.f.WriteAt(p, off) }

func (f *localFile) Seek(offset int64, whence int) (int64, error) {
	return f.f.Seek(offset, whence)
}

// Close releases any lock held by the handle and closes the file.
func (f *localFile) Close() error {
	if err := f.Lock(Unlocked); err != nil {
		return err
	}
	if err := f.f.Close(); err != nil {
		return errors.Wrapf(err, "local: close %q", f.path)
	}
	return nil
}

// Path returns the URI path the handle was opened with.
func (f *localFile) Path() string {
	return f.path
}

// Size returns the current size of the file.
func (f *localFile) Size() (int64, error) {
	info, err := f.f.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "local: stat %q", f.path)
	}
	return info.Size(), nil
}

// Truncate resizes the file.
func (f *localFile) Truncate(size int64) error {
	if err := f.f.Truncate(size); err != nil {
		return errors.Wrapf(err, "local: truncate %q", f.path)
	}
	return nil
}

// Sync flushes the file to disk.
func (f *localFile) Sync() error {
	if err := f.f.Sync(); err != nil {
		return errors.Wrapf(err, "local: sync %q", f.path)
	}
	return nil
}

// Lock changes the advisory lock held by this handle.
func (f *localFile) Lock(mode LockMode) error {
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
func (f *localFile) LockState() LockMode {
	return f.lock
}

// LocalProvider provisions disk filesystems rooted at a configured
// directory.
type LocalProvider struct {
	root string
}

// NewLocalProvider creates an unconfigured provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// Schemes returns the schemes served by the provider.
func (p *LocalProvider) Schemes() []string {
	return []string{"file"}
}

// Configure sets the root directory. The "root" key is required.
func (p *LocalProvider) Configure(config map[string]string) error {
	root, ok := config["root"]
	if !ok || root == "" {
		return errors.Wrap(ErrInvalidPath, "local provider requires a root setting")
	}
	p.root = root
	return nil
}

// Provision returns a filesystem rooted at the configured directory.
func (p *LocalProvider) Provision(rawURI string) (FileSystem, error) {
	if p.root == "" {
		return nil, errors.Wrap(ErrInvalidPath, "local provider is not configured")
	}
	return NewLocalFS(p.root), nil
}
