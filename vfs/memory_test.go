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

//nolint:testpackage // White-box tests for the in-memory backend.
package vfs

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// writeString is a test helper writing s through the File interface.
func writeString(t *testing.T, f File, s string) {
	t.Helper()
	n, err := f.Write([]byte(s))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(s) {
		t.Fatalf("Write wrote %d bytes, want %d", n, len(s))
	}
}

// readAll is a test helper reading the whole file from the start.
func readAll(t *testing.T, f File) string {
	t.Helper()
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return string(data)
}

// TestMemoryFSDirectories tests directory creation, listing and removal.
func TestMemoryFSDirectories(t *testing.T) {
	fs := NewMemoryFS()

	if err := fs.MkDir("/a"); err != nil {
		t.Fatalf("MkDir(/a): %v", err)
	}
	if err := fs.MkDir("/a/b"); err != nil {
		t.Fatalf("MkDir(/a/b): %v", err)
	}
	if err := fs.MkDir("/a"); !errors.Is(err, ErrExists) {
		t.Errorf("MkDir(/a) again = %v, want ErrExists", err)
	}
	if err := fs.MkDir("/x/y"); !errors.Is(err, ErrParentMissing) {
		t.Errorf("MkDir(/x/y) = %v, want ErrParentMissing", err)
	}
	if err := fs.MkDirAll("/x/y/z"); err != nil {
		t.Fatalf("MkDirAll(/x/y/z): %v", err)
	}

	ok, err := fs.IsDir("/x/y/z")
	if err != nil || !ok {
		t.Errorf("IsDir(/x/y/z) = %v, %v, want true", ok, err)
	}

	names, err := fs.ReadDir("/")
	if err != nil {
		t.Fatalf("ReadDir(/): %v", err)
	}
	if diff := cmp.Diff([]string{"a", "x"}, names); diff != "" {
		t.Errorf("ReadDir(/) mismatch (-want +got):\n%s", diff)
	}

	if err := fs.RemoveDir("/a"); !errors.Is(err, ErrNotEmpty) {
		t.Errorf("RemoveDir(/a) = %v, want ErrNotEmpty", err)
	}
	if err := fs.RemoveDir("/a/b"); err != nil {
		t.Fatalf("RemoveDir(/a/b): %v", err)
	}
	if err := fs.RemoveDir("/a"); err != nil {
		t.Fatalf("RemoveDir(/a): %v", err)
	}
	if err := fs.RemoveDirAll("/x"); err != nil {
		t.Fatalf("RemoveDirAll(/x): %v", err)
	}
	ok, err = fs.Exists("/x/y")
	if err != nil || ok {
		t.Errorf("Exists(/x/y) after RemoveDirAll = %v, %v, want false", ok, err)
	}
}

// TestMemoryFSFiles tests the file lifecycle: create, write, reopen,
// read, truncate, remove.
func TestMemoryFSFiles(t *testing.T) {
	fs := NewMemoryFS()

	if _, err := fs.Create("/no/parent.txt"); !errors.Is(err, ErrParentMissing) {
		t.Errorf("Create without parent = %v, want ErrParentMissing", err)
	}

	f, err := fs.Create("/hello.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	writeString(t, f, "hello world")
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	size, err := fs.FileSize("/hello.txt")
	if err != nil || size != 11 {
		t.Errorf("FileSize = %d, %v, want 11", size, err)
	}
	ok, err := fs.IsFile("/hello.txt")
	if err != nil || !ok {
		t.Errorf("IsFile = %v, %v, want true", ok, err)
	}

	g, err := fs.Open("/hello.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := readAll(t, g); got != "hello world" {
		t.Errorf("content = %q, want %q", got, "hello world")
	}

	if err := g.Truncate(5); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if got := readAll(t, g); got != "hello" {
		t.Errorf("content after truncate = %q, want %q", got, "hello")
	}

	buf := make([]byte, 3)
	if _, err := g.ReadAt(buf, 1); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(buf) != "ell" {
		t.Errorf("ReadAt = %q, want %q", buf, "ell")
	}

	if err := fs.Remove("/hello.txt"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := fs.Open("/hello.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open after Remove = %v, want ErrNotFound", err)
	}
	if err := fs.Remove("/hello.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove again = %v, want ErrNotFound", err)
	}
}

// TestMemoryFSSharedContent tests that two handles on the same path see
// each other's writes.
func TestMemoryFSSharedContent(t *testing.T) {
	fs := NewMemoryFS()

	a, err := fs.Create("/shared.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := fs.Open("/shared.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	writeString(t, a, "from a")
	if got := readAll(t, b); got != "from a" {
		t.Errorf("second handle read %q, want %q", got, "from a")
	}
}

// TestMemoryFSEncodedPaths tests that percent-encoded path segments are
// decoded before they become names.
func TestMemoryFSEncodedPaths(t *testing.T) {
	fs := NewMemoryFS()

	if err := fs.MkDir("/my%20dir"); err != nil {
		t.Fatalf("MkDir: %v", err)
	}
	ok, err := fs.IsDir("/my%20dir")
	if err != nil || !ok {
		t.Errorf("IsDir = %v, %v, want true", ok, err)
	}
	// A literal space is not path grammar; it must not silently truncate.
	if _, err := fs.IsDir("/my dir"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("IsDir with raw space = %v, want ErrInvalidPath", err)
	}

	names, err := fs.ReadDir("/")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if diff := cmp.Diff([]string{"my dir"}, names); diff != "" {
		t.Errorf("ReadDir mismatch (-want +got):\n%s", diff)
	}

	if _, err := fs.Create("/a/../b"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("dot-dot path = %v, want ErrInvalidPath", err)
	}
}

// TestMemoryFSEncodedSeparators tests that an encoded "/" stays one
// segment instead of aliasing a nested entry in the key space.
func TestMemoryFSEncodedSeparators(t *testing.T) {
	fs := NewMemoryFS()

	if err := fs.MkDir("/a"); err != nil {
		t.Fatalf("MkDir: %v", err)
	}
	f, err := fs.Create("/a/b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := fs.IsFile("/a%2Fb"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("IsFile(/a%%2Fb) = %v, want ErrInvalidPath", err)
	}
	if _, err := fs.Create("/x%2F..%2Fb"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("encoded dot-dot = %v, want ErrInvalidPath", err)
	}
	if err := fs.Remove("/a%2Fb"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Remove(/a%%2Fb) = %v, want ErrInvalidPath", err)
	}
	ok, err := fs.IsFile("/a/b")
	if err != nil || !ok {
		t.Errorf("IsFile(/a/b) = %v, %v, want true", ok, err)
	}
}

// TestMemoryFSLocks tests the advisory lock transitions between handles.
func TestMemoryFSLocks(t *testing.T) {
	fs := NewMemoryFS()

	a, err := fs.Create("/locked.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := fs.Open("/locked.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := a.Lock(SharedLock); err != nil {
		t.Fatalf("first shared lock: %v", err)
	}
	if err := b.Lock(SharedLock); err != nil {
		t.Fatalf("second shared lock: %v", err)
	}
	if err := b.Lock(ExclusiveLock); !errors.Is(err, ErrLocked) {
		t.Errorf("exclusive upgrade with other holder = %v, want ErrLocked", err)
	}
	if got := b.LockState(); got != SharedLock {
		t.Errorf("failed upgrade changed state to %v, want SharedLock", got)
	}

	if err := a.Lock(Unlocked); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if err := b.Lock(ExclusiveLock); err != nil {
		t.Fatalf("exclusive after release: %v", err)
	}
	if err := a.Lock(SharedLock); !errors.Is(err, ErrLocked) {
		t.Errorf("shared against exclusive = %v, want ErrLocked", err)
	}

	// Close releases the lock.
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.Lock(ExclusiveLock); err != nil {
		t.Errorf("exclusive after close: %v", err)
	}
}

// TestMemoryProviderPools tests that the URI host selects the pool and
// pools are shared across lookups.
func TestMemoryProviderPools(t *testing.T) {
	p := NewMemoryProvider()

	fs1, err := p.Provision("mem://pool1/")
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	fs2, err := p.Provision("mem://pool1/other/path")
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if fs1 != fs2 {
		t.Error("same pool returned different filesystems")
	}

	fs3, err := p.Provision("mem://pool2/")
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if fs1 == fs3 {
		t.Error("different pools share a filesystem")
	}
}
