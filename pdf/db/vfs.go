package db

import (
	"path/filepath"
	"sync"
)

// FileID identifies a file for the lifetime of a Vfs. IDs are never
// reused, even after the file is removed from a Database.
type FileID uint32

// Vfs interns paths into FileIDs.
type Vfs struct {
	mu    sync.RWMutex
	ids   map[string]FileID
	paths []string
}

func NewVfs() *Vfs {
	return &Vfs{ids: make(map[string]FileID)}
}

// FileID returns the id of path, allocating one on first use. Paths are
// cleaned first, so `a/./b` and `a/b` share an id.
func (v *Vfs) FileID(path string) FileID {
	path = filepath.Clean(path)

	v.mu.RLock()
	id, ok := v.ids[path]
	v.mu.RUnlock()
	if ok {
		return id
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if id, ok := v.ids[path]; ok {
		return id
	}
	id = FileID(len(v.paths))
	v.ids[path] = id
	v.paths = append(v.paths, path)
	return id
}

func (v *Vfs) Lookup(path string) (FileID, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	id, ok := v.ids[filepath.Clean(path)]
	return id, ok
}

func (v *Vfs) Path(id FileID) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if int(id) >= len(v.paths) {
		return "", false
	}
	return v.paths[id], true
}
