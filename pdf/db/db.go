// Package db holds file contents and memoizes their parses. A parse is
// computed at most once per (file, edition, revision); concurrent callers
// asking for the same one share a single computation.
package db

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/singleflight"

	"github.com/dhamidi/pdfc/pdf/edition"
	"github.com/dhamidi/pdfc/pdf/green"
	"github.com/dhamidi/pdfc/pdf/syntax"
)

var log = commonlog.GetLogger("pdfc.db")

var ErrUnknownFile = errors.New("unknown file")

// Revision identifies a text of a file. Revisions come from one counter
// shared by all files and are never reused, not even after RemoveFile.
type Revision uint64

type parseKey struct {
	file     FileID
	edition  edition.Edition
	revision Revision
}

func (k parseKey) String() string {
	return fmt.Sprintf("%d@%s#%d", k.file, k.edition, k.revision)
}

type fileState struct {
	text     []byte
	revision Revision
	edition  edition.Edition
	parsed   *memo
}

type memo struct {
	key    parseKey
	result syntax.Parse
}

type Database struct {
	mu             sync.RWMutex
	vfs            *Vfs
	files          map[FileID]*fileState
	defaultEdition edition.Edition
	cache          *green.NodeCache
	revision       Revision
	group          singleflight.Group
	parses         atomic.Int64
}

type Option func(*Database)

// WithEdition sets the edition newly added files are parsed with.
func WithEdition(ed edition.Edition) Option {
	return func(db *Database) {
		db.defaultEdition = ed
	}
}

func WithVfs(vfs *Vfs) Option {
	return func(db *Database) {
		db.vfs = vfs
	}
}

func New(opts ...Option) *Database {
	db := &Database{
		vfs:            NewVfs(),
		files:          make(map[FileID]*fileState),
		defaultEdition: edition.Latest,
		cache:          green.NewNodeCache(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *Database) Vfs() *Vfs {
	return db.vfs
}

// SetFileText stores a copy of text as the new content of id and returns
// its revision. Setting identical text keeps the current revision.
func (db *Database) SetFileText(id FileID, text []byte) Revision {
	db.mu.Lock()
	defer db.mu.Unlock()

	st, ok := db.files[id]
	if !ok {
		st = &fileState{edition: db.defaultEdition}
		db.files[id] = st
	} else if st.revision > 0 && slices.Equal(st.text, text) {
		return st.revision
	}
	st.text = slices.Clone(text)
	db.revision++
	st.revision = db.revision
	log.Debugf("file %d now at revision %d (%d bytes)", id, st.revision, len(text))
	return st.revision
}

func (db *Database) SetEdition(id FileID, ed edition.Edition) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	st, ok := db.files[id]
	if !ok {
		return fmt.Errorf("setting edition of file %d: %w", id, ErrUnknownFile)
	}
	st.edition = ed
	return nil
}

func (db *Database) FileText(id FileID) ([]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	st, ok := db.files[id]
	if !ok {
		return nil, fmt.Errorf("reading file %d: %w", id, ErrUnknownFile)
	}
	return st.text, nil
}

func (db *Database) Revision(id FileID) (Revision, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	st, ok := db.files[id]
	if !ok {
		return 0, fmt.Errorf("revision of file %d: %w", id, ErrUnknownFile)
	}
	return st.revision, nil
}

// RemoveFile forgets the file and its parse. The id stays reserved.
func (db *Database) RemoveFile(id FileID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.files, id)
}

// Files returns the ids of all files with content, in ascending order.
func (db *Database) Files() []FileID {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ids := make([]FileID, 0, len(db.files))
	for id := range db.files {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Parse returns the parse of the current revision of id.
func (db *Database) Parse(id FileID) (syntax.Parse, error) {
	p, _, err := db.Snapshot(id)
	return p, err
}

// Snapshot returns the parse of the current revision of id along with the
// text it was computed from.
func (db *Database) Snapshot(id FileID) (syntax.Parse, []byte, error) {
	db.mu.RLock()
	st, ok := db.files[id]
	if !ok {
		db.mu.RUnlock()
		return syntax.Parse{}, nil, fmt.Errorf("parsing file %d: %w", id, ErrUnknownFile)
	}
	key := parseKey{file: id, edition: st.edition, revision: st.revision}
	text := st.text
	if st.parsed != nil && st.parsed.key == key {
		result := st.parsed.result
		db.mu.RUnlock()
		log.Debugf("parse of %s is cached", key)
		return result, text, nil
	}
	db.mu.RUnlock()

	v, _, shared := db.group.Do(key.String(), func() (any, error) {
		result := syntax.ParseText(text, syntax.WithEdition(key.edition), syntax.WithCache(db.cache))
		db.parses.Add(1)
		db.store(key, result)
		return result, nil
	})
	log.Debugf("parsed %s (shared: %t)", key, shared)
	return v.(syntax.Parse), text, nil
}

// store keeps result unless the file moved on while it was computed.
// Older revisions are dropped.
func (db *Database) store(key parseKey, result syntax.Parse) {
	db.mu.Lock()
	defer db.mu.Unlock()

	st, ok := db.files[key.file]
	if !ok || st.revision != key.revision || st.edition != key.edition {
		return
	}
	st.parsed = &memo{key: key, result: result}
}

// ParseCount is the number of parses actually computed.
func (db *Database) ParseCount() int64 {
	return db.parses.Load()
}
