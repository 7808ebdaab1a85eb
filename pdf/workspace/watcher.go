package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/dhamidi/pdfc/pdf/db"
)

// ChangeKind says what happened to a watched file.
type ChangeKind uint8

const (
	FileChanged ChangeKind = iota
	FileRemoved
)

var changeKindNames = map[ChangeKind]string{
	FileChanged: "changed",
	FileRemoved: "removed",
}

func (k ChangeKind) String() string {
	if name, ok := changeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

type Change struct {
	Kind ChangeKind
	Path string
	ID   db.FileID
}

// Watcher keeps a database up to date with the files below a directory.
// Bursts of events for the same file are coalesced over the debounce
// interval before the file is read again.
type Watcher struct {
	database *db.Database
	fsys     afero.Fs
	exts     []string
	debounce time.Duration
	onChange func(Change)

	fsw     *fsnotify.Watcher
	stopped chan struct{}
}

type WatcherOption func(*Watcher)

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// OnChange registers a callback run on the watcher goroutine after the
// database has been updated.
func OnChange(fn func(Change)) WatcherOption {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// NewWatcher starts watching root and its non-hidden subdirectories.
// Files are read from the operating system's file system.
func NewWatcher(database *db.Database, root string, exts []string, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		database: database,
		fsys:     afero.NewOsFs(),
		exts:     exts,
		debounce: 100 * time.Millisecond,
		onChange: func(Change) {},
		fsw:      fsw,
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.run()
	log.Infof("watching %s", root)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.stopped
	return err
}

func (w *Watcher) addTree(root string) error {
	return afero.Walk(w.fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watching %s: %w", root, err)
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(info.Name(), ".") {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer close(w.stopped)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.note(ev) {
				pending[ev.Name] = struct{}{}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Errorf("watch error: %s", err)
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			slices.Sort(paths)
			for _, path := range paths {
				w.sync(path)
			}
		}
	}
}

// note reacts to directory creation and reports whether ev concerns a
// watched file.
func (w *Watcher) note(ev fsnotify.Event) bool {
	log.Debugf("event %s", ev)
	if ev.Has(fsnotify.Create) {
		if info, err := w.fsys.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				log.Errorf("%s", err)
			}
			return false
		}
	}
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return HasExtension(ev.Name, w.exts)
}

// sync brings the database in line with the current state of path.
func (w *Watcher) sync(path string) {
	id, err := LoadFile(w.fsys, w.database, path)
	if err == nil {
		w.onChange(Change{Kind: FileChanged, Path: path, ID: id})
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		log.Errorf("%s", err)
		return
	}
	id, ok := w.database.Vfs().Lookup(path)
	if !ok {
		return
	}
	w.database.RemoveFile(id)
	log.Debugf("removed %s (file %d)", path, id)
	w.onChange(Change{Kind: FileRemoved, Path: path, ID: id})
}
