// Package workspace finds PDF sources on disk and keeps a db.Database in
// step with them.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/pdfc/pdf/db"
)

var log = commonlog.GetLogger("pdfc.workspace")

// Scan lists the files below root whose extension is one of exts, in
// lexical order. Directories starting with a dot are skipped, root itself
// excepted. Unreadable entries are logged and ignored.
func Scan(fsys afero.Fs, root string, exts []string) ([]string, error) {
	var paths []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warningf("skipping %s: %s", path, err)
			return nil
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if HasExtension(path, exts) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	slices.Sort(paths)
	return paths, nil
}

// HasExtension reports whether path ends in one of exts, ignoring case.
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// LoadFile reads path into database and returns its id.
func LoadFile(fsys afero.Fs, database *db.Database, path string) (db.FileID, error) {
	text, err := afero.ReadFile(fsys, path)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", path, err)
	}
	id := database.Vfs().FileID(path)
	rev := database.SetFileText(id, text)
	log.Debugf("loaded %s as file %d, revision %d", path, id, rev)
	return id, nil
}

// Load scans root and loads every matching file into database.
func Load(fsys afero.Fs, database *db.Database, root string, exts []string) ([]db.FileID, error) {
	paths, err := Scan(fsys, root, exts)
	if err != nil {
		return nil, err
	}
	ids := make([]db.FileID, 0, len(paths))
	for _, path := range paths {
		id, err := LoadFile(fsys, database, path)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	log.Infof("loaded %d files from %s", len(ids), root)
	return ids, nil
}
