// Package importer folds a storage tree of resource files into a single
// merged record collection.
//
// Every *.xml file under the base directory is read; its path yields the
// storage group and locale tag, its entries merge into one Record per
// (group, key) pair. Import is all-or-nothing: the first malformed file
// aborts the pass with an error and no partial collection is returned.
package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/redpineu/xmlres/resfile"
	"github.com/redpineu/xmlres/resname"
	"github.com/redpineu/xmlres/resource"
)

// pattern matches every resource file in the tree, at any depth.
const pattern = "**/*.xml"

// Import reads all resource files under baseDir and returns the merged
// collection. File enumeration order is unspecified; it only decides which
// file's comment wins when several locale files carry one for the same key.
func Import(baseDir string) (*resource.Collection, error) {
	if _, err := os.Stat(baseDir); err != nil {
		return nil, fmt.Errorf("opening storage directory: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(baseDir), pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", baseDir, err)
	}

	col := resource.NewCollection()
	for _, m := range matches {
		path := filepath.Join(baseDir, filepath.FromSlash(m))
		if err := importFile(col, path, baseDir); err != nil {
			return nil, err
		}
	}
	return col, nil
}

// importFile merges one resource file into the collection.
func importFile(col *resource.Collection, path, baseDir string) error {
	group, locale := resname.Split(path, baseDir)

	f, err := resfile.ParseFile(path)
	if err != nil {
		return err
	}

	for _, e := range f.Entries {
		rec := col.Ensure(group, e.Key)
		rec.Translations[locale] = e.Text
		// Last file processed wins the note; enumeration order is not
		// pinned down, so callers must not rely on which locale that is.
		rec.Note = e.Comment
	}
	return nil
}
