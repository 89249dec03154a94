package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redpineu/xmlres/resfile"
)

// writeTree lays out resource files under a fresh temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestImport_MergesLocaleFilesIntoOneRecord(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"strings.xml":       `<strings><string key="Hello">Hi</string></strings>`,
		"strings.de-DE.xml": `<strings><string key="Hello">Hallo</string></strings>`,
	})

	col, err := Import(dir)
	require.NoError(t, err)
	require.Equal(t, 1, col.Len())

	rec, ok := col.Lookup("strings", "Hello")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"": "Hi", "de-DE": "Hallo"}, rec.Translations)
	assert.Equal(t, "Hi", rec.Invariant())
}

func TestImport_NestedDirectories(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"sub/strings.xml":       `<strings><string key="Bye">Goodbye</string></strings>`,
		"sub/strings.fr-FR.xml": `<strings><string key="Bye">Au revoir</string></strings>`,
		"other.xml":             `<strings><string key="Top">top level</string></strings>`,
	})

	col, err := Import(dir)
	require.NoError(t, err)
	require.Equal(t, 2, col.Len())

	rec, ok := col.Lookup("sub/strings", "Bye")
	require.True(t, ok)
	assert.Equal(t, "Au revoir", rec.Translations["fr-FR"])

	_, ok = col.Lookup("other", "Top")
	assert.True(t, ok)
}

func TestImport_OrphanTranslationsAreKept(t *testing.T) {
	// A key that only exists in a locale file still produces a record;
	// filtering orphans against the invariant set is the host's business.
	dir := writeTree(t, map[string]string{
		"strings.xml":    `<strings><string key="Known">yes</string></strings>`,
		"strings.de.xml": `<strings><string key="Orphan">weise</string></strings>`,
	})

	col, err := Import(dir)
	require.NoError(t, err)
	require.Equal(t, 2, col.Len())

	rec, ok := col.Lookup("strings", "Orphan")
	require.True(t, ok)
	assert.Empty(t, rec.Invariant())
	assert.Equal(t, "weise", rec.Translations["de"])
}

func TestImport_CommentBecomesNote(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"strings.xml": `<strings><string key="Hello" comment="greeting">Hi</string></strings>`,
	})

	col, err := Import(dir)
	require.NoError(t, err)

	rec, ok := col.Lookup("strings", "Hello")
	require.True(t, ok)
	assert.Equal(t, "greeting", rec.Note)
}

func TestImport_MalformedFileAbortsWholePass(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"good.xml": `<strings><string key="a">fine</string></strings>`,
		"bad.xml":  `<strings><string comment="no key">broken</string></strings>`,
	})

	col, err := Import(dir)
	require.Error(t, err)
	assert.Nil(t, col, "no partial collection on failure")

	var mk *resfile.MissingKeyError
	assert.ErrorAs(t, err, &mk)
}

func TestImport_UnparsableFileAbortsWholePass(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"broken.xml": `this is not xml <<<`,
	})

	_, err := Import(dir)
	require.Error(t, err)
}

func TestImport_IgnoresNonResourceFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"strings.xml": `<strings><string key="a">x</string></strings>`,
		"notes.txt":   `not a resource file`,
		"data.yaml":   `also: not one`,
	})

	col, err := Import(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, col.Len())
}

func TestImport_EmptyTree(t *testing.T) {
	col, err := Import(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, col.Len())
}

func TestImport_MissingBaseDirectory(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
