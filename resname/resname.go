// Package resname implements the resource file naming convention used by
// xmlres storage trees.
//
// A resource file is named <group>[.<locale>].xml, where <group> is the
// path relative to the storage base directory (with forward slashes) plus
// the base file name, and <locale> is an opaque culture tag such as
// "de-DE". A file without a locale segment holds the invariant-language
// text, referred to by the empty locale tag "".
//
//	Resources/strings.xml        → group "strings",    locale ""
//	Resources/en/strings.de.xml  → group "en/strings", locale "de"
package resname

import (
	"path/filepath"
	"strings"
)

// Extension is the resource file extension, including the dot.
const Extension = ".xml"

// InvariantLocale is the locale tag of the invariant (default) language.
const InvariantLocale = ""

// Matches reports whether a file name follows the resource naming
// convention, i.e. carries the resource extension.
func Matches(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Extension)
}

// Split decomposes a resource file path into its storage group and locale
// tag. The path is made relative to baseDir when possible, directory
// separators are normalized to forward slashes, the extension is dropped
// once, and the final dot-separated segment of the remaining file name (if
// any) becomes the locale tag. Locale tags are taken verbatim; no
// validation is applied.
func Split(path, baseDir string) (group, locale string) {
	rel := path
	if baseDir != "" {
		if r, err := filepath.Rel(baseDir, path); err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)

	if Matches(rel) {
		rel = rel[:len(rel)-len(Extension)]
	}

	dir, name := "", rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		dir, name = rel[:i+1], rel[i+1:]
	}

	if i := strings.LastIndex(name, "."); i >= 0 {
		locale = name[i+1:]
		name = name[:i]
	}

	return dir + name, locale
}

// Join composes the storage path for a (group, locale) pair under baseDir.
// The invariant locale produces <group>.xml with no dangling dot. A group
// that already carries the base directory prefix is used as-is, so callers
// that accidentally pass a pre-rooted group do not get a doubled prefix.
func Join(baseDir, group, locale string) string {
	name := group
	if locale != InvariantLocale {
		name = group + "." + locale
	}
	name += Extension

	name = filepath.FromSlash(name)
	if baseDir == "" || strings.HasPrefix(name, baseDir+string(filepath.Separator)) || strings.HasPrefix(name, filepath.Clean(baseDir)+string(filepath.Separator)) {
		return filepath.Clean(name)
	}
	return filepath.Join(baseDir, name)
}
