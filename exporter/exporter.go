// Package exporter writes a record collection back into a storage tree of
// resource files.
//
// Export runs in two phases. The accumulation phase groups every (record,
// locale) pair by target file, loading each existing file into an
// in-memory cache at most once and merging the new text into it. The
// flush phase rewrites every cached file in full. Failures are confined
// to the file they occur in: a file that cannot be decoded or written is
// reported through the result sink and the rest of the batch proceeds.
// Export itself never returns an error.
package exporter

import (
	"fmt"
	"os"
	"sort"

	"github.com/redpineu/xmlres/resfile"
	"github.com/redpineu/xmlres/resname"
	"github.com/redpineu/xmlres/resource"
)

// Result reports the outcome of one target file.
type Result struct {
	// Path is the storage path of the file.
	Path string
	// Locale is the locale tag the file holds, re-derived from its name.
	Locale string
	// Err is nil on success.
	Err error
}

// Ok reports whether the file was written successfully.
func (r Result) Ok() bool { return r.Err == nil }

// Message returns a human-readable outcome line for the file.
func (r Result) Message() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Path, r.Err)
	}
	return fmt.Sprintf("%s: written", r.Path)
}

// Sink consumes per-file results. A nil Sink is valid; results are then
// dropped, which silent callers explicitly opt into.
type Sink func(Result)

// run holds the per-call state of one export pass. No state survives the
// call, so concurrent exports against distinct trees need no coordination.
type run struct {
	baseDir string
	sink    Sink
	// cache holds one entry list per target path, read at most once.
	cache map[string]*resfile.File
	// order is the first-touch order of cached paths, pinning flush order.
	order []string
	// poisoned marks paths that already failed; they are skipped silently
	// for the rest of the pass.
	poisoned map[string]bool
}

// Export writes every locale of every record into its target file under
// baseDir. Each target file is read at most once and written at most once
// per call, however many records funnel into it.
func Export(baseDir string, records []*resource.Record, sink Sink) {
	r := &run{
		baseDir:  baseDir,
		sink:     sink,
		cache:    make(map[string]*resfile.File),
		poisoned: make(map[string]bool),
	}

	for _, rec := range records {
		for _, locale := range sortedLocales(rec.Translations) {
			r.accumulate(rec, locale)
		}
	}
	r.flush()
}

// accumulate merges one (record, locale) pair into the file cache.
func (r *run) accumulate(rec *resource.Record, locale string) {
	path := resname.Join(r.baseDir, rec.Group, locale)
	if r.poisoned[path] {
		return
	}

	f, ok := r.cache[path]
	if !ok {
		var err error
		f, err = r.load(path)
		if err != nil {
			r.fail(path, err)
			return
		}
		r.cache[path] = f
		r.order = append(r.order, path)
	}

	e := f.Upsert(rec.Key)
	e.Text = rec.Translations[locale]
	e.Comment = rec.Note
}

// load seeds the cache entry for a path: the decoded existing file, or an
// empty file when none exists yet.
func (r *run) load(path string) (*resfile.File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return resfile.NewFile(), nil
	}
	if err != nil {
		return nil, err
	}
	f, err := resfile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return f, nil
}

// flush rewrites every cached file in full, reporting one result each.
func (r *run) flush() {
	for _, path := range r.order {
		if err := r.cache[path].WriteFile(path); err != nil {
			r.fail(path, err)
			continue
		}
		r.report(Result{Path: path, Locale: r.localeOf(path)})
	}
}

// fail poisons a path and reports its error.
func (r *run) fail(path string, err error) {
	r.poisoned[path] = true
	r.report(Result{Path: path, Locale: r.localeOf(path), Err: err})
}

func (r *run) report(res Result) {
	if r.sink != nil {
		r.sink(res)
	}
}

// localeOf re-derives the locale tag a target path corresponds to.
func (r *run) localeOf(path string) string {
	_, locale := resname.Split(path, r.baseDir)
	return locale
}

// sortedLocales pins the locale iteration order of a translation map, so
// repeated exports of the same input touch files in the same order.
func sortedLocales(translations map[string]string) []string {
	locales := make([]string, 0, len(translations))
	for l := range translations {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}
