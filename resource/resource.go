// Package resource defines the merged string-resource model shared by the
// importer and exporter: one Record per logical string, holding the
// invariant text and all locale translations that belong to it.
package resource

import "sort"

// InvariantLocale tags the invariant (default) language inside a record's
// translation map.
const InvariantLocale = ""

// Record is a single localizable string. Group plus Key identify it
// uniquely within a storage tree.
type Record struct {
	// Group is the storage group: relative path plus base file name,
	// without locale segment or extension (e.g. "sub/strings").
	Group string `yaml:"group"`
	// Key is the entry identifier, unique within the group.
	Key string `yaml:"key"`
	// Note is the optional comment carried by the record. One note per
	// record, not per locale.
	Note string `yaml:"note,omitempty"`
	// Translations maps locale tag to text. The empty tag holds the
	// invariant-language value.
	Translations map[string]string `yaml:"translations"`
}

// NewRecord returns a record with an empty translation map.
func NewRecord(group, key string) *Record {
	return &Record{
		Group:        group,
		Key:          key,
		Translations: make(map[string]string),
	}
}

// Invariant returns the invariant-language text, or "" when absent.
func (r *Record) Invariant() string {
	return r.Translations[InvariantLocale]
}

// Locales returns the record's locale tags in sorted order, with the
// invariant locale first when present.
func (r *Record) Locales() []string {
	locales := make([]string, 0, len(r.Translations))
	for l := range r.Translations {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// compositeKey identifies a record during a merge pass.
type compositeKey struct {
	group string
	key   string
}

// Collection accumulates records during an import pass, guaranteeing at
// most one record per (group, key) pair regardless of how many locale
// files contribute to it.
type Collection struct {
	records []*Record
	index   map[compositeKey]*Record
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{index: make(map[compositeKey]*Record)}
}

// Ensure returns the record for (group, key), creating it on first use.
// Records keep first-seen order.
func (c *Collection) Ensure(group, key string) *Record {
	ck := compositeKey{group, key}
	if r, ok := c.index[ck]; ok {
		return r
	}
	r := NewRecord(group, key)
	c.index[ck] = r
	c.records = append(c.records, r)
	return r
}

// Lookup returns the record for (group, key) if present.
func (c *Collection) Lookup(group, key string) (*Record, bool) {
	r, ok := c.index[compositeKey{group, key}]
	return r, ok
}

// Records returns all records in first-seen order.
func (c *Collection) Records() []*Record {
	return c.records
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// Groups returns the distinct storage groups in sorted order.
func (c *Collection) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, r := range c.records {
		if !seen[r.Group] {
			seen[r.Group] = true
			groups = append(groups, r.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// Locales returns the distinct non-invariant locale tags present in the
// collection, sorted.
func (c *Collection) Locales() []string {
	seen := make(map[string]bool)
	var locales []string
	for _, r := range c.records {
		for l := range r.Translations {
			if l == InvariantLocale || seen[l] {
				continue
			}
			seen[l] = true
			locales = append(locales, l)
		}
	}
	sort.Strings(locales)
	return locales
}

// Stats returns, for one locale, how many records carry a non-empty
// translation out of the total record count.
func (c *Collection) Stats(locale string) (translated, total int) {
	total = len(c.records)
	for _, r := range c.records {
		if r.Translations[locale] != "" {
			translated++
		}
	}
	return translated, total
}
