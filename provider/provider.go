// Package provider is the host-facing façade over the import and export
// passes. A localization-project manager configures it with a single
// option, the base directory of the storage tree, and drives it through
// Import and Export; everything else in this module is internal to those
// two operations.
package provider

import (
	"fmt"
	"path/filepath"

	"github.com/redpineu/xmlres/exporter"
	"github.com/redpineu/xmlres/i18n"
	"github.com/redpineu/xmlres/importer"
	"github.com/redpineu/xmlres/resource"
)

// StorageTypeDirectory is the storage kind this provider operates on.
const StorageTypeDirectory = "directory"

// Info describes the provider to the host application. Display strings
// are localized to the host user's language.
type Info struct {
	// Name is the short display name.
	Name string
	// Description is the long display description.
	Description string
	// StorageType is always StorageTypeDirectory.
	StorageType string
	// OptionName is the display label of the base directory option.
	OptionName string
}

// Provider adapts a directory tree of XML resource files to the host's
// import/export contract.
type Provider struct {
	// BaseDir is the storage base directory, absolute or relative to the
	// solution path. Required.
	BaseDir string
	// Solution is the host-supplied solution path that relative base
	// directories resolve against.
	Solution string
}

// New returns a provider for the given base directory and solution path.
func New(baseDir, solution string) *Provider {
	return &Provider{BaseDir: baseDir, Solution: solution}
}

// Describe returns the host-facing provider metadata.
func (p *Provider) Describe() Info {
	return Info{
		Name:        i18n.T("XML resource files"),
		Description: i18n.T("Imports and exports localized strings stored as per-locale XML files."),
		StorageType: StorageTypeDirectory,
		OptionName:  i18n.T("Base directory"),
	}
}

// Root resolves the storage root: an absolute base directory is used
// verbatim, a relative one is rooted at the solution path.
func (p *Provider) Root() (string, error) {
	if p.BaseDir == "" {
		return "", fmt.Errorf("base directory not configured")
	}
	if filepath.IsAbs(p.BaseDir) {
		return p.BaseDir, nil
	}
	return filepath.Join(p.Solution, p.BaseDir), nil
}

// Import reads the full merged record set for a project. Any malformed
// file fails the whole call; there is no partial result.
func (p *Provider) Import(project string) ([]*resource.Record, error) {
	root, err := p.Root()
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", project, err)
	}
	col, err := importer.Import(root)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", project, err)
	}
	return col.Records(), nil
}

// Export writes the given records for a project, reporting one result per
// touched file through sink. Failures never abort the batch and are not
// returned; a nil sink drops them.
func (p *Provider) Export(project string, records []*resource.Record, sink exporter.Sink) {
	root, err := p.Root()
	if err != nil {
		if sink != nil {
			sink(exporter.Result{Err: fmt.Errorf("exporting %s: %w", project, err)})
		}
		return
	}
	exporter.Export(root, records, sink)
}
