// xmlres — XML string-resource synchronization tool and provider library.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/redpineu/xmlres/config"
	"github.com/redpineu/xmlres/exporter"
	"github.com/redpineu/xmlres/i18n"
	"github.com/redpineu/xmlres/importer"
	"github.com/redpineu/xmlres/provider"
	"github.com/redpineu/xmlres/resource"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xmlres",
		Short: "Synchronize localized strings with per-locale XML resource files",
		Long: `xmlres — XML string-resource synchronization tool.

A storage tree holds one XML file per (storage group, locale):
strings.xml carries the invariant language, strings.de-DE.xml the German
translations, and so on. Import folds the whole tree into one merged
record set; export writes a record set back, merging into existing files.

Commands:
  status      Show storage tree info and per-locale translation statistics
  import      Print the merged record set as YAML
  export      Write records from a YAML file into the storage tree
  watch       Re-scan the storage tree whenever it changes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Working root directory")

	root.AddCommand(
		newStatusCmd(),
		newImportCmd(),
		newExportCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// buildProvider wires a provider from .xmlres.yaml when present, falling
// back to the working root itself as the base directory.
func buildProvider() (*provider.Provider, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return provider.New(cfg.BaseDir, cfg.Solution), nil
	}
	return provider.New(".", rootDir), nil
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("xmlres version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only: storage info + translation stats)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show storage tree info and per-locale translation statistics",
		Long: `Show the storage root, the storage groups it contains, and how
complete each locale's translations are. Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	prov, err := buildProvider()
	if err != nil {
		return err
	}
	root, err := prov.Root()
	if err != nil {
		return err
	}

	col, err := importer.Import(root)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n%sStorage%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	absRoot, _ := filepath.Abs(root)
	fmt.Fprintf(os.Stderr, "  Root:    %s\n", absRoot)
	fmt.Fprintf(os.Stderr, "  Groups:  %s\n", strings.Join(col.Groups(), ", "))
	fmt.Fprintf(os.Stderr, "  Records: %s\n", countRecords(col.Len()))

	locales := col.Locales()
	if len(locales) == 0 {
		fmt.Fprintln(os.Stderr)
		logInfo("No locale files found; only invariant text present.")
		return nil
	}

	fmt.Fprintf(os.Stderr, "\n%sTranslations%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	width := localeColumnWidth(locales)
	for _, locale := range locales {
		translated, total := col.Stats(locale)
		percent := 0
		if total > 0 {
			percent = translated * 100 / total
		}
		fmt.Fprintf(os.Stderr, "  %-*s %s  %d/%d\n", width, locale, progressBar(percent, 20), translated, total)
	}
	fmt.Fprintln(os.Stderr)
	return nil
}

// countRecords formats a localized record count.
func countRecords(n int) string {
	return fmt.Sprintf(i18n.N("%d record", "%d records", n), n)
}

// localeColumnWidth returns the widest locale tag, for column alignment.
func localeColumnWidth(locales []string) int {
	width := 0
	for _, l := range locales {
		if len(l) > width {
			width = len(l)
		}
	}
	return width
}

// progressBar renders a colored completion bar of the given width.
// Percent is clamped to [0, 100].
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	color := colorRed
	switch {
	case percent >= 100:
		color = colorGreen
	case percent >= 40:
		color = colorYellow
	}

	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s%s%s %3d%%", color, bar, colorReset, percent)
}

// ---------------------------------------------------------------------------
// import (storage tree → YAML record set on stdout)
// ---------------------------------------------------------------------------

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Print the merged record set as YAML",
		Long: `Read every resource file in the storage tree, merge all locale
files into one record per (group, key), and print the result as YAML on
stdout. Fails without output if any file is malformed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport()
		},
	}
}

func runImport() error {
	prov, err := buildProvider()
	if err != nil {
		return err
	}

	records, err := prov.Import("workspace")
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return err
	}
	os.Stdout.Write(data)
	logSuccess("%s imported", countRecords(len(records)))
	return nil
}

// ---------------------------------------------------------------------------
// export (YAML record set → storage tree)
// ---------------------------------------------------------------------------

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <records.yaml>",
		Short: "Write records from a YAML file into the storage tree",
		Long: `Read a YAML record set (the format printed by 'xmlres import')
and write every locale of every record into its target file. Existing
entries not mentioned by the record set are kept; failures are reported
per file and do not abort the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0])
		},
	}
}

func runExport(recordsPath string) error {
	data, err := os.ReadFile(recordsPath)
	if err != nil {
		return err
	}
	var records []*resource.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing %s: %w", recordsPath, err)
	}

	prov, err := buildProvider()
	if err != nil {
		return err
	}

	failed := 0
	prov.Export("workspace", records, func(r exporter.Result) {
		if r.Ok() {
			logSuccess("%s", r.Message())
		} else {
			logError("%s", r.Message())
			failed++
		}
	})

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// ---------------------------------------------------------------------------
// watch (re-scan on storage tree changes)
// ---------------------------------------------------------------------------

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-scan the storage tree whenever it changes",
		Long: `Watch the storage tree and re-run a full import pass after each
change, printing the updated record count. Stops on Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch()
		},
	}
}

func runWatch() error {
	prov, err := buildProvider()
	if err != nil {
		return err
	}
	root, err := prov.Root()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchRecursive(watcher, root); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	logInfo("Watching %s (Ctrl-C to stop)", root)
	rescan(root)

	// Debounce bursts of events into one re-scan.
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-sig:
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			// New subdirectories need to be watched too.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchRecursive(watcher, event.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			rescan(root)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logWarning("watcher: %v", werr)
		}
	}
}

// watchRecursive adds dir and all its subdirectories to the watcher.
func watchRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// rescan runs one import pass and prints a one-line summary.
func rescan(root string) {
	col, err := importer.Import(root)
	if err != nil {
		logError("%v", err)
		return
	}
	logInfo("%s in %d group(s)", countRecords(col.Len()), len(col.Groups()))
}

// fileExists returns true if the file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
