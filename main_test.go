package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		width   int
		want    string
	}{
		{
			name:    "clamps below zero",
			percent: -10,
			width:   4,
			want:    colorRed + "░░░░" + colorReset + "   0%",
		},
		{
			name:    "mid range uses yellow",
			percent: 50,
			width:   4,
			want:    colorYellow + "██░░" + colorReset + "  50%",
		},
		{
			name:    "clamps above hundred",
			percent: 120,
			width:   4,
			want:    colorGreen + "████" + colorReset + " 100%",
		},
	}

	for _, tc := range tests {
		if got := progressBar(tc.percent, tc.width); got != tc.want {
			t.Fatalf("%s: progressBar() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLocaleColumnWidth(t *testing.T) {
	locales := []string{"de", "pt-BR", "zh-Hant"}
	if got := localeColumnWidth(locales); got != len("zh-Hant") {
		t.Fatalf("localeColumnWidth() = %d, want %d", got, len("zh-Hant"))
	}
	if got := localeColumnWidth(nil); got != 0 {
		t.Fatalf("localeColumnWidth(nil) = %d, want 0", got)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(filePath, []byte("ok"), 0644); err != nil {
		t.Fatalf("os.WriteFile() error: %v", err)
	}

	if !fileExists(filePath) {
		t.Fatalf("fileExists(file) = false, want true")
	}
	if fileExists(dir) {
		t.Fatalf("fileExists(directory) = true, want false")
	}
	if fileExists(filepath.Join(dir, "missing.txt")) {
		t.Fatalf("fileExists(missing) = true, want false")
	}
}

func TestBuildProvider_DefaultsToRoot(t *testing.T) {
	oldRoot := rootDir
	t.Cleanup(func() { rootDir = oldRoot })
	rootDir = t.TempDir()

	prov, err := buildProvider()
	if err != nil {
		t.Fatalf("buildProvider() error: %v", err)
	}
	root, err := prov.Root()
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}
	if root != filepath.Clean(rootDir) {
		t.Fatalf("root = %q, want %q", root, rootDir)
	}
}

func TestBuildProvider_ReadsConfig(t *testing.T) {
	oldRoot := rootDir
	t.Cleanup(func() { rootDir = oldRoot })
	rootDir = t.TempDir()

	cfg := "base_dir: Resources\n"
	if err := os.WriteFile(filepath.Join(rootDir, ".xmlres.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	prov, err := buildProvider()
	if err != nil {
		t.Fatalf("buildProvider() error: %v", err)
	}
	root, err := prov.Root()
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}
	want := filepath.Join(rootDir, "Resources")
	if root != want {
		t.Fatalf("root = %q, want %q", root, want)
	}
}
