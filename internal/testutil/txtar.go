// Package testutil provides helpers for building on-disk fixtures in tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
)

// WriteTree materializes a txtar archive under a fresh temp directory and
// returns the directory. File names in the archive are slash-separated and
// relative to it. A name ending in "/" creates an empty directory.
func WriteTree(t *testing.T, archive string) string {
	t.Helper()
	root := t.TempDir()
	WriteTreeAt(t, root, archive)
	return root
}

// WriteTreeAt is WriteTree into an existing directory.
func WriteTreeAt(t *testing.T, root, archive string) {
	t.Helper()
	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		path := filepath.Join(root, filepath.FromSlash(f.Name))
		if f.Name[len(f.Name)-1] == '/' {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}
