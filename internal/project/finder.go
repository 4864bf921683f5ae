// Package project locates the .csproj descriptor that owns a C# source file
// and reads the few values csnip needs from it.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultDescriptorExt is the file extension of C# project descriptors.
const DefaultDescriptorExt = ".csproj"

// ErrNotFound is returned when no descriptor exists in the workspace root
// or in any folder above the source file.
var ErrNotFound = errors.New("project: no descriptor found")

// Finder locates project descriptors.
type Finder struct {
	// Roots are the workspace folders known to the editor.
	Roots []string
	// Ext is the descriptor file extension, DefaultDescriptorExt if empty.
	Ext string
}

// Find returns the path of the descriptor for sourcePath.
//
// The workspace root containing the file is searched first. Without a root,
// or without a match in it, folders are searched from the file's own folder
// upward. The file-system root itself is never searched.
func (f *Finder) Find(ctx context.Context, sourcePath string) (string, error) {
	if root := f.RootFor(sourcePath); root != "" {
		p, err := f.searchDir(root)
		if err != nil {
			return "", err
		}
		if p != "" {
			log.Debug().Str("root", root).Str("descriptor", p).Msg("project: descriptor in workspace root")
			return p, nil
		}
	}

	dir := filepath.Dir(sourcePath)
	for filepath.Dir(dir) != dir {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p, err := f.searchDir(dir)
		if err != nil {
			return "", err
		}
		if p != "" {
			log.Debug().Str("descriptor", p).Msg("project: descriptor found walking up")
			return p, nil
		}
		dir = filepath.Dir(dir)
	}
	return "", ErrNotFound
}

// RootFor returns the innermost workspace root containing path, or "".
func (f *Finder) RootFor(path string) string {
	var best string
	for _, root := range f.Roots {
		if root == "" || !within(root, path) {
			continue
		}
		if len(root) > len(best) {
			best = root
		}
	}
	return best
}

// searchDir lists dir and returns the first descriptor in it, or "".
func (f *Finder) searchDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("project: list %s: %w", dir, err)
	}

	var first string
	matches := 0
	for _, e := range entries {
		if e.IsDir() || !f.isDescriptor(e.Name()) {
			continue
		}
		if first == "" {
			first = filepath.Join(dir, e.Name())
		}
		matches++
	}
	if matches > 1 {
		log.Debug().Str("dir", dir).Int("candidates", matches).Str("picked", first).Msg("project: several descriptors")
	}
	return first, nil
}

// isDescriptor reports whether name has at least one character before the
// descriptor extension.
func (f *Finder) isDescriptor(name string) bool {
	ext := f.Ext
	if ext == "" {
		ext = DefaultDescriptorExt
	}
	return len(name) > len(ext) && strings.HasSuffix(name, ext)
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
