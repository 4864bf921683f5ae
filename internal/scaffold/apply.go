package scaffold

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/xonecas/csnip/internal/snippet"
)

// ErrFileNotEmpty is returned by Apply when the target already has content
// and overwriting was not requested.
var ErrFileNotEmpty = errors.New("scaffold: file is not empty")

// Change describes a write Apply performed or would perform.
type Change struct {
	Path   string
	Before string
	After  string
}

// Diff renders the change as a unified diff. Empty when nothing changes.
func (c Change) Diff() string {
	if c.Before == c.After {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(c.Path), c.Before, c.After)
	return fmt.Sprint(gotextdiff.ToUnified("a/"+c.Path, "b/"+c.Path, c.Before, edits))
}

// PlainText turns snippet text into file content: the cursor marker is
// removed and the result ends with a newline.
func PlainText(text string) string {
	out := snippet.StripCursor(text)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// Apply writes declaration text into path. Files that exist with
// non-whitespace content are left alone unless force is set. With dryRun
// nothing is written.
func Apply(path, text string, force, dryRun bool) (Change, error) {
	//nolint:gosec // G304: path is the user's target file
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Change{}, fmt.Errorf("scaffold: read %s: %w", path, err)
	}

	c := Change{Path: path, Before: string(data), After: PlainText(text)}
	if strings.TrimSpace(c.Before) != "" && !force {
		return c, ErrFileNotEmpty
	}
	if dryRun {
		return c, nil
	}

	if err := os.WriteFile(path, []byte(c.After), 0o644); err != nil {
		return c, fmt.Errorf("scaffold: write %s: %w", path, err)
	}
	return c, nil
}
