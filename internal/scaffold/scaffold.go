// Package scaffold runs one scaffolding request: check the file is C#,
// resolve its project context and render the declaration snippets.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	powernap "github.com/charmbracelet/x/powernap/pkg/lsp"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/csnip/internal/project"
	"github.com/xonecas/csnip/internal/snippet"
)

// LanguageID is the LSP language identifier csnip serves.
const LanguageID = "csharp"

// ErrNotCSharp is returned for files csnip does not scaffold.
var ErrNotCSharp = errors.New("scaffold: not a C# source file")

func init() {
	// powernap logs through the default slog logger; csnip logs with zerolog.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// IsCSharp reports whether path is a C# source file. Scripts (.csx) are not.
func IsCSharp(path string) bool {
	return filepath.Ext(path) == ".cs" && string(powernap.DetectLanguage(path)) == LanguageID
}

// Options are the per-request user settings.
type Options struct {
	// PreferFileScoped asks for `namespace X;` when the project supports it.
	PreferFileScoped bool
}

// Result is the outcome of a successful request.
type Result struct {
	Context    *project.Context
	FileScoped bool // style actually used
	Records    []snippet.Record
}

// Provider produces snippets for source files.
type Provider struct {
	Resolver project.Resolver
}

// New returns a Provider using r.
func New(r project.Resolver) *Provider {
	return &Provider{Resolver: r}
}

// Provide resolves path and returns the four declaration records.
// Errors are ErrNotCSharp, project.ErrNotFound, or a wrapped I/O error.
func (p *Provider) Provide(ctx context.Context, path string, opts Options) (*Result, error) {
	if !IsCSharp(path) {
		return nil, ErrNotCSharp
	}

	pc, err := p.Resolver.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}

	fileScoped := pc.FileScopedSupported && opts.PreferFileScoped
	log.Debug().
		Str("file", path).
		Bool("supported", pc.FileScopedSupported).
		Bool("preferred", opts.PreferFileScoped).
		Msg("scaffold: style decided")

	return &Result{
		Context:    pc,
		FileScoped: fileScoped,
		Records:    snippet.Records(pc.Namespace, pc.TypeName, fileScoped),
	}, nil
}

// Declaration resolves path and renders a single category.
func (p *Provider) Declaration(ctx context.Context, path string, cat snippet.Category, opts Options) (string, *Result, error) {
	res, err := p.Provide(ctx, path, opts)
	if err != nil {
		return "", nil, err
	}
	for _, r := range res.Records {
		if r.Label == string(cat) {
			return r.Text, res, nil
		}
	}
	return "", nil, fmt.Errorf("scaffold: unknown category %q", cat)
}
