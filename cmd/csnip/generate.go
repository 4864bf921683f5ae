package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xonecas/csnip/internal/highlight"
	"github.com/xonecas/csnip/internal/lsp"
	"github.com/xonecas/csnip/internal/project"
	"github.com/xonecas/csnip/internal/scaffold"
	"github.com/xonecas/csnip/internal/snippet"
	"github.com/xonecas/csnip/internal/treesitter"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		category string
		verify   bool
	)
	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Print the declaration for a C# file",
		Example: `  csnip generate src/Api/Models/OrderItem.cs
  csnip generate --category interface --verify src/Api/IRepository.cs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(category)
			if err != nil {
				return err
			}
			text, res, err := a.declaration(cmd, args[0], cat)
			if err != nil {
				return err
			}
			plain := scaffold.PlainText(text)

			if verify {
				err := treesitter.Verify(cmd.Context(), []byte(plain), res.Context.Namespace, res.Context.TypeName, string(cat))
				if err != nil {
					return fmt.Errorf("verify: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if a.colorEnabled(out) {
				plain = highlight.Highlight(plain, a.cfg.UI.SyntaxThemeOrDefault())
			}
			_, err = fmt.Fprint(out, plain)
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(snippet.Class), "declaration kind: class, interface, enum, struct")
	cmd.Flags().BoolVar(&verify, "verify", false, "parse the output with the C# grammar and check the declaration")
	return cmd
}

func parseCategory(s string) (snippet.Category, error) {
	cat, ok := snippet.ParseCategory(s)
	if !ok {
		return "", fmt.Errorf("unknown category %q: want class, interface, enum or struct", s)
	}
	return cat, nil
}

// declaration renders cat for the file named by arg, turning resolution
// failures into messages for the terminal.
func (a *app) declaration(cmd *cobra.Command, arg string, cat snippet.Category) (string, *scaffold.Result, error) {
	path, err := filepath.Abs(arg)
	if err != nil {
		return "", nil, err
	}
	r, err := a.resolver()
	if err != nil {
		return "", nil, err
	}
	text, res, err := scaffold.New(r).Declaration(cmd.Context(), path, cat, a.options())
	if err != nil {
		return "", nil, describe(path, err)
	}
	return text, res, nil
}

func describe(path string, err error) error {
	switch {
	case errors.Is(err, scaffold.ErrNotCSharp):
		return fmt.Errorf("%s is not a C# source file", path)
	case errors.Is(err, project.ErrNotFound):
		return fmt.Errorf("%s: %s", path, lsp.NoDescriptorMessage)
	default:
		return err
	}
}
