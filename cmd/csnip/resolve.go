package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xonecas/csnip/internal/scaffold"
	"github.com/xonecas/csnip/internal/snippet"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve FILE",
		Short: "Show the project context csnip derives for a C# file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := a.declaration(cmd, args[0], snippet.Class)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, err = fmt.Fprint(out, formatContext(a.theme(out), res))
			return err
		},
	}
}

func formatContext(t theme, res *scaffold.Result) string {
	pc := res.Context

	support := "not supported"
	if pc.FileScopedSupported {
		support = "supported"
	}
	if pc.VersionSource != "" {
		support += " (" + filepath.Base(pc.VersionSource) + ")"
	} else {
		support += " (no version declared)"
	}
	style := "block"
	if res.FileScoped {
		style = "file-scoped"
	}

	rows := []struct {
		label, value string
		accent       bool
	}{
		{"descriptor", pc.Descriptor, false},
		{"namespace", pc.Namespace, true},
		{"type", pc.TypeName, true},
		{"file-scoped", support, false},
		{"style", style, false},
	}

	var s string
	for _, r := range rows {
		v := t.paint(t.value, r.value)
		if r.accent {
			v = t.paint(t.accent, r.value)
		}
		s += t.paint(t.label, fmt.Sprintf("%-12s", r.label)) + v + "\n"
	}
	return s
}
