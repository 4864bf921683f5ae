package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xonecas/csnip/internal/scaffold"
	"github.com/xonecas/csnip/internal/snippet"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		category string
		dryRun   bool
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Write the declaration into a C# file",
		Long: `Write the declaration into FILE, creating it if needed. Files that already
have content are left alone unless --force is given. With --dry-run the
change is printed as a unified diff and nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(category)
			if err != nil {
				return err
			}
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			text, res, err := a.declaration(cmd, path, cat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			t := a.theme(out)
			change, err := scaffold.Apply(path, text, force, dryRun)
			if errors.Is(err, scaffold.ErrFileNotEmpty) {
				return fmt.Errorf("%s already has content (use --force to overwrite)", path)
			}
			if err != nil {
				return err
			}

			if dryRun {
				_, err = fmt.Fprint(out, t.diff(change.Diff()))
				return err
			}
			style := "block"
			if res.FileScoped {
				style = "file-scoped"
			}
			_, err = fmt.Fprintf(out, "%s %s %s\n",
				t.paint(t.accent, "wrote"),
				t.paint(t.value, path),
				t.paint(t.label, fmt.Sprintf("(%s %s, %s namespace)", cat, res.Context.TypeName, style)),
			)
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(snippet.Class), "declaration kind: class, interface, enum, struct")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print a diff instead of writing")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite a file that already has content")
	return cmd
}
