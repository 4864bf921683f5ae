package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/csnip/internal/lsp"
)

func newServeCmd(a *app) *cobra.Command {
	var stdio bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the language server",
		Long: `Run the language server on stdin/stdout. Editors start it for C# files
and receive declaration snippets as completions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.resolver()
			if err != nil {
				return err
			}
			srv := lsp.NewServer(lsp.Options{
				Resolver:         r,
				PreferFileScoped: a.cfg.Snippets.PreferFileScopedNamespace,
				Version:          version,
			})

			log.Info().Str("version", version).Msg("csnip: serving on stdio")
			err = srv.Serve(cmd.Context(), lsp.NewStdio())
			switch {
			case err == nil, errors.Is(err, context.Canceled):
				return nil
			case errors.Is(err, lsp.ErrExitWithoutShutdown):
				// Exit code 1 tells the client the server did not shut down cleanly.
				log.Warn().Msg("csnip: exit without shutdown")
				return exitCodeError{code: 1, err: err}
			default:
				return err
			}
		},
	}
	// stdio is the only transport; the flag is accepted because clients pass it.
	cmd.Flags().BoolVar(&stdio, "stdio", true, "communicate over stdin/stdout")
	return cmd
}
