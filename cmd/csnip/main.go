// Command csnip scaffolds C# type declarations. It runs as a language
// server for editors or generates declarations from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/csnip/internal/config"
	"github.com/xonecas/csnip/internal/project"
	"github.com/xonecas/csnip/internal/scaffold"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// exitCodeError ends the process with code without printing anything.
type exitCodeError struct {
	code int
	err  error
}

func (e exitCodeError) Error() string { return e.err.Error() }
func (e exitCodeError) Unwrap() error { return e.err }

// app is the state shared by all subcommands.
type app struct {
	configPath       string
	logLevel         string
	workspaces       []string
	preferFileScoped bool
	color            string

	cfg     *config.Config
	logFile io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "csnip",
		Short: "C# declaration snippets with the right namespace",
		Long: `csnip derives the namespace and type name for a C# source file from its
.csproj and folder layout and renders class, interface, enum and struct
declarations. Run "csnip serve" from an editor to get them as completions.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.config/csnip/config.toml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringArrayVar(&a.workspaces, "workspace", nil, "workspace root searched first for the project file (repeatable)")
	pf.BoolVar(&a.preferFileScoped, "prefer-file-scoped", false, "prefer `namespace X;` when the project supports it")
	pf.StringVar(&a.color, "color", "auto", "colorize output: auto, always, never")

	root.AddCommand(
		newServeCmd(a),
		newGenerateCmd(a),
		newResolveCmd(a),
		newApplyCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration with flag overrides and configures logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, func(c *config.Config) {
		if cmd.Flags().Changed("log-level") {
			c.Log.Level = a.logLevel
		}
		if cmd.Flags().Changed("prefer-file-scoped") {
			c.Snippets.PreferFileScopedNamespace = a.preferFileScoped
		}
	})
	if err != nil {
		return err
	}
	switch a.color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", a.color)
	}
	a.cfg = cfg

	// Logs never go to stdout: it carries the protocol under serve.
	var w io.Writer = zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}
	if cfg.Log.File != "" {
		//nolint:gosec // G304: log path comes from the user's config
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		w = f
	}
	log.Logger = zerolog.New(w).Level(cfg.Log.LevelOrDefault()).With().Timestamp().Logger()
	return nil
}

func (a *app) teardown() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// resolver builds a project resolver from config and --workspace flags.
func (a *app) resolver() (project.Resolver, error) {
	roots := make([]string, 0, len(a.workspaces))
	for _, w := range a.workspaces {
		abs, err := filepath.Abs(w)
		if err != nil {
			return project.Resolver{}, fmt.Errorf("workspace %s: %w", w, err)
		}
		roots = append(roots, abs)
	}
	return project.Resolver{
		Finder: project.Finder{
			Roots: roots,
			Ext:   a.cfg.Project.DescriptorExtOrDefault(),
		},
		InheritBuildProps: a.cfg.Project.InheritBuildProps,
	}, nil
}

func (a *app) options() scaffold.Options {
	return scaffold.Options{PreferFileScoped: a.cfg.Snippets.PreferFileScopedNamespace}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var ec exitCodeError
	if errors.As(err, &ec) {
		os.Exit(ec.code)
	}
	fmt.Fprintf(os.Stderr, "csnip: %v\n", err)
	os.Exit(1)
}
