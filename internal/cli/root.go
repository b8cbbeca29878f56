// Package cli provides the command-line interface for palettemap.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/palettemap/internal/config"
	"github.com/jmylchreest/palettemap/internal/version"
)

// globalOptions holds the persistent root flags.
type globalOptions struct {
	verbose        bool
	quiet          bool
	nonInteractive bool
}

// app carries state shared by subcommands once flags are parsed.
type app struct {
	opts   globalOptions
	config *config.Config
	logger hclog.Logger
}

// NewRootCmd builds the palettemap command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "palettemap",
		Short: "Map images onto colour palettes",
		Long: `Palettemap converts an image so that every pixel uses only colours from a
palette, picking for each source colour the palette entry that is closest
under the chosen distance algorithm.

Palettes come from a JSON or RIFF .pal file, or from the built-in base16 and
base24 schemes. The result is always written as PNG.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&a.opts.nonInteractive, "non-interactive", false,
		"disable step timers and colour output (also "+config.EnvNonInteractive+")")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(newMapCmd(a))
	rootCmd.AddCommand(newAlgorithmsCmd())
	rootCmd.AddCommand(newSchemesCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads configuration from the environment and creates the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.NewBuilder().WithEnvConfig().Build()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if a.opts.nonInteractive {
		cfg.NonInteractive = true
	}
	a.config = cfg

	level := hclog.Info
	switch {
	case a.opts.verbose:
		level = hclog.Debug
	case a.opts.quiet:
		level = hclog.Error
	}

	colorOpt := hclog.AutoColor
	if cfg.NonInteractive {
		colorOpt = hclog.ColorOff
	}

	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:        "palettemap",
		Output:      cmd.ErrOrStderr(),
		Level:       level,
		Color:       colorOpt,
		DisableTime: true,
	})
	return nil
}

// interactive reports whether decorated output should be written to w.
func (a *app) interactive(w io.Writer) bool {
	if a.config != nil && a.config.NonInteractive {
		return false
	}
	return isTerminal(w)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
