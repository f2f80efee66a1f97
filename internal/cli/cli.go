// Package cli implements the cgraph command-line interface.
//
// The commands load a cgraph.toml file (see package config) and expose the
// type lattice and the graph matcher:
//   - lattice show: print the type hierarchy
//   - lattice query: print the neighbourhood of one type
//   - lattice dot: export the Hasse diagram as DOT or SVG
//   - match: match two graph fixtures
//   - version: print build information
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cgraph/pkg/buildinfo"
	"github.com/matzehuels/cgraph/pkg/config"
	"github.com/matzehuels/cgraph/pkg/lattice"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	// levelSet records that the log level came from a flag and must not be
	// overridden by the config file.
	levelSet bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.levelSet = level != LogInfo
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cgraph",
		Short:        "cgraph explores type lattices and matches conceptual graphs",
		Long:         `cgraph loads a type hierarchy and graph fixtures from a TOML file and runs the conceptual graph matcher on them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultPath(), "configuration file")

	root.AddCommand(c.latticeCommand())
	root.AddCommand(c.matchCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file and applies its log level.
func (c *CLI) loadConfig() (*config.File, error) {
	f, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !c.levelSet {
		level, err := f.LogLevel(c.Logger.GetLevel())
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		c.Logger.SetLevel(level)
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "graphs", len(f.Graphs))
	return f, nil
}

// loadLattice reads the configuration file and builds its type lattice.
func (c *CLI) loadLattice() (*config.File, *lattice.Lattice, error) {
	f, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	l, err := f.BuildLattice(lattice.WithLogger(c.Logger))
	if err != nil {
		return nil, nil, fmt.Errorf("build lattice: %w", err)
	}
	return f, l, nil
}

// versionCommand creates the version command.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(out, buildinfo.String())
			return nil
		},
	}
}
