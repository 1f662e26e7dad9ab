package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/plus3/pentis/internal/config"
	"github.com/plus3/pentis/internal/logger"
	"github.com/spf13/cobra"
)

// app holds the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "pentis",
		Short: "Pentis - falling block shapes built from five squares",
		Long: `Pentis grows the library of distinct pieces of a given size, spawns them
onto a grid, and can play headless games against a random autopilot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a pentis.yml file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newLibraryCmd(a))
	root.AddCommand(newSimulateCmd(a))
	return root
}

func setVersionInfo(root *cobra.Command, v, c, d string) {
	root.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return printError(cmd, "Could not load configuration", err)
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return printError(cmd, "Invalid log level", err)
	}
	lc := logger.DefaultConfig()
	lc.Level = level
	lc.Format = cfg.Log.Format
	lc.Output = cmd.ErrOrStderr()
	logger.Init(lc)

	if a.noColor {
		color.NoColor = true
	}
	a.cfg = cfg
	return nil
}

var errorColor = color.New(color.FgRed, color.Bold)

// printError writes a colored title and the cause to stderr and returns an
// error for cobra, which stays silent.
func printError(cmd *cobra.Command, title string, err error) error {
	w := cmd.ErrOrStderr()
	errorColor.Fprintf(w, "%s\n\n", title)
	fmt.Fprintf(w, "%v\n", err)
	return fmt.Errorf("%s: %w", title, err)
}
