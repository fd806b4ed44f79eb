// Package cli wires the palconv commands.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"palconv/config"
	"palconv/palette"
	"palconv/theme"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg   *config.Config
	log   *logrus.Logger
	theme theme.Theme
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{theme: theme.Default(), log: logrus.New()}

	root := &cobra.Command{
		Use:           "palconv",
		Short:         "Decode color palettes (GPL, ASE, ACO, PAL, CLR, CSV, CSS, TXT) and export GPL",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(
		a.convertCommand(),
		a.showCommand(),
		a.serveCommand(),
		a.watchCommand(),
		a.formatsCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps failures to distinct codes so scripts can tell an
// unsupported format (2) from an unreadable or malformed file (1).
func exitCode(err error) int {
	if errors.Is(err, palette.ErrUnsupportedFormat) {
		return 2
	}
	return 1
}

func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Load(a.configPath)
	a.cfg = cfg

	a.log.SetOutput(stderr)
	if a.logLevel != "" {
		if !config.ValidLogLevel(a.logLevel) {
			return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", a.logLevel)
		}
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	lvl, perr := logrus.ParseLevel(cfg.Log.Level)
	if perr != nil {
		lvl = logrus.InfoLevel
	}
	a.log.SetLevel(lvl)
	if cfg.Log.Format == "json" {
		a.log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	switch {
	case errors.Is(err, config.ErrNotFound):
		// Running without a config file is normal.
		a.log.WithError(err).Debug("config")
	case err != nil:
		a.log.WithError(err).Warn("config ignored; using defaults")
	default:
		a.log.WithField("path", cfg.Source()).Debug("config loaded")
	}
	for _, k := range cfg.UnknownKeys() {
		a.log.WithField("key", k).Warn("unknown config key")
	}
	return nil
}

// logDiagnostics reports skipped units of a decode at warn level.
func (a *app) logDiagnostics(path string, f palette.Format, diags []palette.Diagnostic) {
	entry := a.log.WithFields(logrus.Fields{"file": path, "format": f.String()})
	for _, d := range diags {
		fields := logrus.Fields{"unit": d.Unit, "index": d.Index}
		if f.Binary() {
			fields["offset"] = d.Offset
		}
		if d.Text != "" {
			fields["text"] = d.Text
		}
		entry.WithFields(fields).Warn(d.Message)
	}
}

func parseFormatFlag(tag string) (palette.Format, error) {
	if tag == "" {
		return palette.FormatUnknown, nil
	}
	return palette.ParseFormat(tag)
}
