// Root command for the crm CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/paths"
	"github.com/mesh-intelligence/crm/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Output formats for --output.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// app carries the global flag values and what PersistentPreRunE derives
// from them.
type app struct {
	flagConfigDir string
	flagDataDir   string
	flagOutput    string

	out       io.Writer
	configDir string
	cfg       types.Config
	logger    *slog.Logger
	now       func() time.Time
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: stdout, logger: slog.New(slog.DiscardHandler), now: time.Now}

	root := &cobra.Command{
		Use:           "crm",
		Short:         "crm is a local in-memory CRM for leads and their tasks, notes, appointments, and vehicles",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.flagOutput {
			case outputJSON, outputYAML:
			default:
				return usageErrorf("unknown output format %q (valid: json, yaml)", a.flagOutput)
			}

			configDir, err := paths.ResolveConfigDir(a.flagConfigDir)
			if err != nil {
				return system(fmt.Errorf("resolve config dir: %w", err))
			}
			cfg, err := loadConfig(configDir)
			if err != nil {
				return err
			}
			a.configDir = configDir
			a.cfg = cfg
			a.logger = setupLogger(stderr, cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return types.Invalid("crm", err)
	})

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.crm-db)")
	root.PersistentFlags().StringVarP(&a.flagOutput, "output", "o", outputJSON, "output format: json or yaml")

	root.AddCommand(
		newVersionCmd(a),
		newInitCmd(a),
		newCreateCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newRelateCmd(a),
		newRelatedCmd(a),
		newResetCmd(a),
		newExportCmd(a),
		newStatsCmd(a),
	)
	return root
}

// run executes the CLI and maps the outcome to an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "crm:", err)
	return exitCode(err)
}

// systemError marks a failure of the environment (files, database) rather
// than of the caller's input.
type systemError struct{ err error }

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func system(err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: err}
}

func usageErrorf(format string, args ...any) error {
	return types.Invalid("crm", fmt.Errorf(format, args...))
}

// exitCode returns 2 for system errors and 1 for everything else, including
// the argument errors cobra reports on its own.
func exitCode(err error) int {
	var se *systemError
	if errors.As(err, &se) && !types.IsUserError(se.err) {
		return exitSysError
	}
	return exitUserError
}

// resolveDataDir applies --data-dir > config data_dir > CRM_DATA_DIR >
// $(CWD)/.crm-db.
func (a *app) resolveDataDir() (string, error) {
	dir, err := paths.ResolveDataDir(a.flagDataDir, a.cfg.DataDir)
	if err != nil {
		return "", system(fmt.Errorf("resolve data dir: %w", err))
	}
	return dir, nil
}
