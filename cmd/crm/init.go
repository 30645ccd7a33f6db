// Init command for the crm CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/snapshot"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize crm configuration and data directories",
		Long: `Init creates the configuration directory with a default config.yaml
and the data directory with empty snapshot files. Existing files are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The config directory and file are created by PersistentPreRunE.
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return err
			}
			if err := snapshot.Init(dataDir); err != nil {
				return system(fmt.Errorf("init data dir: %w", err))
			}
			a.logger.Info("initialized", "config", a.configDir, "data", dataDir)

			fmt.Fprintln(a.out, "crm initialized successfully")
			fmt.Fprintln(a.out, "  config:", a.configDir)
			fmt.Fprintln(a.out, "  data:  ", dataDir)
			return nil
		},
	}
}
