// Export command writes the current data to a SQLite database file.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/crm/internal/snapshot"
	"github.com/mesh-intelligence/crm/pkg/types"
)

type exportResult struct {
	Path     string                   `json:"path"`
	Entities map[types.EntityType]int `json:"entities"`
	Edges    int                      `json:"edges"`
}

func newExportCmd(a *app) *cobra.Command {
	var sqlitePath string
	cmd := &cobra.Command{
		Use:   "export --sqlite <path>",
		Short: "Export data to a SQLite database",
		Long: `Export writes every entity and relationship to a new SQLite database
with one table per entity type plus a relationships table. An existing file
at the path is replaced. crm never reads the file back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(sqlitePath)
			if err != nil {
				return system(err)
			}
			sess, err := a.openSession()
			if err != nil {
				return err
			}
			if err := snapshot.ExportSQLite(sess.store, path); err != nil {
				return system(fmt.Errorf("export %s: %w", path, err))
			}
			st := sess.store.Stats()
			return a.render(exportResult{Path: path, Entities: st.Entities, Edges: len(sess.store.Edges())})
		},
	}
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "path of the SQLite file to write")
	_ = cmd.MarkFlagRequired("sqlite")
	return cmd
}
