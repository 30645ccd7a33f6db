package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/crm/internal/memory"
	"github.com/mesh-intelligence/crm/pkg/types"
)

// exportTable describes how one entity type is flattened into a SQLite row.
type exportTable struct {
	entity  types.EntityType
	table   string
	columns []string
	row     func(types.Entity) []any
}

var exportTables = []exportTable{
	{
		entity: types.EntityLead,
		table:  "leads",
		columns: []string{"id", "name", "email", "phone", "address", "city", "state", "zip",
			"lead_source", "lead_status", "lead_owner", "lead_stage", "lead_score",
			"lead_description", "lead_notes", "lead_type", "created_at", "updated_at"},
		row: func(e types.Entity) []any {
			l := e.(*types.Lead)
			return []any{l.ID, l.Name, l.Email, l.Phone, l.Address, l.City, l.State, l.Zip,
				l.LeadSource, string(l.LeadStatus), l.LeadOwner, l.LeadStage, nullInt(l.LeadScore),
				l.LeadDescription, l.LeadNotes, l.LeadType, ts(l.CreatedAt), ts(l.UpdatedAt)}
		},
	},
	{
		entity:  types.EntityTask,
		table:   "tasks",
		columns: []string{"id", "title", "description", "due_date", "status", "priority", "assignee", "lead_id", "created_at", "updated_at"},
		row: func(e types.Entity) []any {
			t := e.(*types.Task)
			return []any{t.ID, t.Title, t.Description, ts(t.DueDate), string(t.Status), string(t.Priority),
				t.Assignee, t.LeadID, ts(t.CreatedAt), ts(t.UpdatedAt)}
		},
	},
	{
		entity:  types.EntityNote,
		table:   "notes",
		columns: []string{"id", "title", "content", "author", "lead_id", "task_id", "created_at", "updated_at"},
		row: func(e types.Entity) []any {
			n := e.(*types.Note)
			return []any{n.ID, n.Title, n.Content, n.Author, nullString(n.LeadID), nullString(n.TaskID),
				ts(n.CreatedAt), ts(n.UpdatedAt)}
		},
	},
	{
		entity: types.EntityAppointment,
		table:  "appointments",
		columns: []string{"id", "title", "description", "location", "start_time", "end_time", "status",
			"reminder_time", "lead_id", "created_at", "updated_at"},
		row: func(e types.Entity) []any {
			a := e.(*types.Appointment)
			var reminder any
			if a.ReminderTime != nil {
				reminder = ts(*a.ReminderTime)
			}
			return []any{a.ID, a.Title, a.Description, a.Location, ts(a.StartTime), ts(a.EndTime),
				string(a.Status), reminder, a.LeadID, ts(a.CreatedAt), ts(a.UpdatedAt)}
		},
	},
	{
		entity: types.EntityVehicle,
		table:  "vehicles",
		columns: []string{"id", "make", "model", "year", "color", "vin", "license_plate", "mileage",
			"condition", "notes", "lead_id", "created_at", "updated_at"},
		row: func(e types.Entity) []any {
			v := e.(*types.Vehicle)
			return []any{v.ID, v.Make, v.Model, v.Year, v.Color, v.VIN, v.LicensePlate, nullInt(v.Mileage),
				nullString(string(v.Condition)), v.Notes, v.LeadID, ts(v.CreatedAt), ts(v.UpdatedAt)}
		},
	},
}

func ts(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ExportSQLite writes the store to a fresh SQLite database at path,
// replacing any file already there. The export runs in one transaction.
func ExportSQLite(s *memory.Store, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing old export: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	for _, et := range exportTables {
		stmt, err := tx.Prepare(insertSQL(et.table, et.columns))
		if err != nil {
			return fmt.Errorf("preparing insert into %s: %w", et.table, err)
		}
		for _, e := range s.List(et.entity) {
			if _, err := stmt.Exec(et.row(e)...); err != nil {
				stmt.Close()
				return fmt.Errorf("inserting into %s: %w", et.table, err)
			}
		}
		stmt.Close()
	}

	stmt, err := tx.Prepare(insertSQL("relationships", []string{"owner", "relation", "from_id", "to_id", "created_at"}))
	if err != nil {
		return fmt.Errorf("preparing insert into relationships: %w", err)
	}
	defer stmt.Close()
	for _, e := range s.Edges() {
		if _, err := stmt.Exec(string(e.Owner), e.Relation, e.FromID, e.ToID, ts(e.CreatedAt)); err != nil {
			return fmt.Errorf("inserting into relationships: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

func insertSQL(table string, columns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)
}
