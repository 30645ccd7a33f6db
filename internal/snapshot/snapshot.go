// Package snapshot saves the store to a directory of JSONL files and loads
// it back, and exports it to a SQLite database for offline analysis.
//
// Loading always goes through Store.Clear followed by re-creating every
// record, which is the only way to reset a store to a known state.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/crm/internal/memory"
	"github.com/mesh-intelligence/crm/pkg/types"
)

// entityFiles maps entity types to their JSONL files, referenced types
// first.
var entityFiles = []struct {
	file   string
	entity types.EntityType
}{
	{"leads.jsonl", types.EntityLead},
	{"tasks.jsonl", types.EntityTask},
	{"notes.jsonl", types.EntityNote},
	{"appointments.jsonl", types.EntityAppointment},
	{"vehicles.jsonl", types.EntityVehicle},
}

// edgesFile holds the many-relation edges. One relations are rebuilt from
// the foreign reference fields of the records themselves.
const edgesFile = "relationships.jsonl"

// Files returns the names of every file a snapshot directory holds.
func Files() []string {
	out := make([]string, 0, len(entityFiles)+1)
	for _, m := range entityFiles {
		out = append(out, m.file)
	}
	return append(out, edgesFile)
}

// Init creates dir and an empty file for every table that does not have one.
// Existing files are left alone.
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	for _, name := range Files() {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}
	return nil
}

// Save writes every record and edge in s to dir, one file per table.
func Save(s *memory.Store, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	for _, m := range entityFiles {
		records, err := marshalAll(s.List(m.entity))
		if err != nil {
			return fmt.Errorf("encoding %s: %w", m.entity, err)
		}
		if err := writeJSONL(filepath.Join(dir, m.file), records); err != nil {
			return fmt.Errorf("writing %s: %w", m.file, err)
		}
	}
	records, err := marshalAll(s.Edges())
	if err != nil {
		return fmt.Errorf("encoding edges: %w", err)
	}
	if err := writeJSONL(filepath.Join(dir, edgesFile), records); err != nil {
		return fmt.Errorf("writing %s: %w", edgesFile, err)
	}
	return nil
}

// LoadReport counts what Load restored and what it had to drop.
type LoadReport struct {
	Entities  map[types.EntityType]int `json:"entities"`
	Edges     int                      `json:"edges"`
	Malformed int                      `json:"malformed"` // Lines that were not valid JSON.
	Invalid   int                      `json:"invalid"`   // Records that failed to decode or validate.
	Dangling  int                      `json:"dangling"`  // Edges naming a missing record.
}

// Load replaces the contents of s with the snapshot in dir. Every file is
// read before s is cleared, so a read error leaves s as it was. Records keep
// their ids and timestamps. Missing files are empty tables.
func Load(s *memory.Store, dir string) (LoadReport, error) {
	report := LoadReport{Entities: make(map[types.EntityType]int)}

	raw := make([][]json.RawMessage, len(entityFiles))
	for i, m := range entityFiles {
		records, malformed, err := readJSONL(filepath.Join(dir, m.file))
		if err != nil {
			return report, err
		}
		raw[i] = records
		report.Malformed += malformed
	}
	rawEdges, malformed, err := readJSONL(filepath.Join(dir, edgesFile))
	if err != nil {
		return report, err
	}
	report.Malformed += malformed

	s.Clear()

	for i, m := range entityFiles {
		for _, rec := range raw[i] {
			e, err := types.NewEntity(m.entity)
			if err != nil {
				return report, err
			}
			if err := json.Unmarshal(rec, e); err != nil {
				report.Invalid++
				continue
			}
			if _, err := s.Create(e); err != nil {
				if types.IsUserError(err) {
					report.Invalid++
					continue
				}
				return report, err
			}
			report.Entities[m.entity]++
		}
	}

	schema := s.Schema()
	for _, rec := range rawEdges {
		var edge types.Edge
		if err := json.Unmarshal(rec, &edge); err != nil {
			report.Invalid++
			continue
		}
		r, err := schema.Lookup(edge.Owner, edge.Relation)
		if err != nil || r.Cardinality != types.Many {
			report.Invalid++
			continue
		}
		ok, err := s.AddEdge(edge, r.Target)
		if err != nil {
			return report, err
		}
		if !ok {
			report.Dangling++
			continue
		}
		report.Edges++
	}
	return report, nil
}
