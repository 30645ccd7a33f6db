// Shared helpers for crm CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/crm/internal/memory"
	"github.com/mesh-intelligence/crm/internal/metrics"
	"github.com/mesh-intelligence/crm/internal/snapshot"
	"github.com/mesh-intelligence/crm/pkg/types"
)

// session is one CLI invocation's view of the data directory: a store
// hydrated from the snapshot files plus the counters observing it.
type session struct {
	dir      string
	store    *memory.Store
	recorder *metrics.Recorder
	report   snapshot.LoadReport
}

// openSession builds a fresh store and loads the snapshot in the data
// directory into it.
func (a *app) openSession() (*session, error) {
	dir, err := a.resolveDataDir()
	if err != nil {
		return nil, err
	}

	rec := metrics.NewRecorder()
	s, err := memory.New(
		memory.WithLogger(a.logger),
		memory.WithObserver(rec),
		memory.WithClock(func() time.Time { return a.now().UTC() }),
	)
	if err != nil {
		return nil, system(err)
	}

	report, err := snapshot.Load(s, dir)
	if err != nil {
		return nil, system(fmt.Errorf("load %s: %w", dir, err))
	}
	if skipped := report.Malformed + report.Invalid + report.Dangling; skipped > 0 {
		a.logger.Warn("snapshot records skipped",
			"dir", dir,
			"malformed", report.Malformed,
			"invalid", report.Invalid,
			"dangling", report.Dangling,
		)
	}
	a.logger.Debug("snapshot loaded", "dir", dir, "entities", report.Entities, "edges", report.Edges)
	rec.Reset()

	return &session{dir: dir, store: s, recorder: rec, report: report}, nil
}

// save writes the store back to the data directory.
func (s *session) save() error {
	if err := snapshot.Save(s.store, s.dir); err != nil {
		return system(fmt.Errorf("save %s: %w", s.dir, err))
	}
	return nil
}

func parseEntityType(name string) (types.EntityType, error) {
	t, err := types.ParseEntityType(name)
	if err != nil {
		return "", fmt.Errorf("%w (valid: lead, task, note, appointment, vehicle)", err)
	}
	return t, nil
}

// decodeStrict unmarshals data into v, rejecting unknown fields and
// trailing content.
func decodeStrict(op string, data string, v any) error {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return types.Invalid(op, fmt.Errorf("decode JSON: %w", err))
	}
	if dec.More() {
		return types.Invalid(op, fmt.Errorf("decode JSON: trailing data"))
	}
	return nil
}

// parseEntityJSON decodes data into a new entity of type t.
func parseEntityJSON(t types.EntityType, data string) (types.Entity, error) {
	e, err := types.NewEntity(t)
	if err != nil {
		return nil, err
	}
	if err := decodeStrict("crm.create", data, e); err != nil {
		return nil, err
	}
	return e, nil
}

// immutableKeys are stripped from update input, so a record fetched with
// get can be edited and sent back whole.
var immutableKeys = []string{"id", "created_at", "updated_at"}

// parsePatchJSON decodes data into a patch for type t. Keys that are absent
// or null leave the stored field alone; identity and timestamp keys are
// dropped. Any other unknown key is an error.
func parsePatchJSON(t types.EntityType, data string) (types.Patch, error) {
	const op = "crm.update"
	p, err := types.NewPatch(t)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, types.Invalid(op, fmt.Errorf("decode JSON: %w", err))
	}
	for _, k := range immutableKeys {
		delete(fields, k)
	}
	stripped, err := json.Marshal(fields)
	if err != nil {
		return nil, types.Invalid(op, fmt.Errorf("decode JSON: %w", err))
	}

	if err := decodeStrict(op, string(stripped), p); err != nil {
		return nil, err
	}
	return p, nil
}

func notFound(op string, t types.EntityType, id string) error {
	return &types.Error{Kind: types.KindNotFound, Op: op, Entity: t, Err: fmt.Errorf("%w: %s", types.ErrNotFound, id)}
}

// render writes v to the command output in the selected format. YAML goes
// through the JSON form so both formats share field names.
func (a *app) render(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return system(fmt.Errorf("marshal output: %w", err))
	}
	if a.flagOutput == outputYAML {
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return system(fmt.Errorf("marshal output: %w", err))
		}
		if data, err = yaml.Marshal(generic); err != nil {
			return system(fmt.Errorf("marshal output: %w", err))
		}
		_, err = a.out.Write(data)
		return system(err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return system(err)
}
