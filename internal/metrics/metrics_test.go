package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crm/internal/memory"
	"github.com/mesh-intelligence/crm/pkg/types"
)

func setupStore(t *testing.T) (*memory.Store, *Recorder) {
	t.Helper()
	rec := NewRecorder()
	s, err := memory.New(memory.WithObserver(rec))
	require.NoError(t, err)
	return s, rec
}

func TestRecorder_CountsMutations(t *testing.T) {
	s, rec := setupStore(t)

	lead, err := memory.Create(s, &types.Lead{Name: "Ada"})
	require.NoError(t, err)
	_, err = memory.Create(s, &types.Lead{Name: "Bob"})
	require.NoError(t, err)
	s.Delete(types.EntityLead, lead.ID)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.ops.WithLabelValues("create", "lead")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.ops.WithLabelValues("delete", "lead")))
}

func TestRecorder_Reset(t *testing.T) {
	s, rec := setupStore(t)
	_, err := memory.Create(s, &types.Lead{Name: "Ada"})
	require.NoError(t, err)
	require.Equal(t, 1, testutil.CollectAndCount(rec.Collector()))

	rec.Reset()
	assert.Equal(t, 0, testutil.CollectAndCount(rec.Collector()))
}

func TestStoreCollector(t *testing.T) {
	s, _ := setupStore(t)
	lead, err := memory.Create(s, &types.Lead{Name: "Ada"})
	require.NoError(t, err)
	task, err := memory.Create(s, &types.Task{Title: "Call", DueDate: time.Now(), Assignee: "sam", LeadID: lead.ID})
	require.NoError(t, err)
	_, err = s.AddRelationship(types.EntityLead, lead.ID, types.RelTasks, types.EntityTask, task.ID)
	require.NoError(t, err)

	c := NewCollector(s)
	want := `
# HELP crm_store_entities Number of records per entity type.
# TYPE crm_store_entities gauge
crm_store_entities{entity="appointment"} 0
crm_store_entities{entity="lead"} 1
crm_store_entities{entity="note"} 0
crm_store_entities{entity="task"} 1
crm_store_entities{entity="vehicle"} 0
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(want), "crm_store_entities"))

	// Five entity gauges plus one per relation in the schema.
	assert.Equal(t, len(types.EntityTypes)+len(types.StandardRelations), testutil.CollectAndCount(c))
}

func TestWriteText(t *testing.T) {
	s, rec := setupStore(t)
	_, err := memory.Create(s, &types.Lead{Name: "Ada"})
	require.NoError(t, err)

	reg, err := NewRegistry(s, rec)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	out := buf.String()
	assert.Contains(t, out, `crm_store_entities{entity="lead"} 1`)
	assert.Contains(t, out, `crm_store_operations_total{entity="lead",op="create"} 1`)
	assert.Contains(t, out, `crm_store_edges{owner="task",relation="lead"} 0`)
}
