package query

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crm/internal/memory"
	"github.com/mesh-intelligence/crm/pkg/types"
)

var now = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

// setupEngine returns a fresh store and an engine over it whose clock is
// fixed at now.
func setupEngine(t *testing.T) (*memory.Store, *Engine) {
	t.Helper()
	tick := now
	s, err := memory.New(memory.WithClock(func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}))
	require.NoError(t, err)
	return s, NewEngine(s, WithNow(func() time.Time { return now }))
}

func createLead(t *testing.T, s *memory.Store, name string) *types.Lead {
	t.Helper()
	l, err := memory.Create(s, &types.Lead{Name: name})
	require.NoError(t, err)
	return l
}

func TestEngine_UpcomingAppointmentScenario(t *testing.T) {
	s, e := setupEngine(t)
	lead := createLead(t, s, "Ada")
	other := createLead(t, s, "Bob")

	_, err := memory.Create(s, &types.Appointment{
		Title:     "Test drive",
		StartTime: now.Add(24 * time.Hour),
		EndTime:   now.Add(25 * time.Hour),
		Status:    types.AppointmentStatusScheduled,
		LeadID:    lead.ID,
	})
	require.NoError(t, err)

	got, err := e.Leads(Request[LeadFilter]{Filter: &LeadFilter{HasUpcomingAppointments: ptr(true)}, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{lead.ID}, ids(got.Items))

	got, err = e.Leads(Request[LeadFilter]{Filter: &LeadFilter{HasUpcomingAppointments: ptr(false)}, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{other.ID}, ids(got.Items))
}

func TestEngine_VehicleMakeScenario(t *testing.T) {
	s, e := setupEngine(t)
	lead := createLead(t, s, "Ada")

	v1, err := memory.Create(s, &types.Vehicle{Make: "Toyota", Year: "2020", LeadID: lead.ID})
	require.NoError(t, err)
	_, err = memory.Create(s, &types.Vehicle{Make: "Honda", Year: "2021", LeadID: lead.ID})
	require.NoError(t, err)

	got, err := e.Vehicles(Request[VehicleFilter]{Filter: &VehicleFilter{Make: &StringFilter{Eq: ptr("Toyota")}}, Size: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, v1, got.Items[0])
}

func TestEngine_FifteenTasksSecondPage(t *testing.T) {
	s, e := setupEngine(t)
	lead := createLead(t, s, "Ada")
	var created []string
	for i := 1; i <= 15; i++ {
		task, err := memory.Create(s, &types.Task{
			Title: fmt.Sprintf("task %02d", i), DueDate: now, Assignee: "sam", LeadID: lead.ID,
		})
		require.NoError(t, err)
		created = append(created, task.ID)
	}

	got, err := e.Tasks(Request[TaskFilter]{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, created[10:], ids(got.Items))
	assert.False(t, got.PageInfo.HasNext)
	assert.True(t, got.PageInfo.HasPrevious)
	assert.Equal(t, 15, got.PageInfo.Total)
}

func TestEngine_SortThenPaginate(t *testing.T) {
	s, e := setupEngine(t)
	lead := createLead(t, s, "Ada")
	for i, title := range []string{"b", "d", "a", "c"} {
		_, err := memory.Create(s, &types.Appointment{
			Title:     title,
			StartTime: now.Add(time.Duration(i) * time.Hour),
			EndTime:   now.Add(time.Duration(i+1) * time.Hour),
			LeadID:    lead.ID,
		})
		require.NoError(t, err)
	}

	byTitle, err := e.Appointments(Request[AppointmentFilter]{Sort: &Sort{Field: SortTitle, Order: Asc}, Page: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, byTitle.Items, 2)
	assert.Equal(t, "a", byTitle.Items[0].Title)
	assert.Equal(t, "b", byTitle.Items[1].Title)
	assert.True(t, byTitle.PageInfo.HasNext)

	byDefault, err := e.Appointments(Request[AppointmentFilter]{Size: 4})
	require.NoError(t, err)
	require.Len(t, byDefault.Items, 4)
	assert.Equal(t, "c", byDefault.Items[0].Title, "latest start first")
}

func TestEngine_RejectsMalformedRequests(t *testing.T) {
	_, e := setupEngine(t)

	_, err := e.Appointments(Request[AppointmentFilter]{
		Filter: &AppointmentFilter{StartTime: &TimeFilter{Between: []time.Time{now}}},
		Size:   10,
	})
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	_, err = e.Notes(Request[NoteFilter]{Size: 0})
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	_, err = e.Leads(Request[LeadFilter]{Page: -1, Size: 5})
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestEngine_ByLeadLookups(t *testing.T) {
	s, e := setupEngine(t)
	a := createLead(t, s, "Ada")
	b := createLead(t, s, "Bob")
	_, _, err := s.Update(types.EntityLead, b.ID, &types.LeadPatch{LeadStatus: ptr(types.LeadStatusQualified)})
	require.NoError(t, err)

	task, err := memory.Create(s, &types.Task{Title: "Call", DueDate: now, Assignee: "sam", LeadID: a.ID})
	require.NoError(t, err)
	_, err = memory.Create(s, &types.Note{Title: "on lead", LeadID: a.ID})
	require.NoError(t, err)
	_, err = memory.Create(s, &types.Note{Title: "on task", TaskID: task.ID})
	require.NoError(t, err)
	_, err = memory.Create(s, &types.Appointment{Title: "Demo", StartTime: now, EndTime: now, LeadID: b.ID})
	require.NoError(t, err)
	_, err = memory.Create(s, &types.Vehicle{Make: "Kia", Year: "2024", LeadID: b.ID})
	require.NoError(t, err)

	assert.Len(t, e.TasksByLead(a.ID), 1)
	assert.Empty(t, e.TasksByLead(b.ID))
	assert.Len(t, e.NotesByLead(a.ID), 1)
	assert.Len(t, e.NotesByTask(task.ID), 1)
	assert.Len(t, e.AppointmentsByLead(b.ID), 1)
	assert.Len(t, e.VehiclesByLead(b.ID), 1)
	assert.Equal(t, []string{a.ID}, ids(e.LeadsByStatus(types.LeadStatusNew)))
	assert.Equal(t, []string{b.ID}, ids(e.LeadsByStatus(types.LeadStatusQualified)))
}

// countingReader records how the engine reads the store.
type countingReader struct {
	*memory.Store
	lists, snapshots int
}

func (r *countingReader) List(t types.EntityType) []types.Entity {
	r.lists++
	return r.Store.List(t)
}

func (r *countingReader) ListMany(ts ...types.EntityType) map[types.EntityType][]types.Entity {
	r.snapshots++
	return r.Store.ListMany(ts...)
}

// listOnly hides ListMany so the engine must fall back to List.
type listOnly struct{ r Reader }

func (l listOnly) List(t types.EntityType) []types.Entity { return l.r.List(t) }

func TestEngine_LeadJoinReadsOneSnapshot(t *testing.T) {
	s, _ := setupEngine(t)
	lead := createLead(t, s, "Ada")
	createLead(t, s, "Bob")
	_, err := memory.Create(s, &types.Vehicle{Make: "Toyota", Year: "2021", LeadID: lead.ID})
	require.NoError(t, err)

	req := Request[LeadFilter]{Filter: &LeadFilter{VehicleMake: ptr("toyota")}, Size: 10}

	r := &countingReader{Store: s}
	got, err := NewEngine(r, WithNow(func() time.Time { return now })).Leads(req)
	require.NoError(t, err)
	assert.Equal(t, []string{lead.ID}, ids(got.Items))
	assert.Equal(t, 1, r.snapshots)
	assert.Zero(t, r.lists, "join tables come from the single snapshot")

	fallback, err := NewEngine(listOnly{r: s}, WithNow(func() time.Time { return now })).Leads(req)
	require.NoError(t, err)
	assert.Equal(t, ids(got.Items), ids(fallback.Items))
}
