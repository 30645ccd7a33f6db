package query

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crm/pkg/types"
)

func TestSortVehicles(t *testing.T) {
	tests := []struct {
		name string
		sort *Sort
		want []string
	}{
		{"nil sort keeps order", nil, []string{"v1", "v2", "v3"}},
		{"unknown field is ignored", &Sort{Field: "COLOR", Order: Asc}, []string{"v1", "v2", "v3"}},
		{"make ascending is case-sensitive", &Sort{Field: SortMake, Order: Asc}, []string{"v2", "v1", "v3"}},
		{"year descending", &Sort{Field: SortYear, Order: Desc}, []string{"v3", "v1", "v2"}},
		{"field name ignores case", &Sort{Field: "year", Order: "desc"}, []string{"v3", "v1", "v2"}},
		{"missing mileage sorts as zero", &Sort{Field: SortMileage, Order: Asc}, []string{"v2", "v3", "v1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := vehicles()
			SortVehicles(vs, tt.sort)
			assert.Equal(t, tt.want, ids(vs))
		})
	}
}

func TestSort_IsStable(t *testing.T) {
	tasks := []*types.Task{
		{Record: types.Record{ID: "a"}, Priority: types.TaskPriorityHigh},
		{Record: types.Record{ID: "b"}, Priority: types.TaskPriorityLow},
		{Record: types.Record{ID: "c"}, Priority: types.TaskPriorityHigh},
		{Record: types.Record{ID: "d"}, Priority: types.TaskPriorityUrgent},
	}
	SortTasks(tasks, &Sort{Field: SortPriority, Order: Desc})
	assert.Equal(t, []string{"d", "a", "c", "b"}, ids(tasks))

	SortTasks(tasks, &Sort{Field: SortPriority, Order: Asc})
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(tasks))
}

func TestSortAppointments_ByStartTime(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	appts := []*types.Appointment{
		{Record: types.Record{ID: "mid"}, StartTime: base},
		{Record: types.Record{ID: "late"}, StartTime: base.Add(time.Hour)},
		{Record: types.Record{ID: "early"}, StartTime: base.Add(-time.Hour)},
	}
	SortAppointments(appts, DefaultSort(types.EntityAppointment))
	assert.Equal(t, []string{"late", "mid", "early"}, ids(appts))
}

func TestParseSortField(t *testing.T) {
	got, err := ParseSortField(types.EntityVehicle, "mileage")
	require.NoError(t, err)
	assert.Equal(t, SortMileage, got)

	_, err = ParseSortField(types.EntityNote, SortMileage)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	assert.Nil(t, SortFields("contact"))
}

func TestParseSortOrder(t *testing.T) {
	got, err := ParseSortOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, Desc, got)

	_, err = ParseSortOrder("sideways")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}
