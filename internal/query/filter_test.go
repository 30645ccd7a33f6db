package query

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crm/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestStringFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter *StringFilter
		value  string
		want   bool
	}{
		{"nil matches", nil, "anything", true},
		{"eq is case-sensitive", &StringFilter{Eq: ptr("Toyota")}, "toyota", false},
		{"eq matches", &StringFilter{Eq: ptr("Toyota")}, "Toyota", true},
		{"ne", &StringFilter{Ne: ptr("Honda")}, "Honda", false},
		{"contains ignores case", &StringFilter{Contains: ptr("DRIVE")}, "test drive", true},
		{"not_contains ignores case", &StringFilter{NotContains: ptr("Drive")}, "test drive", false},
		{"in", &StringFilter{In: []string{"NEW", "CONTACTED"}}, "CONTACTED", true},
		{"in is case-sensitive", &StringFilter{In: []string{"NEW"}}, "new", false},
		{"empty in matches nothing", &StringFilter{In: []string{}}, "NEW", false},
		{"not_in", &StringFilter{NotIn: []string{"NEW"}}, "NEW", false},
		{"starts_with", &StringFilter{StartsWith: ptr("ada")}, "Ada Lovelace", true},
		{"ends_with", &StringFilter{EndsWith: ptr("LACE")}, "Ada Lovelace", true},
		{"clauses are ANDed", &StringFilter{Contains: ptr("ada"), Ne: ptr("Ada Lovelace")}, "Ada Lovelace", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.value))
		})
	}
}

func TestIntFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter *IntFilter
		value  *int
		want   bool
	}{
		{"nil matches", nil, ptr(3), true},
		{"gt", &IntFilter{Gt: ptr(10)}, ptr(10), false},
		{"gte", &IntFilter{Gte: ptr(10)}, ptr(10), true},
		{"lt", &IntFilter{Lt: ptr(10)}, ptr(9), true},
		{"lte", &IntFilter{Lte: ptr(10)}, ptr(11), false},
		{"range", &IntFilter{Gte: ptr(1), Lte: ptr(5)}, ptr(3), true},
		{"in", &IntFilter{In: []int{1, 2}}, ptr(2), true},
		{"not_in", &IntFilter{NotIn: []int{1, 2}}, ptr(2), false},
		{"unset compares as zero", &IntFilter{Eq: ptr(0)}, nil, true},
		{"unset fails gt zero", &IntFilter{Gt: ptr(0)}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.MatchPtr(tt.value))
		})
	}
}

func TestTimeFilter(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	before, after := base.Add(-time.Hour), base.Add(time.Hour)

	tests := []struct {
		name   string
		filter *TimeFilter
		value  time.Time
		want   bool
	}{
		{"eq compares instants", &TimeFilter{Eq: ptr(base.In(time.FixedZone("x", 3600)))}, base, true},
		{"gt is strict", &TimeFilter{Gt: ptr(base)}, base, false},
		{"gte", &TimeFilter{Gte: ptr(base)}, base, true},
		{"lt", &TimeFilter{Lt: ptr(base)}, before, true},
		{"between is inclusive low", &TimeFilter{Between: []time.Time{base, after}}, base, true},
		{"between is inclusive high", &TimeFilter{Between: []time.Time{before, base}}, base, true},
		{"outside between", &TimeFilter{Between: []time.Time{before, base}}, after, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.filter.Validate())
			assert.Equal(t, tt.want, tt.filter.Match(tt.value))
		})
	}
}

func TestTimeFilter_BetweenNeedsTwoBounds(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for _, bounds := range [][]time.Time{{}, {base}, {base, base, base}} {
		f := &TimeFilter{Between: bounds}
		err := f.Validate()
		require.Error(t, err, "%d bounds", len(bounds))
		assert.True(t, errors.Is(err, types.ErrInvalidArgument))
		assert.False(t, f.Match(base))
	}
}

func vehicles() []*types.Vehicle {
	return []*types.Vehicle{
		{Record: types.Record{ID: "v1"}, Make: "Toyota", Model: "Camry", Year: "2020", LeadID: "l1", Mileage: ptr(30000)},
		{Record: types.Record{ID: "v2"}, Make: "Honda", Model: "Civic", Year: "2018", LeadID: "l1"},
		{Record: types.Record{ID: "v3"}, Make: "toyota", Model: "Corolla", Year: "2022", LeadID: "l2", Mileage: ptr(5000)},
	}
}

func ids[T types.Entity](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Meta().ID)
	}
	return out
}

func TestFilterVehicles(t *testing.T) {
	tests := []struct {
		name   string
		filter *VehicleFilter
		want   []string
	}{
		{"nil filter keeps order", nil, []string{"v1", "v2", "v3"}},
		{"make eq is exact", &VehicleFilter{Make: &StringFilter{Eq: ptr("Toyota")}}, []string{"v1"}},
		{"make contains ignores case", &VehicleFilter{Make: &StringFilter{Contains: ptr("TOY")}}, []string{"v1", "v3"}},
		{"mileage missing is zero", &VehicleFilter{Mileage: &IntFilter{Lt: ptr(10000)}}, []string{"v2", "v3"}},
		{"and across fields", &VehicleFilter{LeadID: &StringFilter{Eq: ptr("l1")}, Year: &StringFilter{Eq: ptr("2018")}}, []string{"v2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterVehicles(vehicles(), tt.filter)))
		})
	}
}

func TestFilter_IsPure(t *testing.T) {
	in := vehicles()
	f := &VehicleFilter{Make: &StringFilter{Contains: ptr("o")}}

	first := FilterVehicles(in, f)
	second := FilterVehicles(in, f)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"v1", "v2", "v3"}, ids(in), "input untouched")

	all := FilterVehicles(in, nil)
	assert.Equal(t, in, all)
	all[0] = nil
	assert.NotNil(t, in[0], "result does not alias input")
}

func TestFilterLeads_Join(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	leads := []*types.Lead{
		{Record: types.Record{ID: "l1"}, Name: "Ada"},
		{Record: types.Record{ID: "l2"}, Name: "Bob"},
		{Record: types.Record{ID: "l3"}, Name: "Cy"},
	}
	appts := []*types.Appointment{
		{LeadID: "l1", StartTime: now.Add(24 * time.Hour), Status: types.AppointmentStatusConfirmed},
		{LeadID: "l2", StartTime: now.Add(24 * time.Hour), Status: types.AppointmentStatusCancelled},
		{LeadID: "l3", StartTime: now, Status: types.AppointmentStatusScheduled},
	}
	j := NewLeadJoin(appts, vehicles(), now)

	assert.Equal(t, []string{"l1"}, ids(FilterLeads(leads, &LeadFilter{HasUpcomingAppointments: ptr(true)}, j)))
	assert.Equal(t, []string{"l2", "l3"}, ids(FilterLeads(leads, &LeadFilter{HasUpcomingAppointments: ptr(false)}, j)))
	assert.Equal(t, []string{"l1", "l2"}, ids(FilterLeads(leads, &LeadFilter{VehicleMake: ptr("TOYOTA")}, j)))
	assert.Empty(t, FilterLeads(leads, &LeadFilter{VehicleMake: ptr("Ford")}, j))
}
