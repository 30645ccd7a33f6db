package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadPatch_AppliesEmptyAndZeroValues(t *testing.T) {
	score := 80
	lead := &Lead{Name: "Ada", Email: "ada@example.com", City: "Paris", LeadScore: &score}

	var p LeadPatch
	require.NoError(t, json.Unmarshal([]byte(`{"email":"","lead_score":0,"city":null}`), &p))
	require.NoError(t, p.Apply(lead))

	assert.Equal(t, "", lead.Email, "present empty string is written")
	require.NotNil(t, lead.LeadScore)
	assert.Equal(t, 0, *lead.LeadScore, "present zero is written")
	assert.Equal(t, "Paris", lead.City, "null leaves the field alone")
	assert.Equal(t, "Ada", lead.Name, "absent leaves the field alone")
}

func TestPatch_TypeMismatch(t *testing.T) {
	p := &TaskPatch{}
	err := p.Apply(&Lead{Name: "Ada"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewPatch(t *testing.T) {
	for _, et := range EntityTypes {
		t.Run(string(et), func(t *testing.T) {
			p, err := NewPatch(et)
			require.NoError(t, err)
			assert.Equal(t, et, p.Target())

			e, err := NewEntity(et)
			require.NoError(t, err)
			assert.NoError(t, p.Apply(e))
		})
	}

	_, err := NewPatch("contact")
	assert.True(t, errors.Is(err, ErrUnknownEntityType))
}

func TestClone_IsDeep(t *testing.T) {
	miles := 1000
	v := &Vehicle{Make: "Honda", Year: "2019", LeadID: "l1", Mileage: &miles}
	c := v.Clone().(*Vehicle)

	*c.Mileage = 2000
	c.Make = "Toyota"
	assert.Equal(t, 1000, *v.Mileage)
	assert.Equal(t, "Honda", v.Make)
}

func TestReferences(t *testing.T) {
	n := &Note{Title: "memo", LeadID: "l1", TaskID: "t1"}
	assert.Equal(t, map[string]string{RelLead: "l1", RelTask: "t1"}, n.References())

	assert.True(t, n.SetReference(RelTask, ""))
	assert.Equal(t, map[string]string{RelLead: "l1"}, n.References())
	assert.False(t, n.SetReference(RelNotes, "x"))

	assert.Nil(t, (&Lead{}).References())
}

func TestParseEntityType(t *testing.T) {
	got, err := ParseEntityType("appointments")
	require.NoError(t, err)
	assert.Equal(t, EntityAppointment, got)

	_, err = ParseEntityType("contacts")
	assert.True(t, errors.Is(err, ErrUnknownEntityType))
	assert.True(t, IsUserError(err))
}
