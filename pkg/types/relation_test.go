package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelationSchema_Standard(t *testing.T) {
	s, err := NewRelationSchema(StandardRelations)
	require.NoError(t, err)
	assert.Len(t, s.Relations(), len(StandardRelations))

	r, err := s.Lookup(EntityLead, RelVehicles)
	require.NoError(t, err)
	assert.Equal(t, EntityVehicle, r.Target)
	assert.Equal(t, Many, r.Cardinality)

	r, err = s.Lookup(EntityNote, RelTask)
	require.NoError(t, err)
	assert.Equal(t, EntityTask, r.Target)
	assert.Equal(t, One, r.Cardinality)
}

func TestRelationSchema_LookupUnknown(t *testing.T) {
	s, err := NewRelationSchema(StandardRelations)
	require.NoError(t, err)

	_, err = s.Lookup(EntityVehicle, RelNotes)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRelation))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewRelationSchema_Rejects(t *testing.T) {
	tests := []struct {
		name string
		rels []Relation
	}{
		{
			name: "duplicate key",
			rels: []Relation{
				{Owner: EntityLead, Name: RelTasks, Target: EntityTask, Cardinality: Many},
				{Owner: EntityLead, Name: RelTasks, Target: EntityNote, Cardinality: Many},
			},
		},
		{
			name: "unknown owner",
			rels: []Relation{{Owner: "contact", Name: RelTasks, Target: EntityTask, Cardinality: Many}},
		},
		{
			name: "empty name",
			rels: []Relation{{Owner: EntityLead, Target: EntityTask, Cardinality: Many}},
		},
		{
			name: "bad cardinality",
			rels: []Relation{{Owner: EntityLead, Name: RelTasks, Target: EntityTask, Cardinality: "some"}},
		},
		{
			name: "one relation without reference field",
			rels: []Relation{{Owner: EntityLead, Name: "owner", Target: EntityLead, Cardinality: One}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRelationSchema(tt.rels)
			require.Error(t, err)
			assert.Equal(t, KindInvalidArgument, KindOf(err))
		})
	}
}
