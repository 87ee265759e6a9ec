package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFieldAssignsOnCreateWhenMissing(t *testing.T) {
	field := NewIDField("id")
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, nil, false, processed, ve, true, nil)
	require.False(t, ve.hasErrors())
	assert.NotNil(t, processed["id"])
}

func TestIDFieldNeverRewrittenOnUpdate(t *testing.T) {
	field := NewIDField("id")
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "5f43a1c2b7e1a2d3c4b5a6f7", true, processed, ve, false, nil)
	require.False(t, ve.hasErrors())
	_, present := processed["id"]
	assert.False(t, present)
}

func TestReferenceFieldCoercesValidObjectID(t *testing.T) {
	field := NewReferenceField("ownerId", "md_people", true)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "5f43a1c2b7e1a2d3c4b5a6f7", true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())
	assert.NotNil(t, processed["ownerId"])
}

func TestReferenceFieldRejectsMalformedID(t *testing.T) {
	field := NewReferenceField("ownerId", "md_people", true)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "not-an-id", true, processed, ve, true, nil)
	assert.True(t, ve.hasErrors())
}
