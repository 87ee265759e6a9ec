package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatedAtDefaultsOnCreateAndIgnoresUpdate(t *testing.T) {
	field := NewCreatedAtField("createdAt")
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, nil, false, processed, ve, true, nil)
	require.False(t, ve.hasErrors())
	original := processed["createdAt"]
	assert.NotNil(t, original)

	processed = map[string]interface{}{}
	ve = &ValidationErrors{}
	field.Prepare(m, "2099-01-01T00:00:00Z", true, processed, ve, false, nil)
	require.False(t, ve.hasErrors())
	_, present := processed["createdAt"]
	assert.False(t, present, "createdAt must never change on update, regardless of caller input")
}

func TestUpdatedAtAutoRefreshesOnEveryUpdate(t *testing.T) {
	field := NewUpdatedAtField("updatedAt")
	m := newTestModel(DialectMongoDB, field)
	m.ResetTimestamp()
	expected := m.Timestamp()

	// Caller omits updatedAt entirely from the update payload.
	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, nil, false, processed, ve, false, nil)
	require.False(t, ve.hasErrors())
	assert.Equal(t, expected, processed["updatedAt"])

	// Caller explicitly supplies a stale value; it is still overwritten.
	processed = map[string]interface{}{}
	ve = &ValidationErrors{}
	field.Prepare(m, "2001-01-01T00:00:00Z", true, processed, ve, false, nil)
	require.False(t, ve.hasErrors())
	assert.Equal(t, expected, processed["updatedAt"], "updatedAt must auto-refresh even when the caller sends a value")
}

func TestDateTimeFieldRejectsUnparseableValue(t *testing.T) {
	field := NewDateTimeField("startsAt", true)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "not-a-date", true, processed, ve, true, nil)
	assert.True(t, ve.hasErrors())
}
