package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumFieldRejectsValueOutsideAllowedSet(t *testing.T) {
	field := NewEnumField("status", true, []string{"open", "closed"})
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "archived", true, processed, ve, true, nil)
	assert.True(t, ve.hasErrors())

	processed = map[string]interface{}{}
	ve = &ValidationErrors{}
	field.Prepare(m, "open", true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())
	assert.Equal(t, "open", processed["status"])
}

func TestBinaryFieldAcceptsBase64StringAndBytes(t *testing.T) {
	field := NewBinaryField("payload", true)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "aGVsbG8=", true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())
	assert.Equal(t, []byte("hello"), processed["payload"])

	processed = map[string]interface{}{}
	ve = &ValidationErrors{}
	field.Prepare(m, []byte("raw"), true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())
	assert.Equal(t, []byte("raw"), processed["payload"])
}

func TestBinaryFieldEncodesPerDialect(t *testing.T) {
	field := NewBinaryField("payload", true)

	mongoEncoded, err := field.Encode(DialectMongoDB, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), mongoEncoded)

	sqlEncoded, err := field.Encode(DialectMySQL, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", sqlEncoded)
}

func TestJSONFieldAcceptsObjectsArraysAndPrimitives(t *testing.T) {
	field := NewJSONField("meta", false)
	m := newTestModel(DialectMongoDB, field)

	for _, v := range []interface{}{
		map[string]interface{}{"a": 1},
		[]interface{}{1, 2, 3},
		"text",
		42,
		true,
		nil,
	} {
		processed := map[string]interface{}{}
		ve := &ValidationErrors{}
		field.Prepare(m, v, true, processed, ve, true, nil)
		assert.False(t, ve.hasErrors(), "value %#v should be accepted", v)
	}
}

func TestBasicValuesListRejectsNestedStructures(t *testing.T) {
	field := NewBasicValuesListField("tags", false)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, []interface{}{"a", "b"}, true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())

	processed = map[string]interface{}{}
	ve = &ValidationErrors{}
	field.Prepare(m, []interface{}{"a", map[string]interface{}{"nested": true}}, true, processed, ve, true, nil)
	assert.True(t, ve.hasErrors())
}
