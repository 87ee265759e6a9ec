package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(dialect Dialect, fields ...Field) *Model {
	db := &Database{dialect: dialect}
	m := newModel("test", ModelTopLevel, db, nil)
	for _, f := range fields {
		m.addField(f)
	}
	return m
}

func TestTextFieldMaxLengthBoundary(t *testing.T) {
	field := NewTextField("bio", false, 5)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "abcde", true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())
	assert.Equal(t, "abcde", processed["bio"])

	processed = map[string]interface{}{}
	ve = &ValidationErrors{}
	field.Prepare(m, "abcdef", true, processed, ve, true, nil)
	assert.True(t, ve.hasErrors())
}

func TestTextFieldMissingRequiredOnCreate(t *testing.T) {
	field := NewTextField("bio", true, 0)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, nil, false, processed, ve, true, nil)
	require.True(t, ve.hasErrors())
	assert.Equal(t, "missing_required_field_value", ve.Errors[0].Code)
}

func TestTextFieldImmutableIgnoredOnUpdate(t *testing.T) {
	field := &TextField{BaseField: BaseField{name: "bio", queryPath: "bio", kind: KindText, creator: CreatorUser, immutable: true}}
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "new bio", true, processed, ve, false, nil)
	require.False(t, ve.hasErrors())
	_, present := processed["bio"]
	assert.False(t, present)
}

func TestEmailFieldValidation(t *testing.T) {
	field := NewEmailField("email", true)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "not-an-email", true, processed, ve, true, nil)
	assert.True(t, ve.hasErrors())

	processed = map[string]interface{}{}
	ve = &ValidationErrors{}
	field.Prepare(m, "a@b.com", true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())
	assert.Equal(t, "a@b.com", processed["email"])
}
