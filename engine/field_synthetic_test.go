package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinFieldIsNeverWritable(t *testing.T) {
	target := NewTextField("email", false, 0)
	field := NewJoinField("ownerEmail", target)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "someone@example.com", true, processed, ve, true, nil)
	assert.True(t, ve.hasErrors())
	assert.Equal(t, "join_field_not_writable", ve.Errors[0].Code)
	assert.Empty(t, processed)
}

func TestJoinFieldReturnsTargetType(t *testing.T) {
	target := NewIntegerField("age", false)
	field := NewJoinField("ownerAge", target)
	assert.Equal(t, target.ReturnType(), field.ReturnType())
}

func TestArrayFilterFieldIsNeverWritable(t *testing.T) {
	field := NewArrayFilterFieldField("item", ReturnText)
	m := newTestModel(DialectMongoDB, field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(m, "value", true, processed, ve, true, nil)
	assert.True(t, ve.hasErrors())
	assert.Equal(t, "array_filter_field_not_writable", ve.Errors[0].Code)
}
