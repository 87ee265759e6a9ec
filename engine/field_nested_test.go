package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubModel(db *Database, modelType ModelType, parent *Model, fields ...Field) *Model {
	sub := newModel(parent.name+".sub", modelType, db, parent)
	for _, f := range fields {
		sub.addField(f)
	}
	return sub
}

func TestObjectFieldRecursesIntoSubModel(t *testing.T) {
	parent := newTestModel(DialectMongoDB)
	sub := newSubModel(parent.Database(), ModelObject, parent, NewTextField("street", true, 0))

	field := NewObjectField("address", true)
	field.SubModel = sub
	parent.addField(field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(parent, map[string]interface{}{"street": "Main St"}, true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())

	nested, ok := processed["address"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Main St", nested["street"])
}

func TestObjectFieldRejectsDirectReplacementOnUpdate(t *testing.T) {
	parent := newTestModel(DialectMongoDB)
	sub := newSubModel(parent.Database(), ModelObject, parent, NewTextField("street", true, 0))

	field := NewObjectField("address", true)
	field.SubModel = sub
	parent.addField(field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(parent, map[string]interface{}{"street": "New St"}, true, processed, ve, false, nil)
	require.True(t, ve.hasErrors())
	assert.Equal(t, "direct_object_assignment_not_allowed", ve.Errors[0].Code)
}

func TestObjectListFieldValidatesEachItemIndependently(t *testing.T) {
	parent := newTestModel(DialectMongoDB)
	sub := newSubModel(parent.Database(), ModelObjectList, parent, NewTextField("label", true, 0))

	field := NewObjectListField("tags", false)
	field.SubModel = sub
	parent.addField(field)

	processed := map[string]interface{}{}
	ve := &ValidationErrors{}
	field.Prepare(parent, []interface{}{
		map[string]interface{}{"label": "a"},
		map[string]interface{}{"label": "b"},
	}, true, processed, ve, true, nil)
	require.False(t, ve.hasErrors())

	list, ok := processed["tags"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 2)
}
