package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldExpressionResolvesSimplePath(t *testing.T) {
	m := newTestModel(DialectMongoDB, NewTextField("name", true, 0))
	expr := NewFieldExpression(m, "name")
	require.NotNil(t, expr.Field)
	assert.Equal(t, ExprField, expr.ExpressionKind())

	query, err := expr.GetQuery(DialectMongoDB, nil)
	require.NoError(t, err)
	assert.Equal(t, "$name", query)
}

func TestFieldExpressionUnresolvablePathFailsValidate(t *testing.T) {
	m := newTestModel(DialectMongoDB, NewTextField("name", true, 0))
	expr := NewFieldExpression(m, "doesNotExist")
	assert.Nil(t, expr.Field)
	assert.Error(t, expr.Validate(DialectMongoDB))
}

func TestFieldExpressionRecursesIntoObjectSubModel(t *testing.T) {
	parent := newTestModel(DialectMongoDB)
	sub := newSubModel(parent.Database(), ModelObject, parent, NewTextField("street", true, 0))
	field := NewObjectField("address", true)
	field.SubModel = sub
	parent.addField(field)

	expr := NewFieldExpression(parent, "address.street")
	require.NotNil(t, expr.Field)
	assert.Equal(t, "street", expr.Field.Name())
}

func TestFieldExpressionSQLLowering(t *testing.T) {
	m := newTestModel(DialectPostgreSQL, NewTextField("name", true, 0))
	expr := NewFieldExpression(m, "name")

	query, err := expr.GetQuery(DialectPostgreSQL, nil)
	require.NoError(t, err)
	frag, ok := query.(SQLFragment)
	require.True(t, ok)
	assert.Contains(t, frag.Text, "name")
}
