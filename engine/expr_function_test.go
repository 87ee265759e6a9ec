package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseWhereSingleKeyCollapsesToBareExpression(t *testing.T) {
	m := newTestModel(DialectMongoDB, NewTextField("name", true, 0))
	expr, cerr := parseWhere(m, map[string]interface{}{"name": "Ada"}, ConditionQuery)
	require.Nil(t, cerr)

	fn, ok := expr.(*FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, "$eq", fn.Def.Name, "a single condition must not be wrapped in $and")
}

func TestParseWhereMultiKeyWrapsInAnd(t *testing.T) {
	m := newTestModel(DialectMongoDB, NewTextField("name", true, 0), NewIntegerField("age", false))
	expr, cerr := parseWhere(m, map[string]interface{}{"name": "Ada", "age": 36}, ConditionQuery)
	require.Nil(t, cerr)

	fn, ok := expr.(*FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, "$and", fn.Def.Name)
	assert.Len(t, fn.Operands, 2)
}

func TestEqExpressionMongoQueryLowering(t *testing.T) {
	m := newTestModel(DialectMongoDB, NewTextField("name", true, 0))
	left := NewFieldExpression(m, "name")
	expr := NewFunctionExpression("$eq", left, NewStatic("Ada"))

	query, err := expr.GetQuery(DialectMongoDB, nil)
	require.NoError(t, err)
	doc, ok := query.(bson.M)
	require.True(t, ok)
	assert.Equal(t, []interface{}{"$name", "Ada"}, doc["$eq"])
}

func TestIsNotNullCustomMongoLowering(t *testing.T) {
	m := newTestModel(DialectMongoDB, NewTextField("name", true, 0))
	left := NewFieldExpression(m, "name")
	expr := NewFunctionExpression("$isnotnull", left)

	query, err := expr.GetQuery(DialectMongoDB, nil)
	require.NoError(t, err)
	doc, ok := query.(bson.M)
	require.True(t, ok)
	assert.Contains(t, doc, "$ne")
}

func TestEndsWithSQLLoweringUsesCustomMarker(t *testing.T) {
	m := newTestModel(DialectPostgreSQL, NewTextField("name", true, 0))
	left := NewFieldExpression(m, "name")
	expr := NewFunctionExpression("$endsWith", left, NewStatic("th"))

	query, err := expr.GetQuery(DialectPostgreSQL, nil)
	require.NoError(t, err)
	marker, ok := query.(SQLCustomMarker)
	require.True(t, ok)
	assert.Equal(t, "$endsWith", marker.Function)
}

func TestComparisonSQLLoweringProducesInlineFragment(t *testing.T) {
	m := newTestModel(DialectPostgreSQL, NewIntegerField("age", false))
	left := NewFieldExpression(m, "age")
	expr := NewFunctionExpression("$gt", left, NewStatic(30))

	query, err := expr.GetQuery(DialectPostgreSQL, nil)
	require.NoError(t, err)
	frag, ok := query.(SQLFragment)
	require.True(t, ok)
	assert.Contains(t, frag.Text, ">")
}

func TestFunctionExpressionRejectsWrongArity(t *testing.T) {
	expr := NewFunctionExpression("$eq", NewStatic("a"))
	err := expr.Validate(DialectMongoDB)
	assert.Error(t, err)
}

func TestFunctionExpressionRejectsUnknownFunction(t *testing.T) {
	expr := NewFunctionExpression("$doesNotExist", NewStatic("a"))
	err := expr.Validate(DialectMongoDB)
	assert.Error(t, err)
}
