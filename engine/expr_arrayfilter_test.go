package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayFilterFieldExpressionBuildsMongoVariableRef(t *testing.T) {
	expr := NewArrayFilterFieldExpression("tags", "t", ReturnText, nil)
	require.NoError(t, expr.Validate(DialectMongoDB))

	query, err := expr.GetQuery(DialectMongoDB, nil)
	require.NoError(t, err)
	assert.Equal(t, "$$t", query)
}

func TestArrayFilterFieldExpressionWithSubPath(t *testing.T) {
	expr := NewArrayFilterFieldExpression("items", "it", ReturnText, []string{"sku"})
	query, err := expr.GetQuery(DialectMongoDB, nil)
	require.NoError(t, err)
	assert.Equal(t, "$$it.sku", query)
}

func TestArrayFilterFieldExpressionRejectsNonMongoDialect(t *testing.T) {
	expr := NewArrayFilterFieldExpression("tags", "t", ReturnText, nil)
	assert.Error(t, expr.Validate(DialectPostgreSQL))
}

func TestArrayFilterFieldExpressionAllowsEmptyArrayPath(t *testing.T) {
	expr := NewArrayFilterFieldExpression("", "t", ReturnText, nil)
	assert.NoError(t, expr.Validate(DialectMongoDB))
}

func TestArrayFilterFieldExpressionRequiresAlias(t *testing.T) {
	expr := NewArrayFilterFieldExpression("", "", ReturnText, nil)
	assert.Error(t, expr.Validate(DialectMongoDB))
}
