package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// $pop always pops from the back (+1) and $shift always pops from the front (-1),
// regardless of the operand's sign (spec.md §4.7 "$pop(+1)/$shift(-1)" fixed mapping).
func TestPopAndShiftDirectionIsFixedNotSignDependent(t *testing.T) {
	model := newTestModel(DialectMongoDB, NewBasicValuesListField("tags", false))

	ops, cerr := parseUpdateInstruction(model, map[string]interface{}{
		"$pop":   map[string]interface{}{"tags": -1},
		"$shift": map[string]interface{}{"tags": 1},
	})
	require.Nil(t, cerr)
	require.Len(t, ops, 2)

	popOp, ok := findOp(ops, "$pop", "tags")
	require.True(t, ok)
	assert.Equal(t, 1, popOp.Direction)

	shiftOp, ok := findOp(ops, "$shift", "tags")
	require.True(t, ok)
	assert.Equal(t, -1, shiftOp.Direction)
}
