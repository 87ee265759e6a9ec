package engine

import "go.mongodb.org/mongo-driver/bson"

// ExpressionKind distinguishes the four node kinds of the expression IR (spec.md §3/§4.2).
type ExpressionKind int

const (
	ExprField ExpressionKind = iota
	ExprArrayField
	ExprStatic
	ExprFunction
)

func (k ExpressionKind) String() string {
	switch k {
	case ExprField:
		return "FIELD"
	case ExprArrayField:
		return "ARRAY_FIELD"
	case ExprStatic:
		return "STATIC"
	case ExprFunction:
		return "FUNCTION"
	default:
		return "UNKNOWN"
	}
}

// JoinType classifies how a Field expression's path reached its leaf field.
type JoinType int

const (
	JoinNone JoinType = iota
	JoinSimple
	JoinComplex
)

// ConditionType selects the grammar a where-condition object is parsed under
// (spec.md §4.7): plain query, MongoDB $pull condition, or MongoDB array-filter
// conditional.
type ConditionType int

const (
	ConditionQuery ConditionType = iota
	ConditionPull
	ConditionArrayFilter
)

// resolveFieldPathFunc lets callers of GetQuery rewrite a resolved field path, e.g.
// to qualify it with a join alias. A nil value means "use the path unchanged".
type resolveFieldPathFunc func(path string) string

// Expression is the common capability surface every IR node implements
// (spec.md §4.2). Go favors a flat interface over the source's deep class tree
// (spec.md §9, "Polymorphic inheritance" design note).
type Expression interface {
	ExpressionKind() ExpressionKind
	ReturnType() ReturnType
	GetQuery(dialect Dialect, resolve resolveFieldPathFunc) (interface{}, error)
	GetPullQuery(dialect Dialect, dropFieldName bool) (interface{}, error)
	Validate(dialect Dialect) error
	ValidateForPull(dialect Dialect) error
	HasJoinFieldValues() bool
}

// SQLFragment is the intermediate SQL-dialect lowering result for a field reference
// and for every function not returned as a SQLCustomMarker (comparison, logical,
// $exists/$isnull/$isnotnull, one-argument functions) — spec.md §9 ambiguity 3 /
// SPEC_FULL.md Open Question 3: getQuery on SQL dialects produces an intermediate
// structure, not a finished statement.
type SQLFragment struct {
	Text string
	Args []interface{}
}

// SQLCustomMarker flags a function whose SQL lowering is only partially inlined; the
// adapter finishes it. Carries the function name and the already-lowered operands.
type SQLCustomMarker struct {
	Function string
	Operands []interface{}
}

// arrayValue is the lowering of a Static array literal or of an ArrayValue parse result.
type arrayValue []interface{}

func bsonM(op string, args ...interface{}) bson.M {
	if len(args) == 1 {
		return bson.M{op: args[0]}
	}
	return bson.M{op: args}
}
