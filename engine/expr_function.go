package engine

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// FunctionExpression applies a registered FunctionDef to a list of operand
// expressions (spec.md §3/§4.2/§4.3). Validate checks arity and per-operand
// return-type assignability before any lowering is attempted.
type FunctionExpression struct {
	Def      FunctionDef
	Operands []Expression
}

// NewFunctionExpression looks up name in the registry and wraps it with operands.
// An unknown name still constructs (so callers can report errInvalidExpression
// uniformly through Validate), with Def.Name left set to name and Mapping nil.
func NewFunctionExpression(name string, operands ...Expression) *FunctionExpression {
	def, ok := LookupFunction(name)
	if !ok {
		def = FunctionDef{Name: name}
	}
	return &FunctionExpression{Def: def, Operands: operands}
}

func (e *FunctionExpression) ExpressionKind() ExpressionKind { return ExprFunction }

func (e *FunctionExpression) ReturnType() ReturnType { return e.Def.ReturnType }

func (e *FunctionExpression) checkArity() error {
	if e.Def.Mapping == nil {
		return errInvalidExpression("%q is not a recognized function", e.Def.Name)
	}
	if e.Def.ParamCount >= 0 && len(e.Operands) != e.Def.ParamCount {
		return errInvalidExpression("function %q expects %d argument(s), got %d", e.Def.Name, e.Def.ParamCount, len(e.Operands))
	}
	if e.Def.ParamCount < 0 && len(e.Operands) == 0 {
		return errInvalidExpression("function %q requires at least one argument", e.Def.Name)
	}
	return nil
}

func (e *FunctionExpression) Validate(dialect Dialect) error {
	if err := e.checkArity(); err != nil {
		return err
	}
	if _, ok := e.Def.Mapping[dialect]; !ok {
		return errUnsupportedFunction(e.Def.Name, dialect)
	}
	for i, op := range e.Operands {
		if err := op.Validate(dialect); err != nil {
			return err
		}
		declared := ReturnAny
		if e.Def.ParamCount >= 0 && i < len(e.Def.Params) {
			declared = e.Def.Params[i]
		} else if len(e.Def.Params) > 0 {
			declared = e.Def.Params[0]
		}
		if declared == ReturnStaticBoolean && op.ExpressionKind() != ExprStatic {
			if !Assignable(declared, op.ReturnType()) {
				return errInvalidExpression("argument %d of %q must be a static boolean", i, e.Def.Name)
			}
			continue
		}
		if !Assignable(declared, op.ReturnType()) {
			return errInvalidExpression("argument %d of %q has return type %s, expected %s", i, e.Def.Name, op.ReturnType(), declared)
		}
	}
	return nil
}

func (e *FunctionExpression) ValidateForPull(dialect Dialect) error {
	if err := e.Validate(dialect); err != nil {
		return err
	}
	if !e.Def.PullAllowed {
		return errInvalidExpression("function %q is not allowed inside a pull condition", e.Def.Name)
	}
	for _, op := range e.Operands {
		if err := op.ValidateForPull(dialect); err != nil {
			return err
		}
	}
	return nil
}

func (e *FunctionExpression) HasJoinFieldValues() bool {
	for _, op := range e.Operands {
		if op.HasJoinFieldValues() {
			return true
		}
	}
	return false
}

func (e *FunctionExpression) GetQuery(dialect Dialect, resolve resolveFieldPathFunc) (interface{}, error) {
	if err := e.Validate(dialect); err != nil {
		return nil, err
	}
	if dialect == DialectMongoDB {
		return e.mongoQuery(resolve)
	}
	return e.sqlQuery(dialect, resolve)
}

func (e *FunctionExpression) GetPullQuery(dialect Dialect, dropFieldName bool) (interface{}, error) {
	if err := e.ValidateForPull(dialect); err != nil {
		return nil, err
	}
	operands := make([]interface{}, 0, len(e.Operands))
	for _, op := range e.Operands {
		v, err := op.GetPullQuery(dialect, dropFieldName)
		if err != nil {
			return nil, err
		}
		operands = append(operands, v)
	}
	if dialect == DialectMongoDB {
		return e.mongoFromOperands(operands), nil
	}
	return SQLCustomMarker{Function: e.Def.Name, Operands: operands}, nil
}

func (e *FunctionExpression) loweredOperands(dialect Dialect, resolve resolveFieldPathFunc) ([]interface{}, error) {
	out := make([]interface{}, 0, len(e.Operands))
	for _, op := range e.Operands {
		v, err := op.GetQuery(dialect, resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *FunctionExpression) mongoOp() string { return e.Def.Mapping[DialectMongoDB] }

func (e *FunctionExpression) mongoFromOperands(operands []interface{}) bson.M {
	op := e.mongoOp()
	// The spec names a handful of functions whose MongoDB lowering is not a literal
	// 1:1 operator substitution (spec.md §4.3 "custom lowerings").
	switch e.Def.Name {
	case "$endsWith":
		return bson.M{"$eq": []interface{}{
			bson.M{"$substrCP": []interface{}{operands[0], bson.M{"$subtract": []interface{}{bson.M{"$strLenCP": operands[0]}, bson.M{"$strLenCP": operands[1]}}}, bson.M{"$strLenCP": operands[1]}}},
			operands[1],
		}}
	case "$includes":
		return bson.M{"$gte": []interface{}{bson.M{"$indexOfCP": []interface{}{operands[0], operands[1]}}, 0}}
	case "$right":
		return bson.M{"$substrCP": []interface{}{operands[0], bson.M{"$subtract": []interface{}{bson.M{"$strLenCP": operands[0]}, operands[1]}}, operands[1]}}
	case "$exists":
		return bson.M{"$ne": []interface{}{bson.M{"$ifNull": []interface{}{operands[0], nil}}, nil}}
	case "$isnotnull":
		return bsonM(op, operands[0], nil)
	default:
		return bsonM(op, operands...)
	}
}

func (e *FunctionExpression) mongoQuery(resolve resolveFieldPathFunc) (interface{}, error) {
	operands, err := e.loweredOperands(DialectMongoDB, resolve)
	if err != nil {
		return nil, err
	}
	return e.mongoFromOperands(operands), nil
}

func (e *FunctionExpression) sqlQuery(dialect Dialect, resolve resolveFieldPathFunc) (interface{}, error) {
	operands, err := e.loweredOperands(dialect, resolve)
	if err != nil {
		return nil, err
	}
	op := e.Def.Mapping[dialect]
	texts := make([]string, 0, len(operands))
	args := make([]interface{}, 0, len(operands))
	for _, o := range operands {
		switch t := o.(type) {
		case SQLFragment:
			texts = append(texts, t.Text)
			args = append(args, t.Args...)
		default:
			texts = append(texts, "?")
			args = append(args, t)
		}
	}

	// Functions needing custom text shape beyond "a OP b" are finished by the
	// adapter via SQLCustomMarker (spec.md §9 Open Question 3).
	switch e.Def.Name {
	case "$endsWith":
		return SQLCustomMarker{Function: e.Def.Name, Operands: operands}, nil
	case "$includes":
		return SQLCustomMarker{Function: e.Def.Name, Operands: operands}, nil
	case "$concat", "$substr", "$left", "$right", "$toInteger", "$toDecimal", "$toString", "$replace":
		return SQLCustomMarker{Function: e.Def.Name, Operands: operands}, nil
	case "$exists", "$isnull", "$isnotnull":
		return SQLFragment{Text: fmt.Sprintf("(%s %s)", texts[0], op), Args: args}, nil
	}

	switch len(texts) {
	case 0:
		return SQLFragment{Text: op}, nil
	case 1:
		return SQLFragment{Text: fmt.Sprintf("%s(%s)", op, texts[0]), Args: args}, nil
	case 2:
		return SQLFragment{Text: fmt.Sprintf("(%s %s %s)", texts[0], op, texts[1]), Args: args}, nil
	default:
		joined := ""
		for i, t := range texts {
			if i > 0 {
				joined += " " + op + " "
			}
			joined += t
		}
		return SQLFragment{Text: "(" + joined + ")", Args: args}, nil
	}
}
