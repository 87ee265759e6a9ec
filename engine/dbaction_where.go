package engine

import "strings"

var logicalCombinators = map[string]bool{"$and": true, "$or": true, "$nor": true}

// parseWhere compiles a condition object into an Expression tree (spec.md §4.7
// "Where compilation"). condType selects the grammar: a plain query condition, a
// MongoDB $pull condition, or an array-filter conditional — all three share the
// same {field: value | {operator: value}} shape, differing only in which
// functions ValidateForPull later allows.
func parseWhere(model *Model, cond interface{}, condType ConditionType) (Expression, *ClientError) {
	obj, ok := cond.(map[string]interface{})
	if !ok {
		return nil, errInvalidExpression("a where condition must be an object")
	}
	if len(obj) == 0 {
		return NewStatic(true), nil
	}

	var parts []Expression
	for key, value := range obj {
		expr, err := parseWhereEntry(model, key, value, condType)
		if err != nil {
			return nil, err
		}
		parts = append(parts, expr)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	operands := make([]Expression, len(parts))
	copy(operands, parts)
	return NewFunctionExpression("$and", operands...), nil
}

func parseWhereEntry(model *Model, key string, value interface{}, condType ConditionType) (Expression, *ClientError) {
	if logicalCombinators[key] {
		arr, ok := value.([]interface{})
		if !ok {
			return nil, errInvalidExpression("%q expects an array of sub-conditions", key)
		}
		operands := make([]Expression, 0, len(arr))
		for _, sub := range arr {
			e, err := parseWhere(model, sub, condType)
			if err != nil {
				return nil, err
			}
			operands = append(operands, e)
		}
		return NewFunctionExpression(key, operands...), nil
	}
	if key == "$not" {
		inner, err := parseWhere(model, value, condType)
		if err != nil {
			return nil, err
		}
		return NewFunctionExpression("$not", inner), nil
	}

	left, err := resolveLeftOperand(model, key, condType)
	if err != nil {
		return nil, err
	}

	right := func(v interface{}) Expression {
		if condType == ConditionArrayFilter {
			return NewStatic(v)
		}
		e, _ := parseComputeExpr(model, v)
		return e
	}

	operatorObj, isOperatorObj := value.(map[string]interface{})
	if !isOperatorObj || !isLiteralOperatorShaped(operatorObj) {
		return NewFunctionExpression("$eq", left, right(value)), nil
	}

	var clauses []Expression
	for op, opValue := range operatorObj {
		if !strings.HasPrefix(op, "$") {
			return nil, errInvalidExpression("field %q: %q is not a recognized operator", key, op)
		}
		if _, ok := LookupFunction(op); !ok {
			return nil, errInvalidExpression("field %q: %q is not a recognized operator", key, op)
		}
		clauses = append(clauses, NewFunctionExpression(op, left, right(opValue)))
	}
	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return NewFunctionExpression("$and", clauses...), nil
}

// parseComputeExpr resolves a computation's compute operand by the same
// value-typing rule where-parsing applies to a bare value (spec.md §4.7
// "where/expression parsing rule"): a string resolves to a Field when it names
// one on model, else falls back to a Static text literal; every other JSON
// scalar is Static.
func parseComputeExpr(model *Model, raw interface{}) (Expression, *ClientError) {
	if s, ok := raw.(string); ok {
		if _, err := getFieldObject(model, s); err == nil {
			return NewFieldExpression(model, s), nil
		}
		return NewStatic(s), nil
	}
	return NewStatic(raw), nil
}

// isLiteralOperatorShaped distinguishes {"$gt": 5} (an operator object) from a
// plain nested-object equality target such as {"city": "Lisbon"} — the former's
// keys are all registered function names.
func isLiteralOperatorShaped(obj map[string]interface{}) bool {
	if len(obj) == 0 {
		return false
	}
	for k := range obj {
		if !strings.HasPrefix(k, "$") {
			return false
		}
		if _, ok := LookupFunction(k); !ok {
			return false
		}
	}
	return true
}

// resolveLeftOperand resolves the left-hand side of one where entry. Under
// ConditionArrayFilter, any free identifier is an ArrayFilterField reference
// (spec.md §4.7 "where/expression parsing rule"): it has no backing field, so it
// is never checked against the model, matching §4.2's "no backing field" note on
// the ArrayFilterField node.
func resolveLeftOperand(model *Model, path string, condType ConditionType) (Expression, *ClientError) {
	if condType == ConditionArrayFilter {
		alias := strings.TrimPrefix(path, "$$")
		segs := strings.Split(alias, ".")
		return NewArrayFilterFieldExpression("", segs[0], ReturnAny, segs[1:]), nil
	}
	if _, err := getFieldObject(model, path); err != nil {
		return nil, err
	}
	expr := NewFieldExpression(model, path)
	return expr, nil
}
