package engine

// updateOperators enumerates the update instruction keys spec.md §4.7 names:
// $set/$unset/$inc/$mul/$min/$max/$push/$pull/$pop/$shift.
var updateOperators = map[string]bool{
	"$set": true, "$unset": true, "$inc": true, "$mul": true, "$min": true,
	"$max": true, "$push": true, "$pull": true, "$pop": true, "$shift": true,
}

// UpdateOp is one compiled instruction against a single field path.
type UpdateOp struct {
	Operator  string
	Path      string
	Value     interface{}
	Direction int        // $pop/$shift only: -1 (front) or 1 (back)
	Condition Expression // $pull only
}

// parseUpdateInstruction compiles the {"$set": {...}, "$inc": {...}, ...} object
// spec.md §4.7 describes into a flat, ordered list of UpdateOp (spec.md §8
// "updateById double-$inc non-collapsing": two $inc entries against the same path
// across different operator blocks both survive, they are not merged).
func parseUpdateInstruction(model *Model, instruction map[string]interface{}) ([]UpdateOp, *ClientError) {
	var ops []UpdateOp
	for operator, body := range instruction {
		if !updateOperators[operator] {
			return nil, errInvalidUpdateInstruction("%q is not a recognized update operator", operator)
		}
		fields, ok := body.(map[string]interface{})
		if !ok {
			return nil, errInvalidUpdateInstruction("%q expects an object of field paths to values", operator)
		}
		for path, value := range fields {
			op, err := compileUpdateOp(model, operator, path, value)
			if err != nil {
				return nil, err
			}
			ops = append(ops, *op)
		}
	}
	return ops, nil
}

func compileUpdateOp(model *Model, operator, path string, value interface{}) (*UpdateOp, *ClientError) {
	fo, err := getFieldObject(model, path)
	if err != nil {
		return nil, err
	}
	if fo.Field.Immutable() && fo.Field.Creator() == CreatorUser {
		return nil, errInvalidUpdateInstruction("field %q is immutable and cannot be updated", path)
	}

	switch operator {
	case "$set":
		coerced, cerr := coerceUpdateValue(fo, value)
		if cerr != nil {
			return nil, cerr
		}
		return &UpdateOp{Operator: operator, Path: path, Value: coerced}, nil

	case "$unset":
		if fo.Field.Required() {
			return nil, errInvalidUpdateInstruction("field %q is required and cannot be unset", path)
		}
		return &UpdateOp{Operator: operator, Path: path}, nil

	case "$inc", "$mul", "$min", "$max":
		switch fo.Field.Kind() {
		case KindInteger, KindDecimal, KindMonetary:
		default:
			return nil, errInvalidUpdateInstruction("%q requires a numeric field, field %q is %s", operator, path, fo.Field.Kind())
		}
		if !IsFiniteNumber(value) {
			return nil, errInvalidUpdateInstruction("%q requires a finite numeric operand for field %q", operator, path)
		}
		return &UpdateOp{Operator: operator, Path: path, Value: value}, nil

	case "$push":
		coerced, cerr := coercePushValue(fo, value)
		if cerr != nil {
			return nil, cerr
		}
		return &UpdateOp{Operator: operator, Path: path, Value: coerced}, nil

	case "$pull":
		if fo.Field.Kind() != KindObjectList && fo.Field.Kind() != KindBasicValuesList {
			return nil, errInvalidUpdateInstruction("%q requires an array field, field %q is %s", operator, path, fo.Field.Kind())
		}
		var condModel *Model
		if ol, ok := fo.Field.(*ObjectListField); ok {
			condModel = ol.SubModel
		} else {
			condModel = model
		}
		cond, cerr := parseWhere(condModel, value, ConditionPull)
		if cerr != nil {
			return nil, cerr
		}
		return &UpdateOp{Operator: operator, Path: path, Condition: cond}, nil

	case "$pop", "$shift":
		switch fo.Field.Kind() {
		case KindObjectList, KindBasicValuesList:
		default:
			return nil, errInvalidUpdateInstruction("%q requires an array field, field %q is %s", operator, path, fo.Field.Kind())
		}
		direction := 1
		if operator == "$shift" {
			direction = -1
		}
		return &UpdateOp{Operator: operator, Path: path, Direction: direction}, nil

	default:
		return nil, errInvalidUpdateInstruction("%q is not a recognized update operator", operator)
	}
}

// coerceUpdateValue reuses the field's own update-time Prepare pass against a
// throwaway record so $set goes through the exact same validation every direct
// update does (spec.md §4.4 "shared create/update policy").
func coerceUpdateValue(fo *fieldObject, value interface{}) (interface{}, *ClientError) {
	ve := &ValidationErrors{}
	out := make(map[string]interface{}, 1)
	fo.Field.Prepare(fo.Owner, value, true, out, ve, false, nil)
	if ve.hasErrors() {
		return nil, newError(CodeInvalidValue, ve.Errors[0].Code)
	}
	return out[fo.Field.Name()], nil
}

// coercePushValue accepts a single value or the {$each: [...]} form (spec.md §4.7
// "$push ... accepts a single value or {$each:[..]}", §8 scenario 4). Each element
// of $each is coerced independently through coerceSinglePushItem.
func coercePushValue(fo *fieldObject, value interface{}) (interface{}, *ClientError) {
	if wrapper, ok := value.(map[string]interface{}); ok {
		if each, hasEach := wrapper["$each"]; hasEach && len(wrapper) == 1 {
			items, ok := each.([]interface{})
			if !ok {
				return nil, newError(CodeInvalidValue, "push_each_requires_array")
			}
			out := make([]interface{}, 0, len(items))
			for _, item := range items {
				coerced, cerr := coerceSinglePushItem(fo, item)
				if cerr != nil {
					return nil, cerr
				}
				out = append(out, coerced)
			}
			return map[string]interface{}{"$each": out}, nil
		}
	}
	return coerceSinglePushItem(fo, value)
}

func coerceSinglePushItem(fo *fieldObject, value interface{}) (interface{}, *ClientError) {
	switch f := fo.Field.(type) {
	case *ObjectListField:
		obj, ok := value.(map[string]interface{})
		if !ok {
			return nil, newError(CodeInvalidValue, "invalid_object_list_item")
		}
		ve := &ValidationErrors{}
		prepared := f.SubModel.PrepareFieldValues(obj, true, ve, nil)
		if ve.hasErrors() {
			return nil, newError(CodeInvalidValue, ve.Errors[0].Code)
		}
		return prepared, nil
	case *BasicValuesListField:
		if !isPrimitiveScalar(value) {
			return nil, newError(CodeInvalidValue, "basic_values_list_item_not_primitive")
		}
		return value, nil
	default:
		return nil, newError(CodeInvalidValue, "invalid_push_target")
	}
}
