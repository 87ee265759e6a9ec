package engine

import "strings"

// fieldObject is the result of resolving a dotted field path against a model:
// the leaf Field, the model that owns it, and whether the path crossed into an
// array (ObjectList/BasicValuesList), which matters for update-operator validity
// and for deciding whether MongoDB needs a positional "$"/arrayFilters placeholder
// (spec.md §4.7 "getFieldObject").
type fieldObject struct {
	Field       Field
	Owner       *Model
	Path        []string
	CrossedList bool
}

// getFieldObject resolves a dotted path down to its leaf field, recursing into
// Object/ObjectList sub-models the same way NewFieldExpression does, but also
// reporting whether the resolution crossed an array boundary (spec.md §4.7).
func getFieldObject(model *Model, path string) (*fieldObject, *ClientError) {
	segments := strings.Split(path, ".")
	cur := model
	crossedList := false
	var leaf Field
	for i, seg := range segments {
		f, ok := cur.GetField(seg)
		if !ok {
			return nil, errInvalidField("field path %q does not resolve against model %q", path, model.Name())
		}
		leaf = f
		if i == len(segments)-1 {
			break
		}
		switch f.Kind() {
		case KindObject:
			obj, ok := f.(*ObjectField)
			if !ok {
				return nil, errInvalidField("field %q is not a navigable object", f.Name())
			}
			cur = obj.SubModel
		case KindObjectList:
			ol, ok := f.(*ObjectListField)
			if !ok {
				return nil, errInvalidField("field %q is not a navigable object list", f.Name())
			}
			cur = ol.SubModel
			crossedList = true
		case KindBasicValuesList:
			crossedList = true
			return nil, errInvalidField("field %q is a scalar array and cannot be navigated further", f.Name())
		default:
			return nil, errInvalidField("field %q does not accept a nested path segment", f.Name())
		}
	}
	return &fieldObject{Field: leaf, Owner: cur, Path: segments, CrossedList: crossedList}, nil
}
