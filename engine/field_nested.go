package engine

// ObjectField is a nested sub-document validated against its own Model (spec.md
// §4.4 "Object", §3 "Lifecycle": only valid under MongoDB). SubModel is assigned by
// Database once the nested model is registered, after both models exist.
type ObjectField struct {
	BaseField
	SubModel *Model
}

func NewObjectField(name string, required bool) *ObjectField {
	return &ObjectField{BaseField: BaseField{name: name, queryPath: name, kind: KindObject, creator: CreatorUser, required: required}}
}

func (f *ObjectField) ReturnType() ReturnType { return ReturnObject }

func (f *ObjectField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		if isNullish(raw, present) {
			if f.required {
				pushFieldError(ve, f.name, "missing_required_field_value", index, nil)
			}
			return
		}
		obj, ok := raw.(map[string]interface{})
		if !ok {
			pushFieldError(ve, f.name, "invalid_object_value", index, raw)
			return
		}
		processedData[f.name] = f.SubModel.PrepareFieldValues(obj, true, ve, index)
		return
	}

	// Update: whole-object replacement is not allowed; callers must address nested
	// fields by dotted path through DBAction's update-instruction parser instead.
	if present {
		pushFieldError(ve, f.name, "direct_object_assignment_not_allowed", index, nil)
	}
}

func (f *ObjectField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// ObjectListField is an array of nested sub-documents, each validated against the
// same Model (spec.md §4.4 "ObjectList").
type ObjectListField struct {
	BaseField
	SubModel *Model
}

func NewObjectListField(name string, required bool) *ObjectListField {
	return &ObjectListField{BaseField: BaseField{name: name, queryPath: name, kind: KindObjectList, creator: CreatorUser, required: required}}
}

func (f *ObjectListField) ReturnType() ReturnType { return ReturnArray }

func (f *ObjectListField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		if isNullish(raw, present) {
			if f.required {
				pushFieldError(ve, f.name, "missing_required_field_value", index, nil)
			}
			return
		}
		arr, ok := raw.([]interface{})
		if !ok {
			pushFieldError(ve, f.name, "invalid_object_list_value", index, raw)
			return
		}
		out := make([]interface{}, 0, len(arr))
		for i, item := range arr {
			obj, ok := item.(map[string]interface{})
			if !ok {
				itemIdx := i
				pushFieldError(ve, f.name, "invalid_object_list_item", &itemIdx, item)
				continue
			}
			itemIdx := i
			out = append(out, f.SubModel.PrepareFieldValues(obj, true, ve, &itemIdx))
		}
		processedData[f.name] = out
		return
	}

	if present {
		pushFieldError(ve, f.name, "direct_object_assignment_not_allowed", index, nil)
	}
}

func (f *ObjectListField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	return value, nil
}
