package engine

// BasicValuesListField is an array whose items are restricted to primitive scalars
// (spec.md §4.4 "BasicValuesList"): no nested objects or arrays.
type BasicValuesListField struct {
	BaseField
}

func NewBasicValuesListField(name string, required bool) *BasicValuesListField {
	return &BasicValuesListField{BaseField{name: name, queryPath: name, kind: KindBasicValuesList, creator: CreatorUser, required: required}}
}

func (f *BasicValuesListField) ReturnType() ReturnType { return ReturnArray }

func isPrimitiveScalar(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return false
	default:
		return true
	}
}

func (f *BasicValuesListField) coerce(v interface{}) (interface{}, *ClientError) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, newError(CodeInvalidValue, "invalid_basic_values_list_value")
	}
	for _, item := range arr {
		if !isPrimitiveScalar(item) {
			return nil, newError(CodeInvalidValue, "basic_values_list_item_not_primitive")
		}
	}
	return arr, nil
}

func (f *BasicValuesListField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *BasicValuesListField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	return value, nil
}
