package engine

// EnumField restricts a text value to a fixed set of allowed values (spec.md §4.4 "Enum").
type EnumField struct {
	BaseField
	Values []string
}

func NewEnumField(name string, required bool, values []string) *EnumField {
	return &EnumField{BaseField: BaseField{name: name, queryPath: name, kind: KindEnum, creator: CreatorUser, required: required}, Values: values}
}

func (f *EnumField) ReturnType() ReturnType { return ReturnText }

func (f *EnumField) isAllowed(s string) bool {
	for _, v := range f.Values {
		if v == s {
			return true
		}
	}
	return false
}

func (f *EnumField) coerce(v interface{}) (interface{}, *ClientError) {
	s, ok := v.(string)
	if !ok || !f.isAllowed(s) {
		return nil, newError(CodeInvalidValue, "invalid_enum_value")
	}
	return s, nil
}

func (f *EnumField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *EnumField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }
