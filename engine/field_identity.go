package engine

// IDField is the primary key field (spec.md §4.4 "Id"): "MongoDB requires a
// well-formed id... SQL accepts string or integer as-is. Only set on create."
type IDField struct {
	BaseField
}

// NewIDField constructs the implicit or explicit primary key field. Id is always
// system-creator and immutable: user payloads never carry or change it directly.
func NewIDField(name string) *IDField {
	return &IDField{BaseField{
		name: name, queryPath: name, kind: KindID,
		creator: CreatorSystem, required: true, immutable: true,
	}}
}

func (f *IDField) ReturnType() ReturnType { return ReturnID }

func (f *IDField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	dialect := model.Dialect()
	if isCreate {
		if isNullish(raw, present) {
			processedData[f.name] = NewID(dialect)
			return
		}
		v, ok := CoerceID(dialect, raw)
		if !ok {
			pushFieldError(ve, f.name, "invalid_id_value", index, raw)
			return
		}
		processedData[f.name] = v
		return
	}
	// Update: the id is never rewritten, regardless of what the caller sent.
}

func (f *IDField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	if v, ok := CoerceID(dialect, value); ok {
		return v, nil
	}
	return nil, errInvalidField("field %q holds an invalid id value for dialect %q", f.name, dialect)
}

// ReferenceField stores the id of a row/document in another model (spec.md §4.4
// "Reference"). Unlike Id, it is user-creator: callers supply the referenced id.
type ReferenceField struct {
	BaseField
	TargetModel string
}

func NewReferenceField(name, targetModel string, required bool) *ReferenceField {
	return &ReferenceField{
		BaseField:   BaseField{name: name, queryPath: name, kind: KindReference, creator: CreatorUser, required: required},
		TargetModel: targetModel,
	}
}

func (f *ReferenceField) ReturnType() ReturnType { return ReturnID }

func (f *ReferenceField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	dialect := model.Dialect()
	coerce := func(v interface{}) (interface{}, *ClientError) {
		coerced, ok := CoerceID(dialect, v)
		if !ok {
			return nil, newError(CodeInvalidValue, "invalid_reference_value")
		}
		return coerced, nil
	}
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, coerce)
}

func (f *ReferenceField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	if v, ok := CoerceID(dialect, value); ok {
		return v, nil
	}
	return nil, errInvalidField("field %q holds an invalid reference value for dialect %q", f.name, dialect)
}
