package engine

import "encoding/base64"

// BinaryField holds arbitrary bytes, accepted as a base64-encoded string
// (spec.md §4.4 "Binary").
type BinaryField struct {
	BaseField
}

func NewBinaryField(name string, required bool) *BinaryField {
	return &BinaryField{BaseField{name: name, queryPath: name, kind: KindBinary, creator: CreatorUser, required: required}}
}

func (f *BinaryField) ReturnType() ReturnType { return ReturnBinary }

func (f *BinaryField) coerce(v interface{}) (interface{}, *ClientError) {
	switch t := v.(type) {
	case []byte:
		return t, nil
	case string:
		decoded, err := base64.StdEncoding.DecodeString(t)
		if err != nil {
			return nil, newError(CodeInvalidValue, "invalid_binary_value")
		}
		return decoded, nil
	default:
		return nil, newError(CodeInvalidValue, "invalid_binary_value")
	}
}

func (f *BinaryField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *BinaryField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	b, ok := value.([]byte)
	if !ok {
		return nil, errInvalidField("field %q holds an invalid binary value", f.name)
	}
	if dialect == DialectMongoDB {
		return b, nil
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// JSONField holds an arbitrary JSON-shaped value: object, array, or any Static
// primitive (spec.md §4.4 "JSON").
type JSONField struct {
	BaseField
}

func NewJSONField(name string, required bool) *JSONField {
	return &JSONField{BaseField{name: name, queryPath: name, kind: KindJSON, creator: CreatorUser, required: required}}
}

func (f *JSONField) ReturnType() ReturnType { return ReturnJSON }

func (f *JSONField) coerce(v interface{}) (interface{}, *ClientError) {
	switch v.(type) {
	case map[string]interface{}, []interface{}, string, float64, int, int64, bool, nil:
		return v, nil
	default:
		return nil, newError(CodeInvalidValue, "invalid_json_value")
	}
}

func (f *JSONField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *JSONField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }
