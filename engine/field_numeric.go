package engine

import "github.com/spf13/cast"

// BooleanField is a true/false value (spec.md §4.4 "Boolean").
type BooleanField struct {
	BaseField
}

func NewBooleanField(name string, required bool) *BooleanField {
	return &BooleanField{BaseField{name: name, queryPath: name, kind: KindBoolean, creator: CreatorUser, required: required}}
}

func (f *BooleanField) ReturnType() ReturnType { return ReturnBoolean }

func (f *BooleanField) coerce(v interface{}) (interface{}, *ClientError) {
	b, ok := v.(bool)
	if !ok {
		return nil, newError(CodeInvalidValue, "invalid_boolean_value")
	}
	return b, nil
}

func (f *BooleanField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *BooleanField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// IntegerField is a whole number (spec.md §4.4 "Integer").
type IntegerField struct {
	BaseField
}

func NewIntegerField(name string, required bool) *IntegerField {
	return &IntegerField{BaseField{name: name, queryPath: name, kind: KindInteger, creator: CreatorUser, required: required}}
}

func (f *IntegerField) ReturnType() ReturnType { return ReturnNumber }

func (f *IntegerField) coerce(v interface{}) (interface{}, *ClientError) {
	if !IsInteger(v) {
		return nil, newError(CodeInvalidValue, "invalid_integer_value")
	}
	i, err := cast.ToInt64E(v)
	if err != nil {
		return nil, newError(CodeInvalidValue, "invalid_integer_value")
	}
	return i, nil
}

func (f *IntegerField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *IntegerField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// DecimalField is an arbitrary-precision-ish floating number (spec.md §4.4 "Decimal").
type DecimalField struct {
	BaseField
}

func NewDecimalField(name string, required bool) *DecimalField {
	return &DecimalField{BaseField{name: name, queryPath: name, kind: KindDecimal, creator: CreatorUser, required: required}}
}

func (f *DecimalField) ReturnType() ReturnType { return ReturnNumber }

func (f *DecimalField) coerce(v interface{}) (interface{}, *ClientError) {
	if !IsFiniteNumber(v) {
		return nil, newError(CodeInvalidValue, "invalid_decimal_value")
	}
	d, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, newError(CodeInvalidValue, "invalid_decimal_value")
	}
	return d, nil
}

func (f *DecimalField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *DecimalField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// MonetaryField is Decimal denominated in a fixed currency, stored as minor units
// (spec.md §4.4 "Monetary"): the raw value is interpreted as major units and scaled
// up so no fractional cent is lost to floating point on the wire.
type MonetaryField struct {
	BaseField
	Currency string
}

func NewMonetaryField(name string, required bool, currency string) *MonetaryField {
	return &MonetaryField{BaseField: BaseField{name: name, queryPath: name, kind: KindMonetary, creator: CreatorUser, required: required}, Currency: currency}
}

func (f *MonetaryField) ReturnType() ReturnType { return ReturnNumber }

func (f *MonetaryField) coerce(v interface{}) (interface{}, *ClientError) {
	if !IsFiniteNumber(v) {
		return nil, newError(CodeInvalidValue, "invalid_monetary_value")
	}
	d, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, newError(CodeInvalidValue, "invalid_monetary_value")
	}
	return int64(d*100 + 0.5), nil
}

func (f *MonetaryField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *MonetaryField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	return value, nil
}
