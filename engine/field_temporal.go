package engine

import "time"

// DateTimeField is a full timestamp (spec.md §4.4 "DateTime"), parsed via HostUtils.
type DateTimeField struct {
	BaseField
	Utils HostUtils
}

func NewDateTimeField(name string, required bool) *DateTimeField {
	return &DateTimeField{BaseField: BaseField{name: name, queryPath: name, kind: KindDateTime, creator: CreatorUser, required: required}, Utils: DefaultHostUtils}
}

func (f *DateTimeField) ReturnType() ReturnType { return ReturnDateTime }

func (f *DateTimeField) coerce(v interface{}) (interface{}, *ClientError) {
	t, err := f.Utils.ParseDateTime(v)
	if err != nil {
		return nil, newError(CodeInvalidValue, "invalid_datetime_value")
	}
	return t, nil
}

func (f *DateTimeField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *DateTimeField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// DateField is a calendar date with no time-of-day component (spec.md §4.4 "Date").
type DateField struct {
	BaseField
	Utils HostUtils
}

func NewDateField(name string, required bool) *DateField {
	return &DateField{BaseField: BaseField{name: name, queryPath: name, kind: KindDate, creator: CreatorUser, required: required}, Utils: DefaultHostUtils}
}

func (f *DateField) ReturnType() ReturnType { return ReturnDate }

func (f *DateField) coerce(v interface{}) (interface{}, *ClientError) {
	t, err := f.Utils.ParseDate(v)
	if err != nil {
		return nil, newError(CodeInvalidValue, "invalid_date_value")
	}
	return t, nil
}

func (f *DateField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *DateField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// TimeField is a time-of-day with no calendar date (spec.md §4.4 "Time").
type TimeField struct {
	BaseField
	Utils HostUtils
}

func NewTimeField(name string, required bool) *TimeField {
	return &TimeField{BaseField: BaseField{name: name, queryPath: name, kind: KindTime, creator: CreatorUser, required: required}, Utils: DefaultHostUtils}
}

func (f *TimeField) ReturnType() ReturnType { return ReturnTime }

func (f *TimeField) coerce(v interface{}) (interface{}, *ClientError) {
	t, err := f.Utils.ParseTime(v)
	if err != nil {
		return nil, newError(CodeInvalidValue, "invalid_time_value")
	}
	return t, nil
}

func (f *TimeField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *TimeField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// CreatedAtField is the system-managed creation timestamp (spec.md §4.4 "CreatedAt"):
// defaults to the root model's timestamp on create, and is immutable thereafter.
type CreatedAtField struct {
	BaseField
}

func NewCreatedAtField(name string) *CreatedAtField {
	return &CreatedAtField{BaseField{
		name: name, queryPath: name, kind: KindCreatedAt,
		creator: CreatorSystem, required: true, immutable: true,
		hasDefault: true, defaultValue: nowSentinel,
	}}
}

func (f *CreatedAtField) ReturnType() ReturnType { return ReturnDateTime }

func (f *CreatedAtField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		processedData[f.name] = f.resolvedDefault(model)
		return
	}
	// Update: createdAt never changes, regardless of what the caller sent.
}

func (f *CreatedAtField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	if t, ok := value.(time.Time); ok {
		return t, nil
	}
	return value, nil
}

// UpdatedAtField is the system-managed last-modified timestamp (spec.md §4.4
// "UpdatedAt"): defaults on create, and auto-refreshes to the root model's
// timestamp on every update regardless of whether the caller supplied it.
type UpdatedAtField struct {
	BaseField
}

func NewUpdatedAtField(name string) *UpdatedAtField {
	return &UpdatedAtField{BaseField{
		name: name, queryPath: name, kind: KindUpdatedAt,
		creator: CreatorSystem, required: true,
		hasDefault: true, defaultValue: nowSentinel,
	}}
}

func (f *UpdatedAtField) ReturnType() ReturnType { return ReturnDateTime }

func (f *UpdatedAtField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		processedData[f.name] = f.resolvedDefault(model)
		return
	}
	processedData[f.name] = model.Timestamp()
}

func (f *UpdatedAtField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	if t, ok := value.(time.Time); ok {
		return t, nil
	}
	return value, nil
}
