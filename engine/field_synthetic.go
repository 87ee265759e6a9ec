package engine

// JoinField is a synthetic alias Field standing in for a field reached through a
// join (spec.md §4.5, §4.7 "Join resolution"). DBAction does not add JoinFields to
// any model: SetJoin records joins as JoinSpec entries, and the grouping model holds
// Text and Integer fields. It
// is query-only: Prepare is never invoked against it, since joined data never flows
// through a create/update payload.
type JoinField struct {
	BaseField
	Target Field
	Alias  string
}

func NewJoinField(alias string, target Field) *JoinField {
	return &JoinField{
		BaseField: BaseField{name: alias, queryPath: target.QueryPath(), kind: KindJoin, creator: CreatorUser},
		Target:    target,
		Alias:     alias,
	}
}

func (f *JoinField) ReturnType() ReturnType { return f.Target.ReturnType() }

func (f *JoinField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	pushFieldError(ve, f.name, "join_field_not_writable", index, raw)
}

func (f *JoinField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	return f.Target.Encode(dialect, value)
}

// ArrayFilterFieldField is the synthetic per-element placeholder an array-filter
// condition resolves against (spec.md §4.2 "ArrayFilterField", §4.7 array-filter
// conditionals). It stands for "the current element of the enclosing array field"
// and carries the element's declared return type rather than the array's.
type ArrayFilterFieldField struct {
	BaseField
	ElementReturnType ReturnType
}

func NewArrayFilterFieldField(name string, elementReturnType ReturnType) *ArrayFilterFieldField {
	return &ArrayFilterFieldField{
		BaseField:         BaseField{name: name, queryPath: name, kind: KindArrayFilter, creator: CreatorUser},
		ElementReturnType: elementReturnType,
	}
}

func (f *ArrayFilterFieldField) ReturnType() ReturnType { return f.ElementReturnType }

func (f *ArrayFilterFieldField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	pushFieldError(ve, f.name, "array_filter_field_not_writable", index, raw)
}

func (f *ArrayFilterFieldField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	return value, nil
}
