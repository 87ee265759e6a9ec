package engine

// ModelType distinguishes a top-level model from a nested sub-model (spec.md §3
// "Model descriptor"). Sub-models are only valid under MongoDB (Glossary).
type ModelType int

const (
	ModelTopLevel ModelType = iota
	ModelObject
	ModelObjectList
)

// Model is a named collection of fields (spec.md §4.5).
type Model struct {
	name            string
	schema          string
	iid             string
	modelType       ModelType
	db              *Database
	parent          *Model
	parentHierarchy []string

	fields     map[string]Field
	fieldOrder []string

	ts *timestampCell
}

func newModel(name string, modelType ModelType, db *Database, parent *Model) *Model {
	m := &Model{
		name:      name,
		modelType: modelType,
		db:        db,
		parent:    parent,
		fields:    make(map[string]Field),
	}
	if parent != nil {
		m.ts = parent.ts
	} else {
		m.ts = &timestampCell{}
	}
	return m
}

// Name returns the model's declared name.
func (m *Model) Name() string { return m.name }

// IID returns the model's stable internal id.
func (m *Model) IID() string { return m.iid }

// Schema returns the model's optional SQL schema.
func (m *Model) Schema() string { return m.schema }

// Parent returns the enclosing model for a nested object/object-list sub-model, or
// nil for a top-level model.
func (m *Model) Parent() *Model { return m.parent }

// Database returns the owning database.
func (m *Model) Database() *Database { return m.db }

// Dialect is a convenience accessor for m.Database().Dialect().
func (m *Model) Dialect() Dialect { return m.db.Dialect() }

// root walks the parent chain to the top-level model.
func (m *Model) root() *Model {
	cur := m
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Timestamp returns the current value of the per-top-level-model timestamp cell,
// creating it on first read (spec.md §3 "Lifecycle").
func (m *Model) Timestamp() interface{} {
	return m.root().ts.get()
}

// ResetTimestamp rebinds the timestamp cell to now; called at the start of every
// top-level create/update entry point (spec.md §3 "Lifecycle").
func (m *Model) ResetTimestamp() {
	m.root().ts.reset()
}

func (m *Model) addField(f Field) {
	m.fields[f.Name()] = f
	m.fieldOrder = append(m.fieldOrder, f.Name())
}

// GetField returns a declared field by name, including synthetic aliases added
// dynamically by DBAction's grouping-model builder (spec.md §4.5).
func (m *Model) GetField(name string) (Field, bool) {
	f, ok := m.fields[name]
	return f, ok
}

// Fields returns the model's fields in declaration order.
func (m *Model) Fields() []Field {
	out := make([]Field, 0, len(m.fieldOrder))
	for _, name := range m.fieldOrder {
		out = append(out, m.fields[name])
	}
	return out
}

// HasSearchIndex reports whether any field is a searchable text/rich-text field
// (spec.md §8 scenario 6, "not_searchable_model").
func (m *Model) HasSearchIndex() bool {
	for _, f := range m.Fields() {
		if f.Kind() == KindRichText {
			if rt, ok := f.(*RichTextField); ok && rt.Searchable {
				return true
			}
		}
		if f.Kind() == KindText {
			return true
		}
	}
	return false
}

// PrepareFieldValues is the recursive record validator (spec.md §4.5): it iterates
// fields in order, invoking Prepare, and returns the coerced record. If errors were
// collected (and this is the top-level call, index == nil), the caller raises
// CodeValidationErrors with the accumulated detail list.
func (m *Model) PrepareFieldValues(data map[string]interface{}, isCreate bool, ve *ValidationErrors, index *int) map[string]interface{} {
	processed := make(map[string]interface{}, len(m.fieldOrder))
	for _, name := range m.fieldOrder {
		f := m.fields[name]
		raw, present := data[name]
		f.Prepare(m, raw, present, processed, ve, isCreate, index)
	}
	return processed
}
