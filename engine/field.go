package engine

// FieldKind enumerates the field kinds spec.md §4.4 names (~23 real kinds, plus the
// two synthetic kinds used only inside an Expression tree).
type FieldKind int

const (
	KindID FieldKind = iota
	KindText
	KindRichText
	KindEncryptedText
	KindEmail
	KindLink
	KindPhone
	KindBoolean
	KindInteger
	KindDecimal
	KindMonetary
	KindCreatedAt
	KindUpdatedAt
	KindDateTime
	KindDate
	KindTime
	KindEnum
	KindGeoPoint
	KindBinary
	KindJSON
	KindReference
	KindBasicValuesList
	KindObject
	KindObjectList
	KindJoin
	KindArrayFilter
)

func (k FieldKind) String() string {
	names := [...]string{
		"id", "text", "richText", "encryptedText", "email", "link", "phone",
		"boolean", "integer", "decimal", "monetary", "createdAt", "updatedAt",
		"datetime", "date", "time", "enum", "geoPoint", "binary", "json",
		"reference", "basicValuesList", "object", "objectList", "join", "arrayFilter",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// FieldCreator distinguishes user-supplied fields from system-managed ones
// (spec.md §3 field descriptor: "creator ∈ {user, system}").
type FieldCreator int

const (
	CreatorUser FieldCreator = iota
	CreatorSystem
)

// nowSentinel is the TypeScript-source sentinel default value for temporal fields
// (spec.md §3: "the sentinel \"$$NOW\" for temporal fields").
const nowSentinel = "$$NOW"

// Field is the capability surface every field kind implements (spec.md §4.4).
type Field interface {
	Name() string
	QueryPath() string
	Kind() FieldKind
	ReturnType() ReturnType
	Creator() FieldCreator
	Required() bool
	Immutable() bool
	HasDefault() bool

	// Prepare delegates to prepareForCreate or prepareForUpdate (spec.md §4.4).
	// present distinguishes "missing from payload" from "explicitly null".
	// On success the coerced, dialect-agnostic value is written into processedData[Name()].
	Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int)

	// Encode converts an already-validated value into its dialect-specific wire
	// representation for the adapter (spec.md §4.4 per-kind "backend encoding").
	Encode(dialect Dialect, value interface{}) (interface{}, error)
}

// BaseField holds the config every field descriptor shares (spec.md §3).
type BaseField struct {
	name         string
	queryPath    string
	kind         FieldKind
	creator      FieldCreator
	required     bool
	immutable    bool
	hasDefault   bool
	defaultValue interface{}
}

func (b *BaseField) Name() string          { return b.name }
func (b *BaseField) QueryPath() string     { return b.queryPath }
func (b *BaseField) Kind() FieldKind       { return b.kind }
func (b *BaseField) Creator() FieldCreator { return b.creator }
func (b *BaseField) Required() bool        { return b.required }
func (b *BaseField) Immutable() bool       { return b.immutable }
func (b *BaseField) HasDefault() bool      { return b.hasDefault }

// resolvedDefault returns the field's default value, resolving the "$$NOW" sentinel
// against the owning model's current timestamp (spec.md §3 "Lifecycle").
func (b *BaseField) resolvedDefault(model *Model) interface{} {
	if !b.hasDefault {
		return nil
	}
	if s, ok := b.defaultValue.(string); ok && s == nowSentinel {
		return model.Timestamp()
	}
	return b.defaultValue
}

// --- shared prepare-flow helpers, reused by every concrete field kind file ---

func isNullish(v interface{}, present bool) bool {
	return !present || v == nil
}

func pushFieldError(ve *ValidationErrors, field string, code string, index *int, value interface{}) {
	ve.push(FieldErrorDetail{Origin: "field", Code: code, Field: field, Index: index, Value: value})
}

// prepareMissingOrNullForCreate implements the create-time branch of spec.md §4.4's
// shared policy common to every field kind. coerce is invoked only when a concrete
// raw value must still be validated (neither the default nor the system-default path
// applied). systemDefault is nil for fields with no create-time self-assignment.
func prepareMissingOrNullForCreate(
	b *BaseField, model *Model, raw interface{}, present bool,
	processedData map[string]interface{}, ve *ValidationErrors, index *int,
	systemDefault func() interface{},
	coerce func(interface{}) (interface{}, *ClientError),
) {
	if isNullish(raw, present) {
		if b.hasDefault {
			processedData[b.name] = b.resolvedDefault(model)
			return
		}
		if b.required {
			if b.creator == CreatorUser {
				pushFieldError(ve, b.name, "missing_required_field_value", index, nil)
				return
			}
			if systemDefault != nil {
				processedData[b.name] = systemDefault()
				return
			}
		}
		if systemDefault != nil && b.creator == CreatorSystem {
			processedData[b.name] = systemDefault()
		}
		return
	}

	value, err := coerce(raw)
	if err != nil {
		pushFieldError(ve, b.name, err.Message, index, raw)
		return
	}
	processedData[b.name] = value
}

// prepareForUpdateCommon implements the update-time branch of spec.md §4.4's shared
// policy: immutable user fields with a raw value are ignored; system fields only
// auto-update for updatedAt (handled by the caller passing a non-nil autoUpdate); explicit
// null unsets (or errors, if required).
func prepareForUpdateCommon(
	b *BaseField, raw interface{}, present bool,
	processedData map[string]interface{}, ve *ValidationErrors, index *int,
	autoUpdate func() interface{},
	coerce func(interface{}) (interface{}, *ClientError),
) {
	if !present {
		if autoUpdate != nil {
			processedData[b.name] = autoUpdate()
		}
		return
	}

	if b.immutable && b.creator == CreatorUser {
		return
	}

	if raw == nil {
		if b.required {
			pushFieldError(ve, b.name, "invalid_required_field_value", index, nil)
			return
		}
		processedData[b.name] = nil
		return
	}

	value, err := coerce(raw)
	if err != nil {
		pushFieldError(ve, b.name, err.Message, index, raw)
		return
	}
	processedData[b.name] = value
}
