package engine

// TextField is plain short text (spec.md §4.4 "Text"), optionally bounded by MaxLength.
type TextField struct {
	BaseField
	MaxLength int // 0 means unbounded
}

func NewTextField(name string, required bool, maxLength int) *TextField {
	return &TextField{BaseField: BaseField{name: name, queryPath: name, kind: KindText, creator: CreatorUser, required: required}, MaxLength: maxLength}
}

func (f *TextField) ReturnType() ReturnType { return ReturnText }

func (f *TextField) coerce(v interface{}) (interface{}, *ClientError) {
	s, ok := v.(string)
	if !ok {
		return nil, newError(CodeInvalidValue, "invalid_text_value")
	}
	if f.MaxLength > 0 && len(s) > f.MaxLength {
		return nil, newError(CodeInvalidValue, "text_exceeds_max_length")
	}
	return s, nil
}

func (f *TextField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *TextField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// RichTextField is long-form text that may participate in full-text search
// (spec.md §4.4 "RichText", §8 scenario 6 "not_searchable_model").
type RichTextField struct {
	BaseField
	Searchable bool
}

func NewRichTextField(name string, required, searchable bool) *RichTextField {
	return &RichTextField{BaseField: BaseField{name: name, queryPath: name, kind: KindRichText, creator: CreatorUser, required: required}, Searchable: searchable}
}

func (f *RichTextField) ReturnType() ReturnType { return ReturnText }

func (f *RichTextField) coerce(v interface{}) (interface{}, *ClientError) {
	s, ok := v.(string)
	if !ok {
		return nil, newError(CodeInvalidValue, "invalid_text_value")
	}
	return s, nil
}

func (f *RichTextField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *RichTextField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	return value, nil
}

// EncryptedTextField is text sealed at rest via HostUtils.Encrypt (spec.md §4.4
// "EncryptedText"). Validation runs against the plaintext; the stored/processed
// value is already ciphertext once Prepare returns.
type EncryptedTextField struct {
	BaseField
	Utils HostUtils
}

func NewEncryptedTextField(name string, required bool) *EncryptedTextField {
	return &EncryptedTextField{BaseField: BaseField{name: name, queryPath: name, kind: KindEncryptedText, creator: CreatorUser, required: required}, Utils: DefaultHostUtils}
}

func (f *EncryptedTextField) ReturnType() ReturnType { return ReturnText }

func (f *EncryptedTextField) coerce(v interface{}) (interface{}, *ClientError) {
	s, ok := v.(string)
	if !ok {
		return nil, newError(CodeInvalidValue, "invalid_text_value")
	}
	cipher, err := f.Utils.Encrypt(s)
	if err != nil {
		return nil, newError(CodeInvalidValue, "encryption_failed")
	}
	return cipher, nil
}

func (f *EncryptedTextField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

// Encode is a passthrough: the value is already ciphertext by the time it reaches
// the adapter. Decrypt is a read-path concern the adapter/model facade applies.
func (f *EncryptedTextField) Encode(dialect Dialect, value interface{}) (interface{}, error) {
	return value, nil
}

// EmailField is Text constrained to a valid email shape (spec.md §4.4 "Email").
type EmailField struct {
	BaseField
}

func NewEmailField(name string, required bool) *EmailField {
	return &EmailField{BaseField{name: name, queryPath: name, kind: KindEmail, creator: CreatorUser, required: required}}
}

func (f *EmailField) ReturnType() ReturnType { return ReturnText }

func (f *EmailField) coerce(v interface{}) (interface{}, *ClientError) {
	s, ok := v.(string)
	if !ok || !isValidEmail(s) {
		return nil, newError(CodeInvalidValue, "invalid_email_value")
	}
	return s, nil
}

func (f *EmailField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *EmailField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// LinkField is Text constrained to a minimal "scheme://host" shape (spec.md §4.4 "Link").
type LinkField struct {
	BaseField
}

func NewLinkField(name string, required bool) *LinkField {
	return &LinkField{BaseField{name: name, queryPath: name, kind: KindLink, creator: CreatorUser, required: required}}
}

func (f *LinkField) ReturnType() ReturnType { return ReturnText }

func (f *LinkField) coerce(v interface{}) (interface{}, *ClientError) {
	s, ok := v.(string)
	if !ok || !isValidLink(s) {
		return nil, newError(CodeInvalidValue, "invalid_link_value")
	}
	return s, nil
}

func (f *LinkField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *LinkField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }

// PhoneField is Text constrained to a loose phone-number shape (spec.md §4.4 "Phone").
type PhoneField struct {
	BaseField
}

func NewPhoneField(name string, required bool) *PhoneField {
	return &PhoneField{BaseField{name: name, queryPath: name, kind: KindPhone, creator: CreatorUser, required: required}}
}

func (f *PhoneField) ReturnType() ReturnType { return ReturnText }

func (f *PhoneField) coerce(v interface{}) (interface{}, *ClientError) {
	s, ok := v.(string)
	if !ok || !isValidPhone(s) {
		return nil, newError(CodeInvalidValue, "invalid_phone_value")
	}
	return s, nil
}

func (f *PhoneField) Prepare(model *Model, raw interface{}, present bool, processedData map[string]interface{}, ve *ValidationErrors, isCreate bool, index *int) {
	if isCreate {
		prepareMissingOrNullForCreate(&f.BaseField, model, raw, present, processedData, ve, index, nil, f.coerce)
		return
	}
	prepareForUpdateCommon(&f.BaseField, raw, present, processedData, ve, index, nil, f.coerce)
}

func (f *PhoneField) Encode(dialect Dialect, value interface{}) (interface{}, error) { return value, nil }
