package engine

import "fmt"

// Code is a well-known client error category, see spec.md §7.
type Code string

const (
	CodeInvalidValue             Code = "invalid_value"
	CodeInvalidParameter         Code = "invalid_parameter"
	CodeInvalidField             Code = "invalid_field"
	CodeInvalidJoin              Code = "invalid_join"
	CodeInvalidExpression        Code = "invalid_expression"
	CodeInvalidUpdateInstruction Code = "invalid_update_instruction"
	CodeUnsupportedFunction      Code = "unsupported_function"
	CodeMissingInputParameter    Code = "missing_input_parameter"
	CodeValidationErrors         Code = "validation_errors"
	CodeNotSearchableModel       Code = "not_searchable_model"

	CodeDatabaseNotFound Code = "database_not_found"
	CodeModelNotFound    Code = "model_not_found"
	CodeAdapterNotFound  Code = "adapter_not_found"
	CodeStorageNotFound  Code = "storage_not_found"
	CodeQueueNotFound    Code = "queue_not_found"
	CodeCacheNotFound    Code = "cache_not_found"
	CodeFunctionNotFound Code = "function_not_found"
)

// FieldErrorDetail is a single field-level validation failure, per spec.md §7:
// "origin, code, details.field, details.index?, details.value?".
type FieldErrorDetail struct {
	Origin string      `json:"origin"`
	Code   string      `json:"code"`
	Field  string      `json:"field"`
	Index  *int        `json:"index,omitempty"`
	Value  interface{} `json:"value,omitempty"`
}

// ClientError is the tagged error every validation and boundary failure raises.
type ClientError struct {
	Code    Code
	Message string
	Details []FieldErrorDetail
}

func (e *ClientError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%d detail(s))", e.Code, e.Message, len(e.Details))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is lets errors.Is match on Code alone.
func (e *ClientError) Is(target error) bool {
	other, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return other.Code == e.Code
}

func newError(code Code, format string, args ...interface{}) *ClientError {
	return &ClientError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// --- Expression / field resolution errors ---

func errInvalidField(format string, args ...interface{}) *ClientError {
	return newError(CodeInvalidField, format, args...)
}

func errInvalidJoin(format string, args ...interface{}) *ClientError {
	return newError(CodeInvalidJoin, format, args...)
}

func errInvalidExpression(format string, args ...interface{}) *ClientError {
	return newError(CodeInvalidExpression, format, args...)
}

func errInvalidParameter(format string, args ...interface{}) *ClientError {
	return newError(CodeInvalidParameter, format, args...)
}

func errUnsupportedFunction(name string, dialect Dialect) *ClientError {
	return newError(CodeUnsupportedFunction, "function %q is not supported on dialect %q", name, dialect)
}

func errInvalidUpdateInstruction(format string, args ...interface{}) *ClientError {
	return newError(CodeInvalidUpdateInstruction, format, args...)
}

func errMissingInputParameter(name string) *ClientError {
	return newError(CodeMissingInputParameter, "missing required parameter %q", name)
}

// --- Record-level validation errors ---

// ValidationErrors aggregates per-field failures collected while preparing one record.
type ValidationErrors struct {
	Errors []FieldErrorDetail
}

func (v *ValidationErrors) push(d FieldErrorDetail) {
	v.Errors = append(v.Errors, d)
}

func (v *ValidationErrors) hasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) asClientError() *ClientError {
	return &ClientError{
		Code:    CodeValidationErrors,
		Message: fmt.Sprintf("%d field(s) failed validation", len(v.Errors)),
		Details: v.Errors,
	}
}

func intPtr(i int) *int { return &i }
