package engine

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValidID reports whether v is an acceptable id value for the given dialect, per spec.md §4.1.
// MongoDB requires a well-formed 24-hex/byte identifier; the SQL dialects accept any
// string or integer.
func IsValidID(dialect Dialect, v interface{}) bool {
	switch dialect {
	case DialectMongoDB:
		switch t := v.(type) {
		case primitive.ObjectID:
			return !t.IsZero()
		case string:
			_, err := primitive.ObjectIDFromHex(t)
			return err == nil
		default:
			return false
		}
	default:
		return IsKey(v)
	}
}

// NewID constructs a native id value for the given dialect, per spec.md §4.1
// ("identifier construction wraps the dialect's native id constructor").
func NewID(dialect Dialect) interface{} {
	if dialect == DialectMongoDB {
		return primitive.NewObjectID()
	}
	return uuid.NewString()
}

// CoerceID converts a raw id value to the dialect's native representation, used by
// the Id field kind's prepareForCreate (spec.md §4.4).
func CoerceID(dialect Dialect, raw interface{}) (interface{}, bool) {
	if dialect != DialectMongoDB {
		if IsKey(raw) {
			return raw, true
		}
		return nil, false
	}
	switch t := raw.(type) {
	case primitive.ObjectID:
		return t, true
	case string:
		oid, err := primitive.ObjectIDFromHex(t)
		if err != nil {
			return nil, false
		}
		return oid, true
	default:
		return nil, false
	}
}
