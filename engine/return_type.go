package engine

// ReturnType is one of the seventeen abstract types used to type-check function
// parameters independent of dialect (spec.md §3/§4.2, Glossary).
type ReturnType int

const (
	ReturnNumber ReturnType = iota
	ReturnText
	ReturnBoolean
	ReturnObject
	ReturnDateTime
	ReturnNull
	ReturnBinary
	ReturnJSON
	ReturnID
	ReturnArray
	ReturnGeoPoint
	ReturnUndefined
	ReturnAny
	ReturnPrimitive
	ReturnDate
	ReturnTime
	ReturnStaticBoolean
)

func (r ReturnType) String() string {
	switch r {
	case ReturnNumber:
		return "NUMBER"
	case ReturnText:
		return "TEXT"
	case ReturnBoolean:
		return "BOOLEAN"
	case ReturnObject:
		return "OBJECT"
	case ReturnDateTime:
		return "DATETIME"
	case ReturnNull:
		return "NULL"
	case ReturnBinary:
		return "BINARY"
	case ReturnJSON:
		return "JSON"
	case ReturnID:
		return "ID"
	case ReturnArray:
		return "ARRAY"
	case ReturnGeoPoint:
		return "GEOPOINT"
	case ReturnUndefined:
		return "UNDEFINED"
	case ReturnAny:
		return "ANY"
	case ReturnPrimitive:
		return "PRIMITIVE"
	case ReturnDate:
		return "DATE"
	case ReturnTime:
		return "TIME"
	case ReturnStaticBoolean:
		return "STATICBOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// nonPrimitiveReturnTypes excludes {object, array, binary, json} from PRIMITIVE's
// relaxed acceptance (spec.md §3 invariants).
var nonPrimitiveReturnTypes = map[ReturnType]bool{
	ReturnObject: true,
	ReturnArray:  true,
	ReturnBinary: true,
	ReturnJSON:   true,
}

// Assignable reports whether an expression whose return type is actual satisfies a
// function parameter declared as declared, applying spec.md §3's relaxations:
// ANY accepts all; PRIMITIVE accepts any non-{object,array,binary,json}; DATE/DATETIME
// are interchangeable; STATICBOOLEAN accepts a BOOLEAN return. The expression kind
// is not checked here, and FunctionExpression.Validate does not check it either: a
// non-Static operand returning BOOLEAN satisfies a STATICBOOLEAN parameter.
func Assignable(declared, actual ReturnType) bool {
	if declared == ReturnAny {
		return true
	}
	if declared == ReturnPrimitive {
		return !nonPrimitiveReturnTypes[actual]
	}
	if declared == ReturnDate || declared == ReturnDateTime {
		return actual == ReturnDate || actual == ReturnDateTime
	}
	if declared == ReturnStaticBoolean {
		return actual == ReturnBoolean
	}
	return declared == actual
}
