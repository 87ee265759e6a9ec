package engine

// ArrayFilterFieldExpression references the synthetic per-element placeholder
// inside an array-filter condition (spec.md §4.2 "ArrayFilterField", §4.7 "array
// filter conditional"), e.g. the "$$t" MongoDB variable bound by an $elemMatch or
// $filter over the array named by ArrayPath.
type ArrayFilterFieldExpression struct {
	ArrayPath string
	Alias     string
	Element   *ArrayFilterFieldField
	SubPath   []string // optional path into the element when it is itself an object
}

// NewArrayFilterFieldExpression builds the placeholder expression for alias bound
// over the array field at arrayPath, whose items carry elementReturnType.
func NewArrayFilterFieldExpression(arrayPath, alias string, elementReturnType ReturnType, subPath []string) *ArrayFilterFieldExpression {
	return &ArrayFilterFieldExpression{
		ArrayPath: arrayPath,
		Alias:     alias,
		Element:   NewArrayFilterFieldField(alias, elementReturnType),
		SubPath:   subPath,
	}
}

func (e *ArrayFilterFieldExpression) ExpressionKind() ExpressionKind { return ExprArrayField }

func (e *ArrayFilterFieldExpression) ReturnType() ReturnType { return e.Element.ReturnType() }

func (e *ArrayFilterFieldExpression) variableRef() string {
	ref := "$$" + e.Alias
	for _, seg := range e.SubPath {
		ref += "." + seg
	}
	return ref
}

func (e *ArrayFilterFieldExpression) GetQuery(dialect Dialect, resolve resolveFieldPathFunc) (interface{}, error) {
	if err := e.Validate(dialect); err != nil {
		return nil, err
	}
	return e.variableRef(), nil
}

func (e *ArrayFilterFieldExpression) GetPullQuery(dialect Dialect, dropFieldName bool) (interface{}, error) {
	return e.GetQuery(dialect, nil)
}

func (e *ArrayFilterFieldExpression) Validate(dialect Dialect) error {
	if dialect != DialectMongoDB {
		return errInvalidExpression("array-filter field %q is only valid on the MongoDB dialect", e.Alias)
	}
	if e.Alias == "" {
		return errInvalidExpression("array-filter field requires an alias")
	}
	return nil
}

func (e *ArrayFilterFieldExpression) ValidateForPull(dialect Dialect) error {
	return e.Validate(dialect)
}

func (e *ArrayFilterFieldExpression) HasJoinFieldValues() bool { return false }
