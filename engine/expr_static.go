package engine

// StaticExpression is a JSON literal: string, number, boolean, null, array of same,
// or a recursive object (spec.md §3/§4.2).
type StaticExpression struct {
	Value interface{}
}

// NewStatic infers the return type from v's Go representation.
func NewStatic(v interface{}) *StaticExpression {
	return &StaticExpression{Value: v}
}

func (s *StaticExpression) ExpressionKind() ExpressionKind { return ExprStatic }

func (s *StaticExpression) ReturnType() ReturnType {
	switch s.Value.(type) {
	case nil:
		return ReturnNull
	case bool:
		return ReturnBoolean
	case int, int32, int64, float32, float64:
		return ReturnNumber
	case string:
		return ReturnText
	case []interface{}:
		return ReturnArray
	case map[string]interface{}:
		return ReturnObject
	default:
		return ReturnUndefined
	}
}

func (s *StaticExpression) GetQuery(dialect Dialect, resolve resolveFieldPathFunc) (interface{}, error) {
	if arr, ok := s.Value.([]interface{}); ok {
		out := make(arrayValue, 0, len(arr))
		for _, item := range arr {
			v, err := NewStatic(item).GetQuery(dialect, resolve)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	if dialect == DialectMongoDB {
		return s.Value, nil
	}
	return sqlLiteral(s.Value), nil
}

func (s *StaticExpression) GetPullQuery(dialect Dialect, dropFieldName bool) (interface{}, error) {
	return s.GetQuery(dialect, nil)
}

func (s *StaticExpression) Validate(dialect Dialect) error {
	return nil
}

func (s *StaticExpression) ValidateForPull(dialect Dialect) error {
	return nil
}

func (s *StaticExpression) HasJoinFieldValues() bool { return false }

// sqlLiteral renders a Go value as a SQL literal fragment.
func sqlLiteral(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return "'" + escapeSQLString(t) + "'"
	default:
		return v
	}
}

func escapeSQLString(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'', '\'')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
