package engine

import "strings"

// FieldExpression resolves a (possibly dotted, possibly joined) path down to a leaf
// Field (spec.md §3/§4.2 "Field expression"). Path segments beyond the first cross
// into Object/ObjectList sub-models. JoinKind is JoinSimple once the path has
// crossed an ObjectList, and JoinComplex when it runs into a Join field (such a
// path does not resolve to a leaf).
type FieldExpression struct {
	Model    *Model
	Path     []string
	Field    Field
	JoinKind JoinType
}

// NewFieldExpression resolves dotted path against model, walking into Object/
// ObjectList sub-models as needed. Reference and Join fields are not followed: a
// path that continues past any field other than an Object or ObjectList does not
// resolve. An unresolvable path is still constructed with a nil Field; Validate
// reports it.
func NewFieldExpression(model *Model, path string) *FieldExpression {
	segments := strings.Split(path, ".")
	cur := model
	var leaf Field
	joinKind := JoinNone
	for i, seg := range segments {
		f, ok := cur.GetField(seg)
		if !ok {
			leaf = nil
			break
		}
		leaf = f
		if i == len(segments)-1 {
			break
		}
		switch f.Kind() {
		case KindObject:
			if obj, ok := f.(*ObjectField); ok {
				cur = obj.SubModel
				continue
			}
		case KindObjectList:
			if ol, ok := f.(*ObjectListField); ok {
				cur = ol.SubModel
				joinKind = JoinSimple
				continue
			}
		case KindJoin:
			joinKind = JoinComplex
		}
		leaf = nil
		break
	}
	return &FieldExpression{Model: model, Path: segments, Field: leaf, JoinKind: joinKind}
}

func (e *FieldExpression) ExpressionKind() ExpressionKind { return ExprField }

func (e *FieldExpression) ReturnType() ReturnType {
	if e.Field == nil {
		return ReturnUndefined
	}
	return e.Field.ReturnType()
}

func (e *FieldExpression) queryPath() string {
	if e.Field == nil {
		return strings.Join(e.Path, ".")
	}
	return e.Field.QueryPath()
}

func (e *FieldExpression) GetQuery(dialect Dialect, resolve resolveFieldPathFunc) (interface{}, error) {
	if err := e.Validate(dialect); err != nil {
		return nil, err
	}
	path := e.queryPath()
	if resolve != nil {
		path = resolve(path)
	}
	if dialect == DialectMongoDB {
		return "$" + path, nil
	}
	return SQLFragment{Text: QuoteIdentifier(dialect, path)}, nil
}

func (e *FieldExpression) GetPullQuery(dialect Dialect, dropFieldName bool) (interface{}, error) {
	if err := e.Validate(dialect); err != nil {
		return nil, err
	}
	if dropFieldName {
		return "$$this", nil
	}
	return e.GetQuery(dialect, nil)
}

func (e *FieldExpression) Validate(dialect Dialect) error {
	if e.Field == nil {
		return errInvalidField("field path %q does not resolve against model %q", strings.Join(e.Path, "."), e.Model.Name())
	}
	if e.JoinKind == JoinComplex && !dialect.IsSQL() {
		return errInvalidJoin("join field %q is only resolvable on SQL dialects", strings.Join(e.Path, "."))
	}
	return nil
}

func (e *FieldExpression) ValidateForPull(dialect Dialect) error {
	return e.Validate(dialect)
}

func (e *FieldExpression) HasJoinFieldValues() bool {
	return e.JoinKind != JoinNone
}
