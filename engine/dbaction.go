package engine

import "context"

// ActionKind is the compiled shape of a DBAction, matching one DatabaseAdapter
// method (spec.md §4.7 "Action dispatch").
type ActionKind int

const (
	ActionCreateOne ActionKind = iota
	ActionCreateMany
	ActionFindByID
	ActionFindOne
	ActionFindMany
	ActionDeleteByID
	ActionDeleteOne
	ActionDeleteMany
	ActionUpdateByID
	ActionUpdateOne
	ActionUpdateMany
	ActionAggregate
	ActionSearchText
)

// SortSpec is one sort key, direction ∈ {1, -1} (spec.md §4.7 "setSort").
type SortSpec struct {
	Field     string
	Direction int
}

// GroupBySpec is one grouping key (spec.md §4.7 "setGroupBy"): a bare field
// becomes {As: field, Expression: FieldValue(field)}; a `{as, expression}` input
// carries an explicit alias over an arbitrary expression.
type GroupBySpec struct {
	As         string
	Expression Expression
}

// ComputationSpec is one aggregate computation alias (spec.md §4.7
// "setComputations"): operator ∈ {$count, $countIf, $sum, $avg, $min, $max}; Compute
// is nil for $count, which takes no expression.
type ComputationSpec struct {
	As       string
	Operator string
	Compute  Expression
}

// aggregateOperators is the whitelist setComputations accepts (spec.md §4.7).
var aggregateOperators = map[string]bool{
	"$count": true, "$countIf": true, "$sum": true, "$avg": true, "$min": true, "$max": true,
}

// JoinSpec is one compiled join (spec.md §4.7 "Join resolution").
type JoinSpec struct {
	Alias        string
	TargetModel  string
	LocalField   string
	ForeignField string
}

// ActionDefinition is the compiled, dialect-agnostic plan an adapter executes
// (spec.md §1 "compiles into the dialect of the backing engine"). DBAction builds
// exactly one of these and hands it to Database's adapter.
type ActionDefinition struct {
	Kind ActionKind

	ID         interface{}
	Data       map[string]interface{}
	DataMany   []map[string]interface{}
	Where      Expression
	Select     []string
	Omit       []string
	Sort       []SortSpec
	Skip       *int
	Limit      *int
	Joins      []JoinSpec
	UpdateOps  []UpdateOp
	SearchText string

	GroupBy      []GroupBySpec
	Computations []ComputationSpec
	Having       Expression
	GroupSort    []SortSpec
	ArrayFilters []Expression

	UseTransaction bool
	PreferReplica  bool
}

// DBAction is the single-use builder spec.md §4.7 describes: one instance per
// compiled action, a series of set* modifiers, then execute() dispatches once.
type DBAction struct {
	db    *Database
	model *Model

	def      ActionDefinition
	rand     RandSource
	executed bool
	joinSet  map[string]bool
}

// NewDBAction opens a builder rooted on the named model of db (spec.md §4.7).
func NewDBAction(db *Database, modelName string) (*DBAction, error) {
	m, err := db.Model(modelName)
	if err != nil {
		return nil, err
	}
	return &DBAction{db: db, model: m, rand: DefaultRandSource{}, joinSet: make(map[string]bool)}, nil
}

func (a *DBAction) guardUnused() *ClientError {
	if a.executed {
		return errInvalidParameter("this DBAction has already been executed")
	}
	return nil
}

// SetID binds the target id for *ByID actions.
func (a *DBAction) SetID(id interface{}) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	if !IsValidID(a.db.Dialect(), id) {
		return a, newError(CodeInvalidParameter, "invalid id value for dialect %q", a.db.Dialect())
	}
	a.def.ID = id
	return a, nil
}

// SetWhere compiles a condition object into the action's filter; calling it again
// replaces the prior compilation.
func (a *DBAction) SetWhere(cond map[string]interface{}) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	expr, err := parseWhere(a.model, cond, ConditionQuery)
	if err != nil {
		return a, err
	}
	a.def.Where = expr
	return a, nil
}

// SetSelect and SetOmit are mutually exclusive (spec.md §8 "select/omit mutual
// exclusion"): whichever is called second wins by clearing the other, matching
// the source's "last writer wins" builder semantics (spec.md §9 design note).
func (a *DBAction) SetSelect(fields ...string) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	for _, f := range fields {
		if _, err := getFieldObject(a.model, f); err != nil {
			return a, err
		}
	}
	a.def.Select = fields
	a.def.Omit = nil
	return a, nil
}

func (a *DBAction) SetOmit(fields ...string) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	for _, f := range fields {
		if _, err := getFieldObject(a.model, f); err != nil {
			return a, err
		}
	}
	a.def.Omit = fields
	a.def.Select = nil
	return a, nil
}

// SetSort accepts an ordered list of (field, direction) pairs; direction must be
// 1 or -1 (spec.md §4.7 "setSort").
func (a *DBAction) SetSort(specs ...SortSpec) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	for _, s := range specs {
		if s.Direction != 1 && s.Direction != -1 {
			return a, errInvalidParameter("sort direction must be 1 or -1, got %d", s.Direction)
		}
		if _, err := getFieldObject(a.model, s.Field); err != nil {
			return a, err
		}
	}
	a.def.Sort = specs
	return a, nil
}

// SetSkip accepts skip == 0 as a valid no-op boundary (spec.md §8 "setSkip(0)
// boundary"), distinct from "skip not set".
func (a *DBAction) SetSkip(skip int) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	if skip < 0 {
		return a, errInvalidParameter("skip must be >= 0, got %d", skip)
	}
	a.def.Skip = intPtr(skip)
	return a, nil
}

// SetLimit requires limit >= 1 (spec.md §8 "setLimit(0) boundary" rejects zero,
// unlike SetSkip which accepts it); "limit not set" means unbounded.
func (a *DBAction) SetLimit(limit int) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	if limit <= 0 {
		return a, errInvalidParameter("limit must be >= 1, got %d", limit)
	}
	a.def.Limit = intPtr(limit)
	return a, nil
}

// SetJoin adds a join, rejecting a repeated alias (spec.md §8 "join alias
// uniqueness").
func (a *DBAction) SetJoin(spec JoinSpec) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	if spec.Alias == "" || !isValidFieldName(spec.Alias) {
		return a, errInvalidJoin("join alias %q is not a valid identifier", spec.Alias)
	}
	if a.joinSet[spec.Alias] {
		return a, errInvalidJoin("join alias %q is already in use", spec.Alias)
	}
	if _, err := a.db.Model(spec.TargetModel); err != nil {
		return a, err
	}
	if _, err := getFieldObject(a.model, spec.LocalField); err != nil {
		return a, err
	}
	a.joinSet[spec.Alias] = true
	a.def.Joins = append(a.def.Joins, spec)
	return a, nil
}

// SetData validates and coerces a create payload against the model (spec.md §4.5
// "prepareFieldValues round-trip").
func (a *DBAction) SetData(data map[string]interface{}) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	a.model.ResetTimestamp()
	ve := &ValidationErrors{}
	prepared := a.model.PrepareFieldValues(data, true, ve, nil)
	if ve.hasErrors() {
		return a, ve.asClientError()
	}
	a.def.Data = prepared
	return a, nil
}

// SetDataMany validates each element of a createMany payload independently,
// indexing every error so callers can tell which element failed.
func (a *DBAction) SetDataMany(items []map[string]interface{}) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	a.model.ResetTimestamp()
	ve := &ValidationErrors{}
	out := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		idx := i
		out = append(out, a.model.PrepareFieldValues(item, true, ve, &idx))
	}
	if ve.hasErrors() {
		return a, ve.asClientError()
	}
	a.def.DataMany = out
	return a, nil
}

// SetUpdate compiles an update instruction object into a flat op list (spec.md
// §4.7 "Update instruction compilation").
func (a *DBAction) SetUpdate(instruction map[string]interface{}) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	a.model.ResetTimestamp()
	ops, err := parseUpdateInstruction(a.model, instruction)
	if err != nil {
		return a, err
	}
	if uf, ok := a.model.GetField("updatedAt"); ok {
		if _, already := findOp(ops, "$set", "updatedAt"); !already {
			ve := &ValidationErrors{}
			out := make(map[string]interface{}, 1)
			uf.Prepare(a.model, nil, false, out, ve, false, nil)
			ops = append(ops, UpdateOp{Operator: "$set", Path: "updatedAt", Value: out["updatedAt"]})
		}
	}
	a.def.UpdateOps = ops
	return a, nil
}

func findOp(ops []UpdateOp, operator, path string) (UpdateOp, bool) {
	for _, op := range ops {
		if op.Operator == operator && op.Path == path {
			return op, true
		}
	}
	return UpdateOp{}, false
}

// SetSearchText compiles a full-text search query, requiring the model to declare
// at least one searchable text field (spec.md §8 scenario 6 "not_searchable_model").
func (a *DBAction) SetSearchText(text string) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	if !a.model.HasSearchIndex() {
		return a, newError(CodeNotSearchableModel, "model %q has no searchable text field", a.model.Name())
	}
	a.def.SearchText = text
	return a, nil
}

// SetGroupBy declares the grouping keys for an aggregate action (spec.md §4.7
// "setGroupBy"): each entry is either a bare field name, lowering to
// {as: field, expression: FieldValue(field)}, or a {as, expression} map naming an
// explicit alias over a field expression (spec.md §8 scenario 5).
func (a *DBAction) SetGroupBy(specs ...interface{}) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	out := make([]GroupBySpec, 0, len(specs))
	for _, raw := range specs {
		spec, err := a.parseGroupBySpec(raw)
		if err != nil {
			return a, err
		}
		out = append(out, spec)
	}
	a.def.GroupBy = out
	return a, nil
}

func (a *DBAction) parseGroupBySpec(raw interface{}) (GroupBySpec, *ClientError) {
	switch v := raw.(type) {
	case string:
		if _, err := getFieldObject(a.model, v); err != nil {
			return GroupBySpec{}, err
		}
		return GroupBySpec{As: v, Expression: NewFieldExpression(a.model, v)}, nil
	case map[string]interface{}:
		as, _ := v["as"].(string)
		if as == "" || !isValidFieldName(as) {
			return GroupBySpec{}, errInvalidParameter("groupBy alias %q is not a valid identifier", as)
		}
		exprField, ok := v["expression"].(string)
		if !ok || exprField == "" {
			return GroupBySpec{}, errInvalidParameter("groupBy entry %q requires a string expression field", as)
		}
		if _, err := getFieldObject(a.model, exprField); err != nil {
			return GroupBySpec{}, err
		}
		return GroupBySpec{As: as, Expression: NewFieldExpression(a.model, exprField)}, nil
	default:
		return GroupBySpec{}, errInvalidParameter("groupBy entry must be a field name string or a {as, expression} object")
	}
}

// SetComputations declares aggregate computations (spec.md §4.7 "setComputations"):
// each entry is {as, compute: {<operator>: expr}}, operator ∈ {$count, $countIf,
// $sum, $avg, $min, $max}. $count takes no expression; $countIf requires a
// boolean-returning expression; the rest require a numeric one (spec.md §8
// scenario 5).
func (a *DBAction) SetComputations(specs ...map[string]interface{}) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	out := make([]ComputationSpec, 0, len(specs))
	for _, raw := range specs {
		spec, err := a.parseComputationSpec(raw)
		if err != nil {
			return a, err
		}
		out = append(out, spec)
	}
	a.def.Computations = out
	return a, nil
}

func (a *DBAction) parseComputationSpec(raw map[string]interface{}) (ComputationSpec, *ClientError) {
	as, _ := raw["as"].(string)
	if as == "" || !isValidFieldName(as) {
		return ComputationSpec{}, errInvalidParameter("computation alias %q is not a valid identifier", as)
	}
	computeObj, ok := raw["compute"].(map[string]interface{})
	if !ok || len(computeObj) != 1 {
		return ComputationSpec{}, errInvalidExpression("computation %q requires a single-key compute object", as)
	}
	var operator string
	var rawExpr interface{}
	for k, v := range computeObj {
		operator, rawExpr = k, v
	}
	if !aggregateOperators[operator] {
		return ComputationSpec{}, errInvalidExpression("computation %q: %q is not a recognized aggregate operator", as, operator)
	}
	if operator == "$count" {
		if rawExpr != nil {
			return ComputationSpec{}, errInvalidExpression("%q takes no expression", operator)
		}
		return ComputationSpec{As: as, Operator: operator}, nil
	}
	expr, err := parseComputeExpr(a.model, rawExpr)
	if err != nil {
		return ComputationSpec{}, err
	}
	if operator == "$countIf" {
		rt := expr.ReturnType()
		if rt != ReturnBoolean && rt != ReturnStaticBoolean {
			return ComputationSpec{}, errInvalidExpression("%q requires a boolean expression", operator)
		}
	} else if !Assignable(ReturnNumber, expr.ReturnType()) {
		return ComputationSpec{}, errInvalidExpression("%q requires a numeric expression", operator)
	}
	return ComputationSpec{As: as, Operator: operator, Compute: expr}, nil
}

// groupingModel builds the synthetic overlay model spec.md §4.5/§4.7 describe: a
// TEXT field per groupBy alias, an INTEGER field per computation alias, so
// setHaving/setGroupSort can reuse the ordinary where/sort parsers unchanged
// (spec.md §9 design note, "overlay without allocating a full Model instance").
// Callers populate a.def.GroupBy/Computations before calling this.
func (a *DBAction) groupingModel() *Model {
	gm := newModel(a.model.Name()+"$grouping", ModelTopLevel, a.db, nil)
	for _, g := range a.def.GroupBy {
		gm.addField(NewTextField(g.As, false, 0))
	}
	for _, c := range a.def.Computations {
		gm.addField(NewIntegerField(c.As, false))
	}
	return gm
}

// SetHaving compiles a having condition, re-parsed against the synthetic grouping
// model (spec.md §4.7 "setHaving", §8 scenario 5).
func (a *DBAction) SetHaving(cond map[string]interface{}) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	expr, err := parseWhere(a.groupingModel(), cond, ConditionQuery)
	if err != nil {
		return a, err
	}
	a.def.Having = expr
	return a, nil
}

// SetGroupSort orders aggregate results by groupBy/computation aliases, re-parsed
// against the synthetic grouping model (spec.md §4.7 "setGroupSort").
func (a *DBAction) SetGroupSort(specs ...SortSpec) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	gm := a.groupingModel()
	for _, s := range specs {
		if s.Direction != 1 && s.Direction != -1 {
			return a, errInvalidParameter("sort direction must be 1 or -1, got %d", s.Direction)
		}
		if _, err := getFieldObject(gm, s.Field); err != nil {
			return a, err
		}
	}
	a.def.GroupSort = specs
	return a, nil
}

// SetArrayFilters compiles MongoDB's array-filter conditionals (spec.md §4.7
// "setArrayFilters"): MongoDB-only, each entry parsed with the ARRAY_FILTER
// condition type so any free identifier resolves to an ArrayFilterField rather
// than a model field (spec.md §8 scenario 4).
func (a *DBAction) SetArrayFilters(filters []map[string]interface{}) (*DBAction, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return a, err
	}
	if a.db.Dialect() != DialectMongoDB {
		return a, errInvalidParameter("arrayFilters is only valid on the MongoDB dialect")
	}
	out := make([]Expression, 0, len(filters))
	for _, f := range filters {
		expr, err := parseWhere(a.model, f, ConditionArrayFilter)
		if err != nil {
			return a, err
		}
		out = append(out, expr)
	}
	a.def.ArrayFilters = out
	return a, nil
}

// UseTransaction marks the action to run inside the database's current
// transaction (spec.md §4.6 "Transactions").
func (a *DBAction) UseTransaction(use bool) *DBAction {
	a.def.UseTransaction = use
	return a
}

// PreferReplica opts a read action into replica selection (spec.md §9 design
// note on read-replica selection).
func (a *DBAction) PreferReplica(prefer bool) *DBAction {
	a.def.PreferReplica = prefer
	return a
}

// Execute dispatches the compiled ActionDefinition to the adapter and marks the
// builder used; a second call returns errInvalidParameter (spec.md §4.7 "single-
// use builder").
func (a *DBAction) Execute(ctx context.Context, kind ActionKind) (*ActionResult, *ClientError) {
	if err := a.guardUnused(); err != nil {
		return nil, err
	}
	a.executed = true
	a.def.Kind = kind

	modelDescriptor := &ModelDescriptor{Name: a.model.Name(), Schema: a.model.Schema(), IID: a.model.IID()}
	dbDescriptor := a.db.descriptor

	var (
		result *ActionResult
		err    error
	)
	switch kind {
	case ActionCreateOne:
		result, err = a.db.primary().CreateOne(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionCreateMany:
		result, err = a.db.primary().CreateMany(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionFindByID:
		result, err = a.db.pickReadAdapter(a.def.PreferReplica, a.rand).FindByID(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionFindOne:
		result, err = a.db.pickReadAdapter(a.def.PreferReplica, a.rand).FindOne(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionFindMany:
		result, err = a.db.pickReadAdapter(a.def.PreferReplica, a.rand).FindMany(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionDeleteByID:
		result, err = a.db.primary().DeleteByID(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionDeleteOne:
		result, err = a.db.primary().DeleteOne(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionDeleteMany:
		result, err = a.db.primary().DeleteMany(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionUpdateByID:
		result, err = a.db.primary().UpdateByID(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionUpdateOne:
		result, err = a.db.primary().UpdateOne(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionUpdateMany:
		result, err = a.db.primary().UpdateMany(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionAggregate:
		result, err = a.db.pickReadAdapter(a.def.PreferReplica, a.rand).Aggregate(ctx, dbDescriptor, modelDescriptor, &a.def)
	case ActionSearchText:
		result, err = a.db.pickReadAdapter(a.def.PreferReplica, a.rand).SearchText(ctx, dbDescriptor, modelDescriptor, &a.def)
	default:
		return nil, errInvalidParameter("unrecognized action kind")
	}
	if err != nil {
		return nil, newError(CodeAdapterNotFound, "%s", err.Error())
	}
	return result, nil
}
