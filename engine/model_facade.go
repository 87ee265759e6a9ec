package engine

import "context"

// ModelFacade is the thin typed CRUD wrapper spec.md §4.8 describes: every call
// builds a fresh DBAction (single-use, per spec.md §4.7) and executes it
// immediately, so callers never see the builder itself for simple operations.
type ModelFacade struct {
	db        *Database
	modelName string
}

// NewModelFacade opens a facade bound to one model of db.
func NewModelFacade(db *Database, modelName string) (*ModelFacade, error) {
	if _, err := db.Model(modelName); err != nil {
		return nil, err
	}
	return &ModelFacade{db: db, modelName: modelName}, nil
}

func (m *ModelFacade) newAction() (*DBAction, *ClientError) {
	a, err := NewDBAction(m.db, m.modelName)
	if err != nil {
		if ce, ok := err.(*ClientError); ok {
			return nil, ce
		}
		return nil, newError(CodeModelNotFound, "%s", err.Error())
	}
	return a, nil
}

// CreateOne validates data and inserts a single record.
func (m *ModelFacade) CreateOne(ctx context.Context, data map[string]interface{}) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if _, err := a.SetData(data); err != nil {
		return nil, err
	}
	return a.Execute(ctx, ActionCreateOne)
}

// CreateMany validates and inserts multiple records.
func (m *ModelFacade) CreateMany(ctx context.Context, items []map[string]interface{}) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if _, err := a.SetDataMany(items); err != nil {
		return nil, err
	}
	return a.Execute(ctx, ActionCreateMany)
}

// FindByID fetches a single record by its id.
func (m *ModelFacade) FindByID(ctx context.Context, id interface{}) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if _, err := a.SetID(id); err != nil {
		return nil, err
	}
	return a.Execute(ctx, ActionFindByID)
}

// FindOne fetches the first record matching a condition.
func (m *ModelFacade) FindOne(ctx context.Context, where map[string]interface{}) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if where != nil {
		if _, err := a.SetWhere(where); err != nil {
			return nil, err
		}
	}
	return a.Execute(ctx, ActionFindOne)
}

// FindManyArgs mirrors the optional findMany argument object spec.md §9 Open
// Question 2 resolves: every field is individually optional.
type FindManyArgs struct {
	Where map[string]interface{}
	Sort  []SortSpec
	Skip  *int
	Limit *int
}

// FindMany fetches every record matching args, all of whose fields are optional.
func (m *ModelFacade) FindMany(ctx context.Context, args *FindManyArgs) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if args != nil {
		if args.Where != nil {
			if _, err := a.SetWhere(args.Where); err != nil {
				return nil, err
			}
		}
		if len(args.Sort) > 0 {
			if _, err := a.SetSort(args.Sort...); err != nil {
				return nil, err
			}
		}
		if args.Skip != nil {
			if _, err := a.SetSkip(*args.Skip); err != nil {
				return nil, err
			}
		}
		if args.Limit != nil {
			if _, err := a.SetLimit(*args.Limit); err != nil {
				return nil, err
			}
		}
	}
	return a.Execute(ctx, ActionFindMany)
}

// DeleteByID deletes a single record by id.
func (m *ModelFacade) DeleteByID(ctx context.Context, id interface{}) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if _, err := a.SetID(id); err != nil {
		return nil, err
	}
	return a.Execute(ctx, ActionDeleteByID)
}

// UpdateByID applies an update instruction to a single record by id.
func (m *ModelFacade) UpdateByID(ctx context.Context, id interface{}, instruction map[string]interface{}) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if _, err := a.SetID(id); err != nil {
		return nil, err
	}
	if _, err := a.SetUpdate(instruction); err != nil {
		return nil, err
	}
	return a.Execute(ctx, ActionUpdateByID)
}

// UpdateOneArgs bundles updateOne's options (spec.md §4.7, §8 scenario 4):
// ArrayFilters is only meaningful alongside a $push/$pull update against an
// ObjectList field under MongoDB.
type UpdateOneArgs struct {
	ArrayFilters []map[string]interface{}
}

// UpdateOne applies an update instruction to the first record matching where.
func (m *ModelFacade) UpdateOne(ctx context.Context, where map[string]interface{}, instruction map[string]interface{}, opts *UpdateOneArgs) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if where != nil {
		if _, err := a.SetWhere(where); err != nil {
			return nil, err
		}
	}
	if _, err := a.SetUpdate(instruction); err != nil {
		return nil, err
	}
	if opts != nil && len(opts.ArrayFilters) > 0 {
		if _, err := a.SetArrayFilters(opts.ArrayFilters); err != nil {
			return nil, err
		}
	}
	return a.Execute(ctx, ActionUpdateOne)
}

// UpdateMany applies an update instruction to every record matching where.
func (m *ModelFacade) UpdateMany(ctx context.Context, where map[string]interface{}, instruction map[string]interface{}) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if where != nil {
		if _, err := a.SetWhere(where); err != nil {
			return nil, err
		}
	}
	if _, err := a.SetUpdate(instruction); err != nil {
		return nil, err
	}
	return a.Execute(ctx, ActionUpdateMany)
}

// DeleteOne deletes the first record matching where.
func (m *ModelFacade) DeleteOne(ctx context.Context, where map[string]interface{}) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if where != nil {
		if _, err := a.SetWhere(where); err != nil {
			return nil, err
		}
	}
	return a.Execute(ctx, ActionDeleteOne)
}

// DeleteMany deletes every record matching where.
func (m *ModelFacade) DeleteMany(ctx context.Context, where map[string]interface{}) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if where != nil {
		if _, err := a.SetWhere(where); err != nil {
			return nil, err
		}
	}
	return a.Execute(ctx, ActionDeleteMany)
}

// AggregateArgs bundles the aggregate-only modifiers (spec.md §4.7, §8 scenario 5).
// GroupBy entries are field name strings or {as, expression} maps; Computations
// entries are {as, compute: {<operator>: expr}} maps; Sort re-parses against the
// synthetic grouping model built from GroupBy/Computations.
type AggregateArgs struct {
	Where        map[string]interface{}
	GroupBy      []interface{}
	Computations []map[string]interface{}
	Having       map[string]interface{}
	Sort         []SortSpec
}

// Aggregate groups and computes over every record matching args.Where.
func (m *ModelFacade) Aggregate(ctx context.Context, args *AggregateArgs) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if args != nil {
		if args.Where != nil {
			if _, err := a.SetWhere(args.Where); err != nil {
				return nil, err
			}
		}
		if len(args.GroupBy) > 0 {
			if _, err := a.SetGroupBy(args.GroupBy...); err != nil {
				return nil, err
			}
		}
		if len(args.Computations) > 0 {
			if _, err := a.SetComputations(args.Computations...); err != nil {
				return nil, err
			}
		}
		if args.Having != nil {
			if _, err := a.SetHaving(args.Having); err != nil {
				return nil, err
			}
		}
		if len(args.Sort) > 0 {
			if _, err := a.SetGroupSort(args.Sort...); err != nil {
				return nil, err
			}
		}
	}
	return a.Execute(ctx, ActionAggregate)
}

// SearchText runs a full-text search against the model's searchable fields.
func (m *ModelFacade) SearchText(ctx context.Context, text string) (*ActionResult, *ClientError) {
	a, err := m.newAction()
	if err != nil {
		return nil, err
	}
	if _, err := a.SetSearchText(text); err != nil {
		return nil, err
	}
	return a.Execute(ctx, ActionSearchText)
}
