package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// Scenario walkthroughs adapted from the source literal-input scenarios, re-expressed
// against this engine's actual builder surface rather than the original JS shape.

// Scenario 1: findOne on a single field holding an email address (the people
// model's name field stands in for email) lowers to a bare $eq, not $and-wrapped.
func TestScenarioFindOneByEmail(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetWhere(map[string]interface{}{"name": "a@b.c"})
	require.Nil(t, cerr)

	query, qerr := a.def.Where.GetQuery(DialectMongoDB, nil)
	require.NoError(t, qerr)
	doc, ok := query.(bson.M)
	require.True(t, ok)
	assert.Equal(t, []interface{}{"$name", "a@b.c"}, doc["$eq"])
}

// Scenario 2: findMany with a two-clause $and, a sort, and a limit.
func TestScenarioFindManyWithAndSortAndLimit(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetWhere(map[string]interface{}{
		"age":  map[string]interface{}{"$gte": 18},
		"name": map[string]interface{}{"$ne": ""},
	})
	require.Nil(t, cerr)

	_, cerr = a.SetSort(SortSpec{Field: "createdAt", Direction: -1})
	require.Nil(t, cerr)
	_, cerr = a.SetLimit(50)
	require.Nil(t, cerr)

	require.Len(t, a.def.Sort, 1)
	assert.Equal(t, -1, a.def.Sort[0].Direction)
	assert.Equal(t, 50, *a.def.Limit)

	fn, ok := a.def.Where.(*FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, "$and", fn.Def.Name)
	assert.Len(t, fn.Operands, 2)
}

// Scenario 3: updateById combining a $set on a dotted sub-path with an $inc, both
// surviving into the compiled op list. parseUpdateInstruction alone adds no implicit
// updatedAt $set; SetUpdate appends that one.
func TestScenarioUpdateByIDCombinesSetAndInc(t *testing.T) {
	parent := newTestModel(DialectMongoDB)
	sub := newSubModel(parent.Database(), ModelObject, parent, NewTextField("street", true, 0))
	addressField := NewObjectField("address", false)
	addressField.SubModel = sub
	parent.addField(addressField)
	parent.addField(NewIntegerField("age", false))
	parent.addField(NewUpdatedAtField("updatedAt"))

	ops, cerr := parseUpdateInstruction(parent, map[string]interface{}{
		"$set": map[string]interface{}{"address.street": "Main"},
		"$inc": map[string]interface{}{"age": 1},
	})
	require.Nil(t, cerr)
	require.Len(t, ops, 2)

	setOp, ok := findOp(ops, "$set", "address.street")
	require.True(t, ok)
	assert.Equal(t, "Main", setOp.Value)

	incOp, ok := findOp(ops, "$inc", "age")
	require.True(t, ok)
	assert.Equal(t, 1, incOp.Value)
}

// Scenario 6: searchText succeeds on a searchable model and fails with
// not_searchable_model otherwise (see TestSearchTextRequiresSearchableModel for the
// negative half).
func TestScenarioSearchTextSucceedsOnSearchableModel(t *testing.T) {
	descriptor := &DatabaseDescriptor{
		Name: "testdb", IID: "db_test", Type: DialectMongoDB,
		Models: []ModelDescriptor{
			{
				Name: "articles", IID: "md_articles",
				Fields: []FieldDescriptor{
					{Name: "id", Type: "id"},
					{Name: "body", Type: "richText", Searchable: true},
				},
			},
		},
	}
	db, err := OpenDatabase(descriptor, ReadWriteAdapter{})
	require.NoError(t, err)

	a, err := NewDBAction(db, "articles")
	require.NoError(t, err)

	_, cerr := a.SetSearchText("habeas corpus")
	require.Nil(t, cerr)
	_, cerr = a.SetLimit(25)
	require.Nil(t, cerr)
	assert.Equal(t, "habeas corpus", a.def.SearchText)
	assert.Equal(t, 25, *a.def.Limit)
}

// Scenario 4: updateOne({ _id: "x" }, { tags: { $push: { $each: ["a","b"] } } },
// { arrayFilters: [ { "elem.active": true } ] }).
func TestScenarioUpdateOnePushEachWithArrayFilters(t *testing.T) {
	descriptor := &DatabaseDescriptor{
		Name: "testdb", IID: "db_test", Type: DialectMongoDB,
		Models: []ModelDescriptor{
			{
				Name: "people", IID: "md_people",
				Fields: []FieldDescriptor{
					{Name: "id", Type: "id"},
					{Name: "tags", Type: "basicValuesList"},
				},
			},
		},
	}
	db, err := OpenDatabase(descriptor, ReadWriteAdapter{})
	require.NoError(t, err)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetWhere(map[string]interface{}{"id": "x"})
	require.Nil(t, cerr)

	_, cerr = a.SetUpdate(map[string]interface{}{
		"$push": map[string]interface{}{
			"tags": map[string]interface{}{"$each": []interface{}{"a", "b"}},
		},
	})
	require.Nil(t, cerr)

	_, cerr = a.SetArrayFilters([]map[string]interface{}{
		{"elem.active": true},
	})
	require.Nil(t, cerr)

	pushOp, ok := findOp(a.def.UpdateOps, "$push", "tags")
	require.True(t, ok)
	each, ok := pushOp.Value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"a", "b"}, each["$each"])

	require.Len(t, a.def.ArrayFilters, 1)
	eq, ok := a.def.ArrayFilters[0].(*FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, "$eq", eq.Def.Name)
	left, ok := eq.Operands[0].(*ArrayFilterFieldExpression)
	require.True(t, ok)
	assert.Equal(t, "elem", left.Alias)
	assert.Equal(t, []string{"active"}, left.SubPath)
}

// Scenario 5: aggregate({ groupBy: "country", computations: [{as:"n", compute:
// {$count: null}}, {as:"avgAge", compute:{$avg:"age"}}], having: {n: {$gt: 10}},
// sort: {avgAge: "desc"} }).
func TestScenarioAggregateGroupByComputationsHaving(t *testing.T) {
	descriptor := &DatabaseDescriptor{
		Name: "testdb", IID: "db_test", Type: DialectMongoDB,
		Models: []ModelDescriptor{
			{
				Name: "people", IID: "md_people",
				Fields: []FieldDescriptor{
					{Name: "id", Type: "id"},
					{Name: "country", Type: "text"},
					{Name: "age", Type: "integer"},
				},
			},
		},
	}
	db, err := OpenDatabase(descriptor, ReadWriteAdapter{})
	require.NoError(t, err)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetGroupBy("country")
	require.Nil(t, cerr)
	require.Len(t, a.def.GroupBy, 1)
	assert.Equal(t, "country", a.def.GroupBy[0].As)
	fe, ok := a.def.GroupBy[0].Expression.(*FieldExpression)
	require.True(t, ok)
	assert.Equal(t, "country", fe.Field.Name())

	_, cerr = a.SetComputations(
		map[string]interface{}{"as": "n", "compute": map[string]interface{}{"$count": nil}},
		map[string]interface{}{"as": "avgAge", "compute": map[string]interface{}{"$avg": "age"}},
	)
	require.Nil(t, cerr)
	require.Len(t, a.def.Computations, 2)
	assert.Equal(t, "n", a.def.Computations[0].As)
	assert.Equal(t, "$count", a.def.Computations[0].Operator)
	assert.Nil(t, a.def.Computations[0].Compute)
	assert.Equal(t, "avgAge", a.def.Computations[1].As)
	assert.Equal(t, "$avg", a.def.Computations[1].Operator)
	avgField, ok := a.def.Computations[1].Compute.(*FieldExpression)
	require.True(t, ok)
	assert.Equal(t, "age", avgField.Field.Name())

	_, cerr = a.SetHaving(map[string]interface{}{"n": map[string]interface{}{"$gt": 10}})
	require.Nil(t, cerr)
	having, ok := a.def.Having.(*FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, "$gt", having.Def.Name)
	nField, ok := having.Operands[0].(*FieldExpression)
	require.True(t, ok)
	assert.Equal(t, "n", nField.Field.Name())
	assert.Equal(t, ReturnNumber, nField.ReturnType())
	staticTen, ok := having.Operands[1].(*StaticExpression)
	require.True(t, ok)
	assert.Equal(t, 10, staticTen.Value)

	_, cerr = a.SetGroupSort(SortSpec{Field: "avgAge", Direction: -1})
	require.Nil(t, cerr)
	require.Len(t, a.def.GroupSort, 1)
	assert.Equal(t, "avgAge", a.def.GroupSort[0].Field)
	assert.Equal(t, -1, a.def.GroupSort[0].Direction)
}
