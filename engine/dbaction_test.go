package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T, dialect Dialect) (*Database, *Model) {
	t.Helper()
	descriptor := &DatabaseDescriptor{
		Name: "testdb", IID: "db_test", Type: dialect,
		Models: []ModelDescriptor{
			{
				Name: "people", IID: "md_people",
				Fields: []FieldDescriptor{
					{Name: "id", Type: "id"},
					{Name: "name", Type: "text", Required: true, MaxLength: 64},
					{Name: "age", Type: "integer"},
					{Name: "createdAt", Type: "createdAt"},
					{Name: "updatedAt", Type: "updatedAt"},
				},
			},
		},
	}
	db, err := OpenDatabase(descriptor, ReadWriteAdapter{})
	require.NoError(t, err)
	m, err := db.Model("people")
	require.NoError(t, err)
	return db, m
}

func TestSetSelectAndSetOmitAreMutuallyExclusive(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetSelect("name", "age")
	require.Nil(t, cerr)
	assert.Len(t, a.def.Select, 2)

	_, cerr = a.SetOmit("age")
	require.Nil(t, cerr)
	assert.Nil(t, a.def.Select)
	assert.Len(t, a.def.Omit, 1)
}

func TestSetSkipZeroIsAValidBoundary(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetSkip(0)
	require.Nil(t, cerr)
	require.NotNil(t, a.def.Skip)
	assert.Equal(t, 0, *a.def.Skip)
}

func TestSetLimitZeroIsRejected(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetLimit(0)
	assert.NotNil(t, cerr)
}

func TestSetLimitNegativeRejected(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetLimit(-1)
	assert.NotNil(t, cerr)
}

func TestSetLimitPositiveAccepted(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetLimit(1)
	require.Nil(t, cerr)
	require.NotNil(t, a.def.Limit)
	assert.Equal(t, 1, *a.def.Limit)
}

func TestJoinAliasUniqueness(t *testing.T) {
	db, _ := newTestDatabase(t, DialectPostgreSQL)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	spec := JoinSpec{Alias: "p", TargetModel: "people", LocalField: "id", ForeignField: "id"}
	_, cerr := a.SetJoin(spec)
	require.Nil(t, cerr)

	_, cerr = a.SetJoin(spec)
	assert.NotNil(t, cerr)
	assert.Equal(t, CodeInvalidJoin, cerr.Code)
}

func TestSetWhereReplacesPriorCondition(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetWhere(map[string]interface{}{"name": "Ada"})
	require.Nil(t, cerr)
	first := a.def.Where

	_, cerr = a.SetWhere(map[string]interface{}{"age": map[string]interface{}{"$gt": 30}})
	require.Nil(t, cerr)
	assert.NotSame(t, first, a.def.Where)
}

func TestExecuteRejectsReuse(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	a, err := NewDBAction(db, "people")
	require.NoError(t, err)

	_, cerr := a.SetSkip(1)
	require.Nil(t, cerr)

	// Primary adapter is nil in this test database, so Execute itself will panic
	// on dereference; we only assert the reuse guard fires before that happens.
	a.executed = true
	_, cerr = a.SetLimit(1)
	assert.NotNil(t, cerr)
}

func TestPrepareFieldValuesRoundTrip(t *testing.T) {
	_, m := newTestDatabase(t, DialectMongoDB)
	ve := &ValidationErrors{}
	out := m.PrepareFieldValues(map[string]interface{}{"name": "Ada", "age": 36}, true, ve, nil)
	require.False(t, ve.hasErrors())
	assert.Equal(t, "Ada", out["name"])
	assert.Equal(t, int64(36), out["age"])
	assert.NotNil(t, out["id"])
	assert.NotNil(t, out["createdAt"])

	ve = &ValidationErrors{}
	m.PrepareFieldValues(out, false, ve, nil)
	assert.False(t, ve.hasErrors())
}

func TestUpdateInstructionDoubleIncDoesNotCollapse(t *testing.T) {
	_, m := newTestDatabase(t, DialectMongoDB)
	ops, err := parseUpdateInstruction(m, map[string]interface{}{
		"$inc": map[string]interface{}{"age": 1},
	})
	require.Nil(t, err)
	require.Len(t, ops, 1)

	more, err := parseUpdateInstruction(m, map[string]interface{}{
		"$inc": map[string]interface{}{"age": 2},
	})
	require.Nil(t, err)
	combined := append(ops, more...)
	assert.Len(t, combined, 2)
}

func TestSearchTextRequiresSearchableModel(t *testing.T) {
	descriptor := &DatabaseDescriptor{
		Name: "testdb", IID: "db_test", Type: DialectMongoDB,
		Models: []ModelDescriptor{
			{
				Name: "counters", IID: "md_counters",
				Fields: []FieldDescriptor{
					{Name: "id", Type: "id"},
					{Name: "total", Type: "integer"},
				},
			},
		},
	}
	db, err := OpenDatabase(descriptor, ReadWriteAdapter{})
	require.NoError(t, err)

	a, err := NewDBAction(db, "counters")
	require.NoError(t, err)

	_, cerr := a.SetSearchText("ada")
	require.NotNil(t, cerr)
	assert.Equal(t, CodeNotSearchableModel, cerr.Code)
}
