package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientModelCachesOnFirstAccess(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	client := NewClient(nil)
	client.RegisterDatabase("testdb", db)

	first, cerr := client.Model("testdb", "people")
	require.Nil(t, cerr)

	second, cerr := client.Model("testdb", "people")
	require.Nil(t, cerr)
	assert.Same(t, first, second, "second access must return the cached facade, not a new one")
}

func TestClientModelRejectsUnknownDatabase(t *testing.T) {
	client := NewClient(nil)
	_, cerr := client.Model("missing", "people")
	require.NotNil(t, cerr)
	assert.Equal(t, CodeDatabaseNotFound, cerr.Code)
}

func TestClientClearCacheForcesReconstruction(t *testing.T) {
	db, _ := newTestDatabase(t, DialectMongoDB)
	client := NewClient(nil)
	client.RegisterDatabase("testdb", db)

	first, cerr := client.Model("testdb", "people")
	require.Nil(t, cerr)

	client.ClearCache()

	second, cerr := client.Model("testdb", "people")
	require.Nil(t, cerr)
	assert.NotSame(t, first, second)
}
