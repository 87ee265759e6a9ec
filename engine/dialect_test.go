package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectIsSQL(t *testing.T) {
	cases := map[Dialect]bool{
		DialectMongoDB:    false,
		DialectPostgreSQL: true,
		DialectMySQL:      true,
		DialectSQLServer:  true,
		DialectOracle:     true,
	}
	for d, want := range cases {
		assert.Equal(t, want, d.IsSQL(), "dialect %q", d)
	}
}

func TestQuoteIdentifier(t *testing.T) {
	require.Equal(t, `"users"`, QuoteIdentifier(DialectPostgreSQL, "users"))
	require.Equal(t, "`users`", QuoteIdentifier(DialectMySQL, "users"))
	require.Equal(t, "[users]", QuoteIdentifier(DialectSQLServer, "users"))
	require.Equal(t, `"USERS"`, QuoteIdentifier(DialectOracle, "users"))
	require.Equal(t, "users", QuoteIdentifier(DialectMongoDB, "users"))
}

func TestPlaceholder(t *testing.T) {
	require.Equal(t, "$1", Placeholder(DialectPostgreSQL, 1))
	require.Equal(t, "?", Placeholder(DialectMySQL, 1))
	require.Equal(t, "@p2", Placeholder(DialectSQLServer, 2))
	require.Equal(t, ":3", Placeholder(DialectOracle, 3))
}
