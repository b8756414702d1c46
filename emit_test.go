package ddbc

import (
	"testing"

	"github.com/lkorigin/ddbc/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Parsed {
	t.Helper()
	parsed, err := Parse(src, userSchema())
	require.NoError(t, err)
	return parsed
}

func TestEmitFieldProjection(t *testing.T) {
	parsed := mustParse(t, "SELECT a.id, a.name FROM User AS a")
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT _t1.id, _t1.name FROM users AS _t1", query.SQL)
	assert.Equal(t, 2, query.ColCount)
	assert.Nil(t, query.Entity)
}

func TestEmitWhereParenthesization(t *testing.T) {
	parsed := mustParse(t, "FROM User AS a WHERE (a.id = 1 OR a.name = 'x') AND a.flags = 2")
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)
	assert.Contains(t, query.SQL, "(_t1.id = 1 OR _t1.name = 'x') AND _t1.flags = 2")
}

func TestEmitBracketIdempotence(t *testing.T) {
	plain := mustParse(t, "FROM User AS a WHERE a.id = 1 AND a.flags = 2")
	bracketed := mustParse(t, "FROM User AS a WHERE (a.id = 1 AND a.flags = 2)")

	q1, err := plain.Emit(dialect.Default{})
	require.NoError(t, err)
	q2, err := bracketed.Emit(dialect.Default{})
	require.NoError(t, err)

	assert.Equal(t, q1.SQL, q2.SQL)
}

func TestEmitUnaryAndBetween(t *testing.T) {
	parsed := mustParse(t, "FROM User AS a WHERE ((a.id = 1) OR (a.name LIKE 'a%' AND a.flags = (-5 + 7))) AND a.flags BETWEEN 2*2 AND 42/5")
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)
	assert.Contains(t, query.SQL, "BETWEEN 2 * 2 AND 42 / 5")
	assert.Contains(t, query.SQL, "- 5 + 7")
}

func TestEmitOrderByDesc(t *testing.T) {
	parsed := mustParse(t, "FROM User AS a ORDER BY a.name, a.flags DESC")
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)
	assert.Contains(t, query.SQL, "ORDER BY _t1.name, _t1.flags DESC")
}

func TestEmitParameterIndexLaw(t *testing.T) {
	parsed := mustParse(t, "FROM User WHERE id = :p1 or id = :p2")
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)

	seen := map[int]bool{}
	n := 0
	for _, indices := range query.Params {
		for _, idx := range indices {
			assert.False(t, seen[idx], "index %d appears twice", idx)
			seen[idx] = true
			n++
		}
	}
	for i := 1; i <= n; i++ {
		assert.True(t, seen[i], "index %d missing from the parameter map", i)
	}
}

func TestEmitRejectsRawIn(t *testing.T) {
	root := &Token{Kind: KindOpExpr, Op: OpIn, Text: "in", Children: []*Token{
		{Kind: KindNumber, Text: "1"},
		{Kind: KindNumber, Text: "2"},
	}}
	parsed := &Parsed{
		source: "",
		items:  []*FromItem{{EntityName: "User", Entity: userEntityForEmitTest(), SQLAlias: "_t1"}},
		selects: []SelectItem{{FromIdx: 0, Property: nil}},
		where:   root,
	}
	_, err := parsed.Emit(dialect.Default{})
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

// OQL string literals have no escape syntax (spec.md §4.1), so a value
// containing an embedded quote can only reach emission via a Token built
// directly, never by round-tripping through the lexer. This exercises
// the real dialect.Default.QuoteString on such a value, per spec.md §6's
// quoteString("a'b") -> 'a\'b' contract.
func TestEmitEscapesStringLiteralsViaRealDialect(t *testing.T) {
	root := &Token{Kind: KindOpExpr, Op: OpEq, Text: "=", Children: []*Token{
		{Kind: KindField, FromIdx: 0, Property: func() PropertyDescriptor {
			e := userEntityForEmitTest()
			p, _ := e.FindProperty("name")
			return p
		}()},
		{Kind: KindString, Text: "it's"},
	}}
	parsed := &Parsed{
		source:  "",
		items:   []*FromItem{{EntityName: "User", Entity: userEntityForEmitTest(), SQLAlias: "_t1"}},
		selects: []SelectItem{{FromIdx: 0, Property: nil}},
		where:   root,
	}
	query, err := parsed.Emit(dialect.Default{})
	require.NoError(t, err)
	assert.Contains(t, query.SQL, `'it\'s'`)
}

func userEntityForEmitTest() EntityDescriptor {
	s := userSchema()
	e, _ := s.FindEntity("User")
	return e
}
