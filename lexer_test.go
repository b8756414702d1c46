package ddbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeScenario(t *testing.T) {
	src := "SELECT a From User a where a.flags = 12 AND a.name='john' ORDER BY a.idx ASC"
	tokens, err := tokenize(src)
	require.NoError(t, err)
	require.Len(t, tokens, 23)

	assert.Equal(t, KindKeyword, tokens[5].Kind)
	assert.Equal(t, KwWhere, tokens[5].Keyword)

	assert.Equal(t, KindNumber, tokens[10].Kind)
	assert.Equal(t, "12", tokens[10].Text)

	assert.Equal(t, KindString, tokens[16].Kind)
	assert.Equal(t, "john", tokens[16].Text)

	assert.Equal(t, KindKeyword, tokens[22].Kind)
	assert.Equal(t, KwAsc, tokens[22].Keyword)
}

func TestTokenizePositionsMonotonic(t *testing.T) {
	src := "SELECT a FROM User AS a WHERE a.flags = 12 AND a.name = 'john'"
	tokens, err := tokenize(src)
	require.NoError(t, err)
	for i := 1; i < len(tokens); i++ {
		assert.Greater(t, tokens[i].Pos, tokens[i-1].Pos, "token positions must strictly increase")
	}
}

func TestTokenizeKeywordCaseInsensitivity(t *testing.T) {
	for _, src := range []string{"from", "From", "FROM", "fRoM"} {
		tokens, err := tokenize(src)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, KindKeyword, tokens[0].Kind)
		assert.Equal(t, KwFrom, tokens[0].Keyword)
	}
}

func TestTokenizeOperators(t *testing.T) {
	tokens, err := tokenize("a == b != c <> d <= e >= f < g > h")
	require.NoError(t, err)

	var ops []Op
	for _, tok := range tokens {
		if tok.Kind == KindOperator {
			ops = append(ops, tok.Op)
		}
	}
	assert.Equal(t, []Op{OpEq, OpNe, OpNe, OpLe, OpGe, OpLt, OpGt}, ops)
}

func TestTokenizeBackTickIdent(t *testing.T) {
	tokens, err := tokenize("`order`")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, KindIdent, tokens[0].Kind)
	assert.Equal(t, "order", tokens[0].Text)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := tokenize("name = 'abc")
	require.Error(t, err)
	var lexErr *LexicalError
	require.ErrorAs(t, err, &lexErr)
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := tokenize("name = #abc")
	require.Error(t, err)
	var lexErr *LexicalError
	require.ErrorAs(t, err, &lexErr)
}

func TestTokenizeNumbers(t *testing.T) {
	tokens, err := tokenize("1 2.5 .25 1e10 1.5e-3")
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	for _, tok := range tokens {
		assert.Equal(t, KindNumber, tok.Kind)
	}
}

func TestTokenizeParameter(t *testing.T) {
	tokens, err := tokenize(":name1")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, KindParameter, tokens[0].Kind)
	assert.Equal(t, "name1", tokens[0].Text)
}
