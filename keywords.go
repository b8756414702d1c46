package ddbc

import "strings"

// keywords maps the upper-cased spelling of every reserved word to its
// Keyword tag. Lookup is always done against the upper-cased identifier
// text, which is what gives the language its case-insensitivity.
var keywords = map[string]Keyword{
	"SELECT":  KwSelect,
	"FROM":    KwFrom,
	"WHERE":   KwWhere,
	"ORDER":   KwOrder,
	"BY":      KwBy,
	"ASC":     KwAsc,
	"DESC":    KwDesc,
	"JOIN":    KwJoin,
	"INNER":   KwInner,
	"OUTER":   KwOuter,
	"LEFT":    KwLeft,
	"RIGHT":   KwRight,
	"AS":      KwAs,
	"LIKE":    KwLike,
	"IN":      KwIn,
	"IS":      KwIs,
	"NOT":     KwNot,
	"NULL":    KwNull,
	"AND":     KwAnd,
	"OR":      KwOr,
	"BETWEEN": KwBetween,
	"DIV":     KwDiv,
	"MOD":     KwMod,
}

// operatorKeywords retags a subset of keywords as Operator tokens while
// keeping their keyword text, so the parser can treat LIKE, IN, IS, NOT,
// AND, OR, BETWEEN, DIV and MOD uniformly with symbolic operators.
var operatorKeywords = map[Keyword]Op{
	KwLike:    OpLike,
	KwIn:      OpIn,
	KwIs:      OpIs,
	KwNot:     OpNot,
	KwAnd:     OpAnd,
	KwOr:      OpOr,
	KwBetween: OpBetween,
	KwDiv:     OpIDiv,
	KwMod:     OpMod,
}

// lookupKeyword returns the Keyword for s (case-insensitive) and whether
// it was found.
func lookupKeyword(s string) (Keyword, bool) {
	kw, ok := keywords[strings.ToUpper(s)]
	return kw, ok
}
