package ddbc

// Kind tags every token produced by the lexer and, later, every node
// folded into the WHERE-clause AST. Non-compound kinds never carry
// children; Expression, Braces and OpExpr do.
type Kind int

const (
	KindKeyword Kind = iota
	KindIdent
	KindNumber
	KindString
	KindOperator
	KindDot
	KindOpenBracket
	KindCloseBracket
	KindComma
	KindEntity
	KindField
	KindAlias
	KindParameter
	KindExpression
	KindBraces
	KindOpExpr
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "Keyword"
	case KindIdent:
		return "Ident"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindOperator:
		return "Operator"
	case KindDot:
		return "Dot"
	case KindOpenBracket:
		return "OpenBracket"
	case KindCloseBracket:
		return "CloseBracket"
	case KindComma:
		return "Comma"
	case KindEntity:
		return "Entity"
	case KindField:
		return "Field"
	case KindAlias:
		return "Alias"
	case KindParameter:
		return "Parameter"
	case KindExpression:
		return "Expression"
	case KindBraces:
		return "Braces"
	case KindOpExpr:
		return "OpExpr"
	}
	return "Unknown"
}

// Keyword identifies which reserved word an identifier-shaped token was
// retagged from. Zero value (KwNone) means the token is not a keyword.
type Keyword int

const (
	KwNone Keyword = iota
	KwSelect
	KwFrom
	KwWhere
	KwOrder
	KwBy
	KwAsc
	KwDesc
	KwJoin
	KwInner
	KwOuter
	KwLeft
	KwRight
	KwAs
	KwLike
	KwIn
	KwIs
	KwNot
	KwNull
	KwAnd
	KwOr
	KwBetween
	KwDiv
	KwMod
)

// Op identifies an operator, whether it arrived as punctuation (= < >
// etc.) or as a retagged operator keyword (LIKE, AND, BETWEEN, ...), or
// was synthesized by a folding pass (UNARY_PLUS, IS_NULL, ...).
type Op int

const (
	OpNone Op = iota
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpIDiv
	OpMod
	OpLike
	OpIn
	OpIs
	OpNot
	OpAnd
	OpOr
	OpBetween
	OpUnaryPlus
	OpUnaryMinus
	OpIsNull
	OpIsNotNull
)

// precedence gives the binding power of op; higher binds tighter. IN and
// IS are included so the shunting-yard fold picks them up like any other
// binary operator, even though the emitter later refuses to render them
// (see the IN/IS open question in the operator-folding design notes).
var precedence = map[Op]int{
	OpUnaryPlus:  15,
	OpUnaryMinus: 15,
	OpIsNull:     15,
	OpIsNotNull:  15,
	OpIs:         13,
	OpIn:         12,
	OpLike:       11,
	OpMul:        10,
	OpDiv:        10,
	OpIDiv:       10,
	OpMod:        10,
	OpAdd:        9,
	OpSub:        9,
	OpBetween:    7,
	OpNot:        6,
	OpEq:         5,
	OpNe:         5,
	OpLt:         5,
	OpGt:         5,
	OpLe:         5,
	OpGe:         5,
	OpAnd:        4,
	OpOr:         3,
}

// noFromIdx marks a token or item that carries no FromItem reference.
const noFromIdx = -1

// Token is the single tagged-union node used for every stage: raw
// lexical tokens, and the nodes folded out of them while reducing the
// WHERE clause to an AST. Sub-fields are meaningful only for the kinds
// documented alongside them; this mirrors the "single struct, Option
// sub-fields" choice over a sum type, matching the multi-pass in-place
// rewriting this parser does.
type Token struct {
	Pos           int    // byte offset in the original source
	Kind          Kind
	Text          string // verbatim source text (sans surrounding quotes for String)
	TrailingSpace string // whitespace that followed this token in the source

	Keyword Keyword // valid when Kind == KindKeyword
	Op      Op      // valid when Kind == KindOperator or KindOpExpr

	// Resolved references, populated by the from/select/orderby/where
	// parsers. FromIdx indexes into Parsed.items; noFromIdx means unset.
	FromIdx  int
	Entity   EntityDescriptor
	Property PropertyDescriptor

	// Children holds operands for compound kinds (Expression, Braces,
	// OpExpr). Non-compound kinds always have a nil Children.
	Children []*Token
}

func newToken(pos int, kind Kind, text string) *Token {
	return &Token{Pos: pos, Kind: kind, Text: text, FromIdx: noFromIdx}
}

// isExpressionBearing reports whether t denotes a value at the AST
// level, i.e. is legal as an operand for an operator reduction.
func isExpressionBearing(t *Token) bool {
	switch t.Kind {
	case KindExpression, KindBraces, KindOpExpr, KindParameter, KindField, KindString, KindNumber:
		return true
	}
	return false
}
