package ddbc

// Parsed is the immutable result of Parse: resolved FROM/SELECT/ORDER BY
// clauses and a folded WHERE-clause AST (nil if the query had none),
// ready to be rendered against a Dialect by Emit. A Parsed value is
// schema-bound but dialect-independent; the same Parsed can be emitted
// against several dialects.
type Parsed struct {
	source  string
	items   []*FromItem
	selects []SelectItem
	orders  []OrderByItem
	where   *Token
}

// Parse lexes and parses source against schema: splitting it into
// clauses, resolving the FROM entity, the SELECT projection, the
// ORDER BY items, and reducing the WHERE clause to an expression tree.
// It returns a LexicalError or SyntaxError identifying the offending
// position in source on any failure.
func Parse(source string, schema Schema) (*Parsed, error) {
	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}

	ranges, err := splitClauses(tokens, source)
	if err != nil {
		return nil, err
	}

	fromItem, err := parseFrom(tokens, ranges.fromStart, ranges.fromEnd, schema, source)
	if err != nil {
		return nil, err
	}
	items := []*FromItem{fromItem}
	retagEntityAndAliasTokens(tokens, 0, fromItem)

	selects, err := parseSelect(tokens, ranges.selectStart, ranges.selectEnd, items, source)
	if err != nil {
		return nil, err
	}

	orders, err := parseOrderBy(tokens, ranges.orderStart, ranges.orderEnd, items, source)
	if err != nil {
		return nil, err
	}

	where, err := buildWhereExpr(tokens, ranges.whereStart, ranges.whereEnd, items, source)
	if err != nil {
		return nil, err
	}

	logs.Tracef("parse: %d from item(s), %d select item(s), %d order item(s), where=%v",
		len(items), len(selects), len(orders), where != nil)

	return &Parsed{
		source:  source,
		items:   items,
		selects: selects,
		orders:  orders,
		where:   where,
	}, nil
}
