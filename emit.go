package ddbc

import "strings"

// ParsedQuery is the immutable, self-contained output of Emit: the
// rendered SQL string plus everything a caller needs to bind parameters
// and interpret the result set. It holds no reference back to the
// Parsed value or the token tree that produced it.
type ParsedQuery struct {
	Source string
	SQL    string
	// Params maps each named parameter to the list of 1-based
	// positional indices of the '?' placeholders it occupies, in
	// left-to-right emission order.
	Params map[string][]int
	// Entity is set when the query used a whole-entity projection, nil
	// otherwise.
	Entity   EntityDescriptor
	ColCount int
}

// canonicalOpText gives the SQL spelling emitted for each operator,
// independent of how the user capitalized a keyword operator or which
// of an operator's spellings (== vs =, <> vs !=) they wrote.
var canonicalOpText = map[Op]string{
	OpEq:         "=",
	OpNe:         "!=",
	OpLt:         "<",
	OpGt:         ">",
	OpLe:         "<=",
	OpGe:         ">=",
	OpAdd:        "+",
	OpSub:        "-",
	OpMul:        "*",
	OpDiv:        "/",
	OpUnaryPlus:  "+",
	OpUnaryMinus: "-",
	OpIDiv:       "DIV",
	OpMod:        "MOD",
	OpLike:       "LIKE",
	OpAnd:        "AND",
	OpOr:         "OR",
	OpNot:        "NOT",
	OpBetween:    "BETWEEN",
	OpIsNull:     "IS NULL",
	OpIsNotNull:  "IS NOT NULL",
	OpIn:         "IN",
	OpIs:         "IS",
}

// leafProperties flattens entity's properties into their leaf (non-
// embedded) columns, recursing into embedded composites: per the
// Embedded property glossary entry, those columns live in the same row,
// so a whole-entity projection must enumerate them too rather than
// reference the composite property itself.
func leafProperties(entity EntityDescriptor) []PropertyDescriptor {
	var out []PropertyDescriptor
	for i := 0; i < entity.PropertyCount(); i++ {
		p := entity.PropertyAt(i)
		if p.IsEmbedded() {
			out = append(out, leafProperties(p.ReferencedEntity())...)
			continue
		}
		out = append(out, p)
	}
	return out
}

// Emit walks the parsed clauses and the WHERE AST, consulting dialect
// for identifier quoting and string escaping, and assigns 1-based
// positional indices to each named-parameter occurrence in left-to-right
// emission order.
func (p *Parsed) Emit(dialect Dialect) (*ParsedQuery, error) {
	var sb strings.Builder
	params := map[string][]int{}
	next := 1

	var entity EntityDescriptor
	colCount := 0

	sb.WriteString("SELECT ")
	if len(p.selects) == 1 && p.selects[0].Property == nil {
		item := p.items[p.selects[0].FromIdx]
		entity = item.Entity
		for i, prop := range leafProperties(entity) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(item.SQLAlias)
			sb.WriteString(".")
			sb.WriteString(dialect.QuoteIdentifier(prop.ColumnName()))
			colCount++
		}
	} else {
		for i, sel := range p.selects {
			if i > 0 {
				sb.WriteString(", ")
			}
			item := p.items[sel.FromIdx]
			sb.WriteString(item.SQLAlias)
			sb.WriteString(".")
			sb.WriteString(dialect.QuoteIdentifier(sel.Property.ColumnName()))
			colCount++
		}
	}

	sole := p.items[0]
	sb.WriteString(" FROM ")
	sb.WriteString(dialect.QuoteIdentifier(sole.Entity.TableName()))
	sb.WriteString(" AS ")
	sb.WriteString(sole.SQLAlias)

	if p.where != nil {
		sb.WriteString(" WHERE ")
		if err := emitExpr(&sb, p.where, 0, dialect, p.items, params, &next, p.source); err != nil {
			return nil, err
		}
	}

	if len(p.orders) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, o := range p.orders {
			if i > 0 {
				sb.WriteString(", ")
			}
			item := p.items[o.FromIdx]
			sb.WriteString(item.SQLAlias)
			sb.WriteString(".")
			sb.WriteString(dialect.QuoteIdentifier(o.Property.ColumnName()))
			if !o.Ascending {
				sb.WriteString(" DESC")
			}
		}
	}

	logs.Tracef("emit: %d param occurrence(s), colCount=%d", next-1, colCount)

	return &ParsedQuery{
		Source:   p.source,
		SQL:      sb.String(),
		Params:   params,
		Entity:   entity,
		ColCount: colCount,
	}, nil
}

func emitExpr(sb *strings.Builder, node *Token, parentPrec int, dialect Dialect, items []*FromItem, params map[string][]int, next *int, source string) error {
	switch node.Kind {
	case KindField:
		item := items[node.FromIdx]
		sb.WriteString(item.SQLAlias)
		sb.WriteString(".")
		sb.WriteString(dialect.QuoteIdentifier(node.Property.ColumnName()))
		return nil
	case KindNumber:
		sb.WriteString(node.Text)
		return nil
	case KindString:
		sb.WriteString(dialect.QuoteString(node.Text))
		return nil
	case KindParameter:
		sb.WriteString("?")
		params[node.Text] = append(params[node.Text], *next)
		*next++
		return nil
	case KindOpExpr:
		return emitOpExpr(sb, node, parentPrec, dialect, items, params, next, source)
	default:
		return newSyntaxError(source, node.Pos, "unexpected %s token reaching emission", node.Kind)
	}
}

func emitOpExpr(sb *strings.Builder, node *Token, parentPrec int, dialect Dialect, items []*FromItem, params map[string][]int, next *int, source string) error {
	if node.Op == OpIn || node.Op == OpIs {
		return newSyntaxError(source, node.Pos, "operator %q cannot be emitted directly", node.Text)
	}

	thisPrec := precedence[node.Op]
	needBraces := thisPrec < parentPrec
	if needBraces {
		sb.WriteString("(")
	}

	opText := canonicalOpText[node.Op]

	switch {
	case isPrefixUnary(node.Op):
		sb.WriteString(opText)
		sb.WriteString(" ")
		if err := emitExpr(sb, node.Children[0], thisPrec, dialect, items, params, next, source); err != nil {
			return err
		}
	case isPostfixUnary(node.Op):
		if err := emitExpr(sb, node.Children[0], thisPrec, dialect, items, params, next, source); err != nil {
			return err
		}
		sb.WriteString(" ")
		sb.WriteString(opText)
	case node.Op == OpBetween:
		if err := emitExpr(sb, node.Children[0], thisPrec, dialect, items, params, next, source); err != nil {
			return err
		}
		sb.WriteString(" BETWEEN ")
		if err := emitExpr(sb, node.Children[1], thisPrec, dialect, items, params, next, source); err != nil {
			return err
		}
		sb.WriteString(" AND ")
		if err := emitExpr(sb, node.Children[2], thisPrec, dialect, items, params, next, source); err != nil {
			return err
		}
	default:
		if err := emitExpr(sb, node.Children[0], thisPrec, dialect, items, params, next, source); err != nil {
			return err
		}
		sb.WriteString(" ")
		sb.WriteString(opText)
		sb.WriteString(" ")
		if err := emitExpr(sb, node.Children[1], thisPrec, dialect, items, params, next, source); err != nil {
			return err
		}
	}

	if needBraces {
		sb.WriteString(")")
	}
	return nil
}
