package ddbc

// buildWhereExpr runs the six ordered passes described by the language's
// WHERE-clause grammar over the clause's token range, returning the
// single reduced Token (OpExpr, Field, Parameter, or literal) that is
// the root of the WHERE AST, or nil if there is no WHERE clause.
func buildWhereExpr(tokens []*Token, start, end int, items []*FromItem, source string) (*Token, error) {
	if start == noRange {
		return nil, nil
	}

	root := &Token{
		Kind:     KindExpression,
		Children: append([]*Token(nil), tokens[start:end]...),
		FromIdx:  noFromIdx,
	}

	if err := resolveFields(root, items, source); err != nil {
		return nil, err
	}
	logs.Tracef("where pass 1 (field resolution): %d token(s)", len(root.Children))

	foldIsNull(root)
	logs.Tracef("where pass 2 (IS NULL folding): %d token(s)", len(root.Children))

	disambiguateUnary(root)
	logs.Tracef("where pass 3 (unary disambiguation)")

	if err := foldBrackets(root, source); err != nil {
		return nil, err
	}
	logs.Tracef("where pass 4 (bracket folding)")

	if err := foldOperators(root, source); err != nil {
		return nil, err
	}
	logs.Tracef("where pass 5 (operator folding)")

	elideBrackets(root)
	logs.Tracef("where pass 6 (bracket elision)")

	if len(root.Children) != 1 {
		return nil, newSyntaxError(source, whereErrorPos(root, source), "WHERE clause did not reduce to a single expression")
	}
	return root.Children[0], nil
}

func whereErrorPos(root *Token, source string) int {
	if len(root.Children) > 0 {
		return root.Children[0].Pos
	}
	return len(source)
}

// --- Pass 1: field resolution ---------------------------------------

// resolveFields collapses each maximal Ident(.Ident)* or Alias(.Ident)*
// chain in root.Children into a single Field token.
func resolveFields(root *Token, items []*FromItem, source string) error {
	children := root.Children
	out := make([]*Token, 0, len(children))

	i := 0
	for i < len(children) {
		t := children[i]
		if !isFieldHead(t) {
			out = append(out, t)
			i++
			continue
		}
		field, consumed, err := resolveFieldChain(children, i, items, source)
		if err != nil {
			return err
		}
		out = append(out, field)
		i += consumed
	}

	root.Children = out
	return nil
}

func isFieldHead(t *Token) bool {
	return t.Kind == KindIdent || t.Kind == KindAlias || t.Kind == KindEntity
}

// resolveFieldChain resolves the maximal dotted-path chain starting at
// children[i] against items, returning the collapsed Field token and
// the number of input tokens it consumed.
func resolveFieldChain(children []*Token, i int, items []*FromItem, source string) (*Token, int, error) {
	head := children[i]
	const sole = 0

	var fromIdx int
	idx := i

	if head.Kind == KindAlias {
		fromIdx = head.FromIdx
		idx = i + 1
		if idx >= len(children) || children[idx].Kind != KindDot {
			return nil, 0, newSyntaxError(source, head.Pos, "expected '.' after alias %q", head.Text)
		}
		idx++ // consume the dot
		if idx >= len(children) || !isPropertyNameToken(children[idx]) {
			return nil, 0, newSyntaxError(source, head.Pos, "expected a property name after %q.", head.Text)
		}
	} else {
		fromIdx = sole
	}

	entity := items[fromIdx].Entity
	var nameTok *Token
	var prop PropertyDescriptor

	for {
		nameTok = children[idx]
		p, err := entity.FindProperty(nameTok.Text)
		if err != nil {
			return nil, 0, newSyntaxError(source, nameTok.Pos, "unknown property %q: %v", nameTok.Text, err)
		}
		prop = p
		idx++

		if !prop.IsEmbedded() {
			break
		}
		if idx >= len(children) || children[idx].Kind != KindDot {
			return nil, 0, newSyntaxError(source, nameTok.Pos, "property %q is embedded and requires a further path segment", prop.PropertyName())
		}
		idx++ // consume the dot
		if idx >= len(children) || !isPropertyNameToken(children[idx]) {
			return nil, 0, newSyntaxError(source, children[idx-1].Pos, "expected a property name after '.'")
		}
		entity = prop.ReferencedEntity()
	}

	if idx < len(children) && children[idx].Kind == KindDot {
		return nil, 0, newSyntaxError(source, children[idx].Pos, "property %q is not embedded; unexpected trailing path segment", prop.PropertyName())
	}

	field := &Token{
		Pos:      head.Pos,
		Kind:     KindField,
		Text:     nameTok.Text,
		FromIdx:  fromIdx,
		Property: prop,
	}
	return field, idx - i, nil
}

func isPropertyNameToken(t *Token) bool {
	return t.Kind == KindIdent || t.Kind == KindEntity
}

// --- Pass 2: IS [NOT] NULL folding -----------------------------------

// foldIsNull collapses "IS NULL" and "IS NOT NULL" token runs into a
// single placeholder Operator token, left for pass 5 to reduce as a
// postfix unary operator against its left operand. Rebuilding into a
// fresh slice makes the result independent of scan direction; the
// grammar's own right-to-left note exists only to guard a shift-index
// implementation, which this one avoids.
func foldIsNull(root *Token) {
	children := root.Children
	out := make([]*Token, 0, len(children))

	i := 0
	for i < len(children) {
		t := children[i]
		if t.Kind == KindOperator && t.Op == OpIs && i+1 < len(children) {
			next := children[i+1]
			if next.Kind == KindOperator && next.Op == OpNot && i+2 < len(children) {
				third := children[i+2]
				if third.Kind == KindKeyword && third.Keyword == KwNull {
					out = append(out, &Token{Pos: t.Pos, Kind: KindOperator, Op: OpIsNotNull, Text: "IS NOT NULL", FromIdx: noFromIdx})
					i += 3
					continue
				}
			}
			if next.Kind == KindKeyword && next.Keyword == KwNull {
				out = append(out, &Token{Pos: t.Pos, Kind: KindOperator, Op: OpIsNull, Text: "IS NULL", FromIdx: noFromIdx})
				i += 2
				continue
			}
		}
		out = append(out, t)
		i++
	}

	root.Children = out
}

// --- Pass 3: unary +/- disambiguation ---------------------------------

// disambiguateUnary recurses into compound children first, then at each
// level retags any '+'/'-' operator whose immediate left neighbour is
// not expression-bearing (including having no left neighbour at all) as
// UNARY_PLUS/UNARY_MINUS.
func disambiguateUnary(root *Token) {
	_ = recurseChildrenFirst(root, func(node *Token) error {
		children := node.Children
		for i, t := range children {
			if t.Kind != KindOperator || (t.Op != OpAdd && t.Op != OpSub) {
				continue
			}
			var left *Token
			if i > 0 {
				left = children[i-1]
			}
			if left == nil || !isExpressionBearing(left) {
				if t.Op == OpAdd {
					t.Op = OpUnaryPlus
				} else {
					t.Op = OpUnaryMinus
				}
			}
		}
		return nil
	})
}

// recurseChildrenFirst visits every compound descendant of node in
// post-order, then calls process(node) to transform node's own children
// in place. Shared by the unary-disambiguation and operator-folding
// passes, the two that must see fully processed nested brackets.
func recurseChildrenFirst(node *Token, process func(*Token) error) error {
	for _, child := range node.Children {
		if child.Children != nil {
			if err := recurseChildrenFirst(child, process); err != nil {
				return err
			}
		}
	}
	return process(node)
}

// --- Pass 4: bracket folding -------------------------------------------

// foldBrackets repeatedly finds the innermost (...) pair — the last '('
// preceding the first ')' — in root.Children and replaces it with a
// Braces node holding the enclosed tokens. Because each replacement is
// innermost by construction, no explicit recursion into the new node is
// needed: the next iteration's scan naturally picks up the next
// (possibly now-outer) pair.
func foldBrackets(root *Token, source string) error {
	for {
		children := root.Children

		closeIdx := -1
		for i, t := range children {
			if t.Kind == KindCloseBracket {
				closeIdx = i
				break
			}
		}
		if closeIdx == -1 {
			for _, t := range children {
				if t.Kind == KindOpenBracket {
					return newSyntaxError(source, t.Pos, "unmatched '('")
				}
			}
			return nil
		}

		openIdx := -1
		for i := closeIdx - 1; i >= 0; i-- {
			if children[i].Kind == KindOpenBracket {
				openIdx = i
				break
			}
		}
		if openIdx == -1 {
			return newSyntaxError(source, children[closeIdx].Pos, "unmatched ')'")
		}

		inner := append([]*Token(nil), children[openIdx+1:closeIdx]...)
		braces := &Token{Pos: children[openIdx].Pos, Kind: KindBraces, Children: inner, FromIdx: noFromIdx}

		root.Children = spliceReplace(children, openIdx, closeIdx+1, braces)
	}
}

func spliceReplace(children []*Token, from, to int, replacement *Token) []*Token {
	out := make([]*Token, 0, len(children)-(to-from)+1)
	out = append(out, children[:from]...)
	out = append(out, replacement)
	out = append(out, children[to:]...)
	return out
}

// --- Pass 5: precedence-driven operator folding -------------------------

// foldOperators recurses into every Braces node first (post-order), then
// at each level repeatedly reduces the highest-precedence operator,
// leftmost among ties, until none remain.
func foldOperators(root *Token, source string) error {
	return recurseChildrenFirst(root, func(node *Token) error {
		for {
			idx, ok := highestPrecedenceOperator(node.Children)
			if !ok {
				return nil
			}
			if err := reduceOperator(node, idx, source); err != nil {
				return err
			}
		}
	})
}

func highestPrecedenceOperator(children []*Token) (int, bool) {
	best, bestPrec := -1, -1
	for i, t := range children {
		if t.Kind != KindOperator {
			continue
		}
		p := precedence[t.Op]
		if p > bestPrec {
			bestPrec, best = p, i
		}
	}
	return best, best != -1
}

func reduceOperator(node *Token, idx int, source string) error {
	children := node.Children
	opTok := children[idx]

	switch {
	case isPrefixUnary(opTok.Op):
		if idx+1 >= len(children) || !isExpressionBearing(children[idx+1]) {
			return newSyntaxError(source, opTok.Pos, "operator %q requires a right operand", opTok.Text)
		}
		right := children[idx+1]
		result := &Token{Pos: opTok.Pos, Kind: KindOpExpr, Op: opTok.Op, Text: opTok.Text, Children: []*Token{right}, FromIdx: noFromIdx}
		node.Children = spliceReplace(children, idx, idx+2, result)

	case isPostfixUnary(opTok.Op):
		if idx == 0 || !isExpressionBearing(children[idx-1]) {
			return newSyntaxError(source, opTok.Pos, "operator %q requires a left operand", opTok.Text)
		}
		left := children[idx-1]
		result := &Token{Pos: left.Pos, Kind: KindOpExpr, Op: opTok.Op, Text: opTok.Text, Children: []*Token{left}, FromIdx: noFromIdx}
		node.Children = spliceReplace(children, idx-1, idx+1, result)

	case opTok.Op == OpBetween:
		if idx == 0 || !isExpressionBearing(children[idx-1]) {
			return newSyntaxError(source, opTok.Pos, "BETWEEN requires a left operand")
		}
		if idx+3 >= len(children) {
			return newSyntaxError(source, opTok.Pos, "BETWEEN requires `low AND high`")
		}
		left, low, andTok, high := children[idx-1], children[idx+1], children[idx+2], children[idx+3]
		if !isExpressionBearing(low) || !isExpressionBearing(high) {
			return newSyntaxError(source, opTok.Pos, "BETWEEN requires expression operands")
		}
		if andTok.Kind != KindOperator || andTok.Op != OpAnd {
			return newSyntaxError(source, andTok.Pos, "BETWEEN's low value must be followed by AND, found %q", andTok.Text)
		}
		result := &Token{Pos: left.Pos, Kind: KindOpExpr, Op: OpBetween, Text: opTok.Text, Children: []*Token{left, low, high}, FromIdx: noFromIdx}
		node.Children = spliceReplace(children, idx-1, idx+4, result)

	default: // binary
		if idx == 0 || !isExpressionBearing(children[idx-1]) {
			return newSyntaxError(source, opTok.Pos, "operator %q requires a left operand", opTok.Text)
		}
		if idx+1 >= len(children) || !isExpressionBearing(children[idx+1]) {
			return newSyntaxError(source, opTok.Pos, "operator %q requires a right operand", opTok.Text)
		}
		left, right := children[idx-1], children[idx+1]
		result := &Token{Pos: left.Pos, Kind: KindOpExpr, Op: opTok.Op, Text: opTok.Text, Children: []*Token{left, right}, FromIdx: noFromIdx}
		node.Children = spliceReplace(children, idx-1, idx+2, result)
	}
	return nil
}

func isPrefixUnary(op Op) bool {
	return op == OpNot || op == OpUnaryPlus || op == OpUnaryMinus
}

func isPostfixUnary(op Op) bool {
	return op == OpIsNull || op == OpIsNotNull
}

// --- Pass 6: bracket elision ---------------------------------------------

// elideBrackets recurses and replaces any Braces node holding exactly
// one child with that child.
func elideBrackets(root *Token) {
	root.Children = elideLevel(root.Children)
}

func elideLevel(children []*Token) []*Token {
	out := make([]*Token, 0, len(children))
	for _, t := range children {
		if t.Children != nil {
			t.Children = elideLevel(t.Children)
		}
		if t.Kind == KindBraces && len(t.Children) == 1 {
			out = append(out, t.Children[0])
			continue
		}
		out = append(out, t)
	}
	return out
}
