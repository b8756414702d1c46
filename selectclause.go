package ddbc

// parseSelect interprets the (optional) SELECT clause. An absent clause
// defaults to a single whole-entity projection of the sole FromItem.
// Present, it is a comma-separated list where each item is a bare
// property name, a bare alias (whole entity), or alias.property.
// Exactly one whole-entity item and nothing else, or one-or-more
// property items, are the only legal shapes; mixing is a SyntaxError.
func parseSelect(tokens []*Token, start, end int, items []*FromItem, source string) ([]SelectItem, error) {
	sole := 0 // this core supports exactly one FromItem

	if start == noRange {
		return []SelectItem{{FromIdx: sole, Property: nil}}, nil
	}

	groups := splitOnComma(tokens[start:end])

	var result []SelectItem
	wholeEntity := false

	for _, g := range groups {
		if len(g) == 0 {
			return nil, newSyntaxError(source, tokenPos(tokens, start, source), "empty item in SELECT list")
		}
		item, isWhole, err := parseSelectItem(g, items, source)
		if err != nil {
			return nil, err
		}
		if isWhole {
			wholeEntity = true
		}
		result = append(result, item)
	}

	if wholeEntity && len(result) > 1 {
		return nil, newSyntaxError(source, tokenPos(tokens, start, source), "SELECT cannot mix a whole-entity projection with other items")
	}

	logs.Tracef("select: %d item(s), wholeEntity=%v", len(result), wholeEntity)
	return result, nil
}

func parseSelectItem(g []*Token, items []*FromItem, source string) (SelectItem, bool, error) {
	switch len(g) {
	case 1:
		tok := g[0]
		if tok.Kind != KindIdent && tok.Kind != KindAlias {
			return SelectItem{}, false, newSyntaxError(source, tok.Pos, "expected a property or alias in SELECT, found %q", tok.Text)
		}
		if idx, ok := findFromItemByAlias(items, tok.Text); ok {
			return SelectItem{FromIdx: idx, Property: nil}, true, nil
		}
		sole := 0
		prop, err := items[sole].Entity.FindProperty(tok.Text)
		if err != nil {
			return SelectItem{}, false, newSyntaxError(source, tok.Pos, "unknown property %q: %v", tok.Text, err)
		}
		return SelectItem{FromIdx: sole, Property: prop}, false, nil
	case 3:
		aliasTok, dotTok, propTok := g[0], g[1], g[2]
		if dotTok.Kind != KindDot {
			return SelectItem{}, false, newSyntaxError(source, dotTok.Pos, "expected '.' in SELECT item, found %q", dotTok.Text)
		}
		idx, ok := findFromItemByAlias(items, aliasTok.Text)
		if !ok {
			return SelectItem{}, false, newSyntaxError(source, aliasTok.Pos, "unknown alias %q", aliasTok.Text)
		}
		prop, err := items[idx].Entity.FindProperty(propTok.Text)
		if err != nil {
			return SelectItem{}, false, newSyntaxError(source, propTok.Pos, "unknown property %q: %v", propTok.Text, err)
		}
		return SelectItem{FromIdx: idx, Property: prop}, false, nil
	default:
		return SelectItem{}, false, newSyntaxError(source, g[0].Pos, "malformed SELECT item")
	}
}

func findFromItemByAlias(items []*FromItem, text string) (int, bool) {
	for i, it := range items {
		if it.Alias != "" && it.Alias == text {
			return i, true
		}
	}
	return -1, false
}

// splitOnComma partitions tokens on top-level Comma tokens. There are
// no brackets inside SELECT/ORDER BY items in this grammar, so no
// bracket-depth tracking is needed.
func splitOnComma(tokens []*Token) [][]*Token {
	var groups [][]*Token
	var cur []*Token
	for _, t := range tokens {
		if t.Kind == KindComma {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)
	return groups
}
