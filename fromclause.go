package ddbc

// parseFrom interprets the FROM clause's token range: Entity, Entity
// alias, or Entity AS alias. It resolves the entity against schema and
// returns the single FromItem this core supports (the language accepts
// exactly one entity in FROM; see spec's single-entity Non-goal).
func parseFrom(tokens []*Token, start, end int, schema Schema, source string) (*FromItem, error) {
	clause := tokens[start:end]

	nameTok := clause[0]
	if nameTok.Kind != KindIdent {
		return nil, newSyntaxError(source, nameTok.Pos, "expected an entity name in FROM, found %q", nameTok.Text)
	}

	entity, err := schema.FindEntity(nameTok.Text)
	if err != nil {
		return nil, newSyntaxError(source, nameTok.Pos, "unknown entity %q: %v", nameTok.Text, err)
	}

	item := &FromItem{
		EntityName: nameTok.Text,
		Entity:     entity,
		SQLAlias:   "_t1",
	}

	rest := clause[1:]
	switch len(rest) {
	case 0:
		// no alias
	case 1:
		if rest[0].Kind != KindIdent {
			return nil, newSyntaxError(source, rest[0].Pos, "expected an alias after entity name, found %q", rest[0].Text)
		}
		item.Alias = rest[0].Text
	case 2:
		if rest[0].Kind != KindKeyword || rest[0].Keyword != KwAs {
			return nil, newSyntaxError(source, rest[0].Pos, "expected AS before alias, found %q", rest[0].Text)
		}
		if rest[1].Kind != KindIdent {
			return nil, newSyntaxError(source, rest[1].Pos, "expected an alias after AS, found %q", rest[1].Text)
		}
		item.Alias = rest[1].Text
	default:
		return nil, newSyntaxError(source, rest[0].Pos, "unexpected tokens after FROM entity/alias")
	}

	logs.Tracef("from: entity=%s alias=%q sqlAlias=%s", item.EntityName, item.Alias, item.SQLAlias)
	return item, nil
}

// retagEntityAndAliasTokens walks the entire token stream and retags
// every token whose text equals the FromItem's entity name to Entity,
// and every token whose text equals its alias to Alias, annotating each
// with the resolved descriptor and the FromItem's index. This is the
// only place the parser mutates tokens outside the WHERE range, and it
// runs once, before the expression parser's field-resolution pass reads
// those tags.
func retagEntityAndAliasTokens(tokens []*Token, fromIdx int, item *FromItem) {
	for _, t := range tokens {
		if t.Kind != KindIdent {
			continue
		}
		switch t.Text {
		case item.EntityName:
			t.Kind = KindEntity
			t.Entity = item.Entity
			t.FromIdx = fromIdx
		case item.Alias:
			if item.Alias == "" {
				continue
			}
			t.Kind = KindAlias
			t.FromIdx = fromIdx
		}
	}
}
