package ddbc

// clauseRanges records, as [start,end) index pairs into the flat token
// stream, the half-open span occupied by each clause's content (the
// keyword tokens themselves are excluded). A missing optional clause is
// represented by start == end == -1.
type clauseRanges struct {
	selectStart, selectEnd int
	fromStart, fromEnd     int
	whereStart, whereEnd   int
	orderStart, orderEnd   int
}

const noRange = -1

func noClauseRange() (int, int) { return noRange, noRange }

// splitClauses locates the first top-level occurrence of each clause
// keyword and validates their relative ordering. There is no nested
// query grammar in this language (no sub-selects), so "first
// occurrence" needs no bracket-depth tracking: SELECT/FROM/ORDER never
// legally recur inside a WHERE clause's parenthesized groups.
func splitClauses(tokens []*Token, source string) (*clauseRanges, error) {
	selectIdx := findKeyword(tokens, KwSelect, 0)
	fromIdx := findKeyword(tokens, KwFrom, 0)
	whereIdx := findKeyword(tokens, KwWhere, 0)
	orderIdx := findKeyword(tokens, KwOrder, 0)

	if fromIdx < 0 {
		return nil, newSyntaxError(source, endPos(tokens, source), "missing required FROM clause")
	}

	r := &clauseRanges{}

	if selectIdx >= 0 {
		if selectIdx >= fromIdx {
			return nil, newSyntaxError(source, tokenPos(tokens, selectIdx, source), "SELECT must precede FROM")
		}
		if fromIdx-selectIdx < 2 {
			return nil, newSyntaxError(source, tokenPos(tokens, selectIdx, source), "SELECT clause must contain at least one token")
		}
		r.selectStart, r.selectEnd = selectIdx+1, fromIdx
	} else {
		r.selectStart, r.selectEnd = noClauseRange()
	}

	fromEnd := len(tokens)
	if whereIdx >= 0 {
		fromEnd = whereIdx
	} else if orderIdx >= 0 {
		fromEnd = orderIdx
	}
	r.fromStart, r.fromEnd = fromIdx+1, fromEnd
	if r.fromStart >= r.fromEnd {
		return nil, newSyntaxError(source, tokenPos(tokens, fromIdx, source), "FROM clause must name an entity")
	}

	if whereIdx >= 0 {
		if whereIdx < fromIdx {
			return nil, newSyntaxError(source, tokenPos(tokens, whereIdx, source), "WHERE must follow FROM")
		}
		whereEnd := len(tokens)
		if orderIdx >= 0 {
			whereEnd = orderIdx
		}
		r.whereStart, r.whereEnd = whereIdx+1, whereEnd
		if r.whereStart >= r.whereEnd {
			return nil, newSyntaxError(source, tokenPos(tokens, whereIdx, source), "WHERE clause must contain an expression")
		}
	} else {
		r.whereStart, r.whereEnd = noClauseRange()
	}

	if orderIdx >= 0 {
		if orderIdx < fromIdx {
			return nil, newSyntaxError(source, tokenPos(tokens, orderIdx, source), "ORDER BY must follow FROM")
		}
		if orderIdx+1 >= len(tokens) || tokens[orderIdx+1].Keyword != KwBy {
			return nil, newSyntaxError(source, tokenPos(tokens, orderIdx, source), "ORDER must be immediately followed by BY")
		}
		if orderIdx+2 >= len(tokens) {
			return nil, newSyntaxError(source, tokenPos(tokens, orderIdx, source), "ORDER BY clause must contain at least one item")
		}
		r.orderStart, r.orderEnd = orderIdx+2, len(tokens)
	} else {
		r.orderStart, r.orderEnd = noClauseRange()
	}

	logs.Tracef("clauses: select=[%d,%d) from=[%d,%d) where=[%d,%d) order=[%d,%d)",
		r.selectStart, r.selectEnd, r.fromStart, r.fromEnd, r.whereStart, r.whereEnd, r.orderStart, r.orderEnd)

	return r, nil
}

func findKeyword(tokens []*Token, kw Keyword, from int) int {
	for i := from; i < len(tokens); i++ {
		if tokens[i].Kind == KindKeyword && tokens[i].Keyword == kw {
			return i
		}
	}
	return -1
}

func tokenPos(tokens []*Token, idx int, source string) int {
	if idx < 0 || idx >= len(tokens) {
		return endPos(tokens, source)
	}
	return tokens[idx].Pos
}

func endPos(tokens []*Token, source string) int {
	if len(tokens) == 0 {
		return 0
	}
	last := tokens[len(tokens)-1]
	return last.Pos + len(last.Text)
}
