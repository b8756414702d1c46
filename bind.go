package ddbc

import (
	"sort"
	"strings"
)

// ParameterValues holds the values bound so far for one ParsedQuery
// execution, plus the set of named parameters still awaiting a value.
// It is mutable and owned exclusively by the caller applying it to a
// single statement; it is not safe for concurrent mutation.
type ParameterValues struct {
	query   *ParsedQuery
	values  map[string]interface{}
	unbound map[string]bool
}

// Bind creates a ParameterValues tracking every named parameter q's SQL
// mentions, all initially unbound.
func (q *ParsedQuery) Bind() *ParameterValues {
	unbound := make(map[string]bool, len(q.Params))
	for name := range q.Params {
		unbound[name] = true
	}
	return &ParameterValues{
		query:   q,
		values:  make(map[string]interface{}, len(q.Params)),
		unbound: unbound,
	}
}

// Set assigns value to the named parameter, failing BindError if name
// does not occur anywhere in the query this ParameterValues was bound
// from.
func (pv *ParameterValues) Set(name string, value interface{}) error {
	if _, ok := pv.query.Params[name]; !ok {
		return newBindError("unknown parameter %q", name)
	}
	pv.values[name] = value
	delete(pv.unbound, name)
	return nil
}

// CheckAllBound fails BindError naming every parameter still awaiting a
// value.
func (pv *ParameterValues) CheckAllBound() error {
	if len(pv.unbound) == 0 {
		return nil
	}
	names := make([]string, 0, len(pv.unbound))
	for name := range pv.unbound {
		names = append(names, name)
	}
	sort.Strings(names)
	return newBindError("unbound parameter(s): %s", strings.Join(names, ", "))
}

// Apply calls writer.SetValue for every positional index of every bound
// parameter, in ascending index order, so a writer that issues its
// driver calls in that order produces deterministic results. It does
// not itself require CheckAllBound to have passed; callers that need
// every parameter bound before executing should call it explicitly.
func (pv *ParameterValues) Apply(writer StatementWriter) error {
	type occurrence struct {
		index int
		name  string
	}
	var occurrences []occurrence
	for name, indices := range pv.query.Params {
		if pv.unbound[name] {
			continue
		}
		for _, idx := range indices {
			occurrences = append(occurrences, occurrence{index: idx, name: name})
		}
	}
	sort.Slice(occurrences, func(i, j int) bool { return occurrences[i].index < occurrences[j].index })

	for _, occ := range occurrences {
		if err := writer.SetValue(occ.index, pv.values[occ.name]); err != nil {
			return newBindError("writer rejected value for parameter %q at index %d: %v", occ.name, occ.index, err)
		}
	}
	return nil
}
