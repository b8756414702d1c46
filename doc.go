// Package ddbc implements the core of a Hibernate-style object-query
// language: a lexer, a top-down clause parser that reduces the WHERE
// clause to an operator-precedence AST, and a dialect-aware SQL emitter.
//
// A query such as
//
//	FROM User AS u WHERE u.name LIKE :pattern ORDER BY u.id
//
// is parsed against a Schema (which resolves "User" and "name" to a table
// and column) and emitted, against a Dialect (which controls identifier
// quoting and string escaping), as ordinary SQL with positional '?'
// placeholders and a map from each named parameter to the placeholder
// positions it occupies:
//
//	parsed, err := ddbc.Parse(src, schema)
//	query, err := parsed.Emit(dialect.Default{})
//	values := query.Bind()
//	values.Set("pattern", "%smith%")
//	err = values.Apply(writer)
//
// The package does not open connections, run queries, or hydrate result
// sets; see the driver subpackage for a thin database/sql adapter, and
// the schema and dialect subpackages for ready-made collaborators.
package ddbc
