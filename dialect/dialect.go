// Package dialect supplies the identifier-quoting and string-escaping
// rules ddbc.Dialect needs, one implementation per SQL database family.
// Each value is pure and safe to share across goroutines, as ddbc
// requires: it holds quoting rules only, no connection state.
package dialect

import "strings"

// reservedWords lists the identifiers that collide with a keyword in at
// least one supported dialect and therefore always need quoting, even
// though they're otherwise plain. Not exhaustive — just the ones a
// schema is likely to use as a column or table name.
var reservedWords = map[string]bool{
	"order": true, "select": true, "from": true, "where": true,
	"group": true, "table": true, "user": true, "index": true,
	"key": true, "limit": true, "offset": true, "by": true,
	"desc": true, "asc": true, "and": true, "or": true,
}

// needsQuoting reports whether name must be wrapped: it's empty, it's a
// reserved word, or it isn't a plain [A-Za-z_][A-Za-z0-9_]* identifier.
func needsQuoting(name string) bool {
	if name == "" || reservedWords[strings.ToLower(name)] {
		return true
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return true
		}
	}
	return false
}

// Default is an ANSI-leaning dialect: double-quoted identifiers (only
// when required, e.g. a reserved word), single-quoted strings with
// backslash-escaped quotes, newlines and backslashes. Suitable for any
// database that has no dialect of its own registered yet.
type Default struct{}

// QuoteIdentifier double-quotes name when it needs it, doubling any
// embedded double quote; otherwise returns it unchanged.
func (Default) QuoteIdentifier(name string) string {
	if !needsQuoting(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// defaultStringEscaper backslash-escapes backslashes, single quotes and
// newlines: quoteString("a'b") -> 'a\'b'; quoteString("a\nc") -> 'a\nc'.
var defaultStringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

// QuoteString single-quotes s, backslash-escaping embedded quotes,
// newlines and backslashes.
func (Default) QuoteString(s string) string {
	return `'` + defaultStringEscaper.Replace(s) + `'`
}

// MySQL back-tick-quotes identifiers and backslash-escapes strings, the
// way MySQL does by default (sql_mode without ANSI_QUOTES/NO_BACKSLASH_ESCAPES).
type MySQL struct{}

// QuoteIdentifier back-tick-quotes name when it needs it, doubling any
// embedded back-tick; otherwise returns it unchanged.
func (MySQL) QuoteIdentifier(name string) string {
	if !needsQuoting(name) {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

var mysqlStringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

// QuoteString single-quotes s, backslash-escaping backslashes, single
// quotes and newlines.
func (MySQL) QuoteString(s string) string {
	return `'` + mysqlStringEscaper.Replace(s) + `'`
}

// Postgres double-quotes identifiers (only when required) and
// single-quotes strings with doubled embedded quotes, assuming
// standard_conforming_strings (the default since Postgres 9.1): no
// backslash escaping.
type Postgres struct{}

// QuoteIdentifier double-quotes name when it needs it, doubling any
// embedded double quote; otherwise returns it unchanged.
func (Postgres) QuoteIdentifier(name string) string {
	if !needsQuoting(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteString single-quotes s, doubling any embedded single quote.
func (Postgres) QuoteString(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `''`) + `'`
}
