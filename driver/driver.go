// Package driver adapts ParsedQuery/ParameterValues to database/sql: it
// opens a connection with the appropriate driver registered, rebinds
// ddbc's '?' placeholders to whatever style that driver wants, and
// implements ddbc.StatementWriter as a flat positional-argument slice
// ready to splat into Query/Exec/QueryRow.
package driver

import (
	"database/sql"
	"fmt"

	"github.com/lkorigin/ddbc"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a *sql.DB with the BindType its driverName requires.
type DB struct {
	*sql.DB
	bindType BindType
}

// Open opens driverName/dsn via database/sql.Open. The mysql, postgres
// and sqlite3 drivers are blank-imported above, so their sql.Register
// side effects always run; callers may still sql.Open any other driver
// they have separately imported, in which case Rebind falls back to
// leaving '?' placeholders untouched.
func Open(driverName, dsn string) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{DB: sqlDB, bindType: BindTypeFor(driverName)}, nil
}

// Rebind rewrites a ddbc-emitted query's '?' placeholders into db's
// native placeholder style.
func (db *DB) Rebind(query string) string {
	return Rebind(db.bindType, query)
}

// ArgWriter implements ddbc.StatementWriter by accumulating positional
// arguments for one database/sql call.
type ArgWriter struct {
	args []interface{}
}

// NewArgWriter sizes an ArgWriter for q's total number of '?' occurrences
// (not q.ColCount, which counts projected columns, a different count).
func NewArgWriter(q *ddbc.ParsedQuery) *ArgWriter {
	n := 0
	for _, indices := range q.Params {
		n += len(indices)
	}
	return &ArgWriter{args: make([]interface{}, n)}
}

// SetValue implements ddbc.StatementWriter.
func (w *ArgWriter) SetValue(index int, value interface{}) error {
	if index < 1 || index > len(w.args) {
		return fmt.Errorf("driver: parameter index %d out of range [1,%d]", index, len(w.args))
	}
	w.args[index-1] = value
	return nil
}

// Args returns the accumulated positional arguments in '?' order, ready
// to splat into (*sql.DB).Query/Exec/QueryRow after Rebind.
func (w *ArgWriter) Args() []interface{} {
	return w.args
}
