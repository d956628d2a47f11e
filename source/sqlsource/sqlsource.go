/*
Package sqlsource provides implementations of source.Source that read
definitions from a SQL database table with an id and a definition
column.
*/
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/grove/source"
	"github.com/pkg/errors"
)

// DefaultTable is the table definitions are read from unless another
// one is given
const DefaultTable = "definitions"

type sqlSource struct {
	db    *sql.DB
	query string
}

/*
NewPostgres takes a PostgreSQL connection URL and the name of a table
and returns a source.Source reading from that table, or an error if the
database cannot be opened. Placeholders use the $n syntax.
*/
func NewPostgres(url, table string) (source.Source, error) {
	return open("postgres", url, table, "$1")
}

/*
NewSQLite3 takes a path to an SQLite3 database file and the name of a
table and returns a source.Source reading from that table, or an error
if it fails to open as an sqlite3 database.
*/
func NewSQLite3(path, table string) (source.Source, error) {
	return open("sqlite3", path, table, "?")
}

// New returns a source.Source over an already open database, with
// placeholder as the syntax for the id parameter of the query
func New(db *sql.DB, table, placeholder string) (source.Source, error) {
	query, err := selectQuery(table, placeholder)
	if err != nil {
		return nil, err
	}
	return &sqlSource{db, query}, nil
}

func open(driver, dsn, table, placeholder string) (source.Source, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", driver)
	}
	s, err := New(db, table, placeholder)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func selectQuery(table, placeholder string) (string, error) {
	if table == "" {
		table = DefaultTable
	}
	if strings.ContainsAny(table, `"`) {
		return "", fmt.Errorf(`table name '%s' contains invalid character '"'`, table)
	}
	return fmt.Sprintf(`SELECT "definition" FROM "%s" WHERE "id" = %s`, table, placeholder), nil
}

func (s *sqlSource) Get(ctx context.Context, id string) ([]byte, error) {
	var definition []byte
	err := s.db.QueryRowContext(ctx, s.query, id).Scan(&definition)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(source.ErrNotFound, "%q", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving definition %q", id)
	}
	return definition, nil
}

// Close closes the database
func (s *sqlSource) Close(ctx context.Context) error {
	return s.db.Close()
}
