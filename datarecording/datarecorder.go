// Package datarecording stores structured simulation output in SQLite.
package datarecording

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a new table that stores entries shaped like the
	// sample entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData writes a same-typed entry into a table that already exists
	InsertData(tableName string, entry any)

	// ListTables returns a slice containing the names of all tables
	ListTables() []string

	// Flush writes all the buffered entries into the database
	Flush()
}

// New creates a DataRecorder that writes into a SQLite database at the
// given path. An empty path picks a unique file name in the working
// directory.
func New(path string) DataRecorder {
	if path == "" {
		path = "dmacsim_" + xid.New().String() + ".db"
	}

	w := &sqliteWriter{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	w.init()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewWithDB creates a DataRecorder that writes into the given database.
func NewWithDB(db *sql.DB) DataRecorder {
	w := &sqliteWriter{
		db:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	entries    []any
}

// sqliteWriter is the writer that writes data into a SQLite database
type sqliteWriter struct {
	db *sql.DB

	dbName    string
	tables    map[string]*table
	batchSize int
}

func (t *sqliteWriter) init() {
	db, err := sql.Open("sqlite3", t.dbName)
	if err != nil {
		panic(err)
	}

	t.db = db
}

// CreateTable creates a table whose columns are derived from the fields of
// the sample entry.
func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	if _, ok := t.tables[tableName]; ok {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	fields := structs.New(sampleEntry).Fields()
	columns := make([]string, 0, len(fields))
	for _, f := range fields {
		columns = append(columns,
			f.Name()+" "+sqlType(reflect.ValueOf(f.Value()).Kind()))
	}

	createStmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s);",
		tableName, strings.Join(columns, ", "))
	t.mustExecute(createStmt)

	t.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
	}
}

// InsertData buffers one entry for the given table.
func (t *sqliteWriter) InsertData(tableName string, entry any) {
	tbl, ok := t.tables[tableName]
	if !ok {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != tbl.structType {
		panic(fmt.Sprintf(
			"table %s stores entries of type %s, not %s",
			tableName, tbl.structType, reflect.TypeOf(entry)))
	}

	tbl.entries = append(tbl.entries, entry)
	if len(tbl.entries) >= t.batchSize {
		t.Flush()
	}
}

// ListTables returns the names of all the tables created so far.
func (t *sqliteWriter) ListTables() []string {
	names := make([]string, 0, len(t.tables))
	for name := range t.tables {
		names = append(names, name)
	}
	return names
}

// Flush writes all the buffered entries to the database.
func (t *sqliteWriter) Flush() {
	t.mustExecute("BEGIN TRANSACTION")
	defer t.mustExecute("COMMIT TRANSACTION")

	for name, tbl := range t.tables {
		if len(tbl.entries) == 0 {
			continue
		}

		statement := t.prepareInsertStatement(name, tbl)

		for _, entry := range tbl.entries {
			_, err := statement.Exec(structs.Values(entry)...)
			if err != nil {
				panic(err)
			}
		}

		tbl.entries = nil
	}
}

func (t *sqliteWriter) prepareInsertStatement(
	name string,
	tbl *table,
) *sql.Stmt {
	numFields := tbl.structType.NumField()
	placeholders := strings.TrimSuffix(
		strings.Repeat("?, ", numFields), ", ")

	statement, err := t.db.Prepare(fmt.Sprintf(
		"INSERT INTO %s VALUES (%s);", name, placeholders))
	if err != nil {
		panic(err)
	}

	return statement
}

func (t *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := t.db.Exec(query)
	if err != nil {
		panic(fmt.Sprintf("error executing %s: %s", query, err))
	}
	return res
}

func sqlType(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Bool:
		return "INTEGER"
	case reflect.Float32, reflect.Float64:
		return "REAL"
	default:
		return "TEXT"
	}
}
