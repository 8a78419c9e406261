package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DBSink persists knowledge-base items to a SQL database so that findings
// survive the interpreter process and can be shared between scans.
type DBSink struct {
	db      *sql.DB
	driver  string
	scanKey string
}

const createItemsTable = `CREATE TABLE IF NOT EXISTS kb_items (
	id         VARCHAR(36) PRIMARY KEY,
	scan_key   VARCHAR(36) NOT NULL,
	name       VARCHAR(255) NOT NULL,
	value      TEXT,
	created_at TIMESTAMP NOT NULL
)`

// NewDBSink opens a database-backed sink. Supported types are sqlite,
// postgres, mysql and sqlserver. An empty scanKey gets a fresh one minted.
func NewDBSink(dbType, dsn, scanKey string) (*DBSink, error) {
	var driverName string
	switch dbType {
	case "sqlite", "sqlite3":
		driverName = "sqlite"
	case "postgres", "postgresql":
		driverName = "postgres"
	case "mysql":
		driverName = "mysql"
	case "sqlserver", "mssql":
		driverName = "sqlserver"
	default:
		return nil, errors.Errorf("unsupported database type: %s", dbType)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(createItemsTable); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create kb_items table")
	}

	if scanKey == "" {
		scanKey = uuid.NewString()
	}
	return &DBSink{db: db, driver: driverName, scanKey: scanKey}, nil
}

// rebind rewrites ? placeholders into the form the driver expects.
func (s *DBSink) rebind(query string) string {
	if s.driver != "postgres" && s.driver != "sqlserver" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r != '?' {
			sb.WriteRune(r)
			continue
		}
		n++
		if s.driver == "postgres" {
			fmt.Fprintf(&sb, "$%d", n)
		} else {
			fmt.Fprintf(&sb, "@p%d", n)
		}
	}
	return sb.String()
}

// ScanKey returns the scan key this sink is bound to.
func (s *DBSink) ScanKey() string {
	return s.scanKey
}

func (s *DBSink) Dispatch(name, value string) error {
	_, err := s.db.Exec(
		s.rebind(`INSERT INTO kb_items (id, scan_key, name, value, created_at) VALUES (?, ?, ?, ?, ?)`),
		uuid.NewString(), s.scanKey, name, value, time.Now().UTC(),
	)
	return errors.Wrapf(err, "failed to dispatch %q", name)
}

func (s *DBSink) Retrieve(name string) ([]string, error) {
	rows, err := s.db.Query(
		s.rebind(`SELECT value FROM kb_items WHERE scan_key = ? AND name = ? ORDER BY created_at, id`),
		s.scanKey, name,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to retrieve %q", name)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "failed to scan kb_items row")
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *DBSink) Close() error {
	return s.db.Close()
}
