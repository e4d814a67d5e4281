package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yumyai/ggregion/internal/util"

	_ "github.com/marcboeker/go-duckdb"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// GGDB is the read-only gene/cluster/organism store.
// Query functions take a connection with Conn and release it when they are done,
// so no connection or transaction is shared between lookups.
type GGDB struct {
	genetableSQL *sql.DB
	driver       string
	path         string
}

// Open opens the store at path with the given driver.
// SQLite stores must already exist. An empty DuckDB path gives an in-memory database.
func Open(driver, path string) (*GGDB, error) {
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
		if !util.FileExists(path) {
			return nil, fmt.Errorf("open %s: database file not found", path)
		}
	case DriverDuckDB:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	return NewGGDB(db, driver, path), nil
}

func NewGGDB(db *sql.DB, driver, path string) *GGDB {
	// Check for db schema and version here later
	return &GGDB{
		genetableSQL: db,
		driver:       driver,
		path:         path,
	}
}

// Conn takes a dedicated connection from the pool. Callers must Close it.
func (g *GGDB) Conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := g.genetableSQL.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("fail to get a connection %w", err)
	}
	return conn, nil
}

// DB returns the underlying *sql.DB for direct access.
func (g *GGDB) DB() *sql.DB {
	return g.genetableSQL
}

func (g *GGDB) Driver() string {
	return g.driver
}

func (g *GGDB) Path() string {
	return g.path
}

func (g *GGDB) Close() error {
	return g.genetableSQL.Close()
}
