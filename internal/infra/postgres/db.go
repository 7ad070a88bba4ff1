package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB manages a lazily opened *sql.DB keyed by DSN.
type DB struct {
	mu  sync.Mutex
	dsn string
	db  *sql.DB
}

// NewDB returns an empty manager. No connection is opened until Get.
func NewDB() *DB {
	return &DB{}
}

// Get returns a pooled handle for dsn, replacing any handle previously
// opened for a different DSN.
func (p *DB) Get(dsn string) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil && p.dsn == dsn {
		return p.db, nil
	}
	if p.db != nil {
		_ = p.db.Close()
		p.db = nil
		p.dsn = ""
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	p.db = db
	p.dsn = dsn
	return p.db, nil
}

// VerifySchema pings the database and creates the accounts table when it
// does not exist yet.
func VerifySchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ddl := `CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		phone_number TEXT NOT NULL DEFAULT '',
		date_joined DATE NOT NULL DEFAULT CURRENT_DATE
	);`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("verify accounts schema: %w", err)
	}

	idx := `CREATE INDEX IF NOT EXISTS idx_accounts_date_joined ON accounts (date_joined);`
	if _, err := db.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("verify accounts index: %w", err)
	}
	return nil
}
