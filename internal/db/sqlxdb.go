// Package db owns the two database handles the service opens at startup:
// a sqlx connection for the transactional order/product/inventory path,
// and a GORM connection for the read-only archive index. Both are kept
// deliberately — one per concern — rather than standardized on a single
// ORM, the same split the teacher's own repo shows between main.go
// (sqlx + lib/pq) and db/db.go (GORM + postgres).
package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// OpenSQLX opens and pings the sqlx connection used by internal/repository
// and internal/pipeline for the transactional order path.
func OpenSQLX(dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("db: connect sqlx: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: ping sqlx: %w", err)
	}
	return conn, nil
}
