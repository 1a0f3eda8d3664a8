package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect cubre las diferencias entre Postgres (pgx) y SQLite (modernc).
type Dialect struct {
	Driver  string
	DocType string
	TSType  string

	Pool Pool

	placeholder func(n int) string
	isUnique    func(err error) bool
}

// Pool son los límites del *sql.DB. Cero en los tiempos = la conexión no se recicla.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

var Postgres = Dialect{
	Driver:      "pgx",
	DocType:     "JSONB",
	TSType:      "TIMESTAMPTZ",
	Pool: Pool{
		MaxOpen:     10,
		MaxIdle:     5,
		MaxIdleTime: 5 * time.Minute,
		MaxLifetime: 30 * time.Minute,
	},
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	isUnique: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == "23505"
	},
}

var SQLite = Dialect{
	Driver:      "sqlite",
	DocType:     "TEXT",
	TSType:      "TIMESTAMP",
	// Una sola conexión que vive lo mismo que el pool: con :memory: la base
	// existe solo dentro de esa conexión. Además evita SQLITE_BUSY.
	Pool: Pool{
		MaxOpen: 1,
		MaxIdle: 1,
	},
	placeholder: func(int) string { return "?" },
	isUnique: func(err error) bool {
		var sqErr *sqlite.Error
		if !errors.As(err, &sqErr) {
			return false
		}
		// sin extended result codes llega SQLITE_CONSTRAINT a secas
		return sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(sqErr.Code() == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqErr.Error(), "UNIQUE"))
	},
}

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}

// Open abre el pool con los límites del dialecto.
func Open(d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(d.Pool.MaxOpen)
	db.SetMaxIdleConns(d.Pool.MaxIdle)
	db.SetConnMaxIdleTime(d.Pool.MaxIdleTime)
	db.SetConnMaxLifetime(d.Pool.MaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
