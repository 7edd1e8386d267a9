package database

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/studentportal/core"
	appfs "github.com/trezcool/studentportal/fs"
)

var ErrUnsupportedDriver = errors.New("unsupported SQL driver")

// driverName maps a storage driver to its database/sql driver & goose dialect.
func driverName(driver string) (string, error) {
	switch driver {
	case core.DriverSQLite:
		return "sqlite3", nil
	case core.DriverPostgres:
		return "postgres", nil
	}
	return "", errors.Wrap(ErrUnsupportedDriver, driver)
}

// Open connects to the SQL database described by `conf` and waits for it to be ready.
func Open(ctx context.Context, conf core.StorageConfig) (*sqlx.DB, error) {
	name, err := driverName(conf.Driver)
	if err != nil {
		return nil, err
	}

	dsn := conf.DSN
	if conf.Driver == core.DriverSQLite {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.Driver == core.DriverSQLite {
		db.SetMaxOpenConns(1) // single writer
	}

	if err = ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate runs the goose `command` (up, down, status...) with the embedded migrations.
func Migrate(db *sqlx.DB, command string, args ...string) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(db.DriverName()); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	if err := gooseRunFunc(command, db.DB, appfs.MigrationsDir, args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

var gooseRunFunc = goose.Run // mockable
