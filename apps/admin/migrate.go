package main

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/studentportal/storage/database"
)

var errNoSQLStorage = errors.New("migrations only apply to the sqlite & postgres storage drivers")

func newMigrateFunc(db *sqlx.DB) func(command string, args ...string) error {
	return func(command string, args ...string) error {
		return database.Migrate(db, command, args...)
	}
}
