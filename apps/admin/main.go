package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
	logsvc "github.com/trezcool/studentportal/services/logger"
	"github.com/trezcool/studentportal/storage"
	"github.com/trezcool/studentportal/storage/database"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	ctx := context.Background()

	cli := commandLine{out: os.Stdout}

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		// migrations run on a bare connection, without migrating up first
		if conf.Storage.Driver == core.DriverSQLite || conf.Storage.Driver == core.DriverPostgres {
			db, err := database.Open(ctx, conf.Storage)
			if err != nil {
				logger.Fatal("opening database", err)
			}
			defer closeDB(db, logger)
			cli.migrate = newMigrateFunc(db)
		}
	} else {
		ns, closeNs, err := storage.Open(ctx, conf)
		if err != nil {
			logger.Fatal("opening storage", err)
		}
		defer func() { _ = closeNs() }()

		store := student.NewRecordStore(ns, logger)
		cli.store = store
		cli.auth = student.NewAuthenticationService(store, student.NewSessionManager(ns, logger), conf)
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}

func closeDB(db *sqlx.DB, logger core.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("closing database", err)
	}
}
