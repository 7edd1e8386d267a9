// Package storage opens the key-value namespace selected by the configuration.
package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/storage/database"
	sqlxdb "github.com/trezcool/studentportal/storage/database/sqlx"
	memstore "github.com/trezcool/studentportal/storage/memory"
	redisstore "github.com/trezcool/studentportal/storage/redis"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Open returns the configured Namespace and a func releasing its resources.
// SQL databases are migrated up before use.
func Open(ctx context.Context, conf *core.Config) (core.Namespace, func() error, error) {
	noop := func() error { return nil }

	switch conf.Storage.Driver {
	case core.DriverMemory:
		return memstore.Open().Namespace(conf.Storage.Namespace), noop, nil

	case core.DriverSQLite, core.DriverPostgres:
		db, err := database.Open(ctx, conf.Storage)
		if err != nil {
			return nil, noop, err
		}
		if err = database.Migrate(db, "up"); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return sqlxdb.NewNamespace(db, conf.Storage.Namespace), db.Close, nil

	case core.DriverRedis:
		client := redisstore.NewClient(conf.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, errors.Wrap(err, "pinging redis")
		}
		return redisstore.NewNamespace(client, conf.Storage.Namespace), client.Close, nil
	}
	return nil, noop, errors.Wrap(ErrUnknownDriver, conf.Storage.Driver)
}
