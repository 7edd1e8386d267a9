package sqlxdb

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
)

var nowFunc = time.Now // mockable

type namespace struct {
	db   *sqlx.DB
	name string

	getQuery    string
	upsertQuery string
	deleteQuery string
}

var _ core.Namespace = (*namespace)(nil) // interface compliance check

// NewNamespace stores the keys of namespace `name` as rows of the kv_entries table.
func NewNamespace(db *sqlx.DB, name string) core.Namespace {
	return &namespace{
		db:       db,
		name:     name,
		getQuery: db.Rebind(`SELECT value FROM kv_entries WHERE namespace = ? AND key = ?`),
		upsertQuery: db.Rebind(`
			INSERT INTO kv_entries (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		deleteQuery: db.Rebind(`DELETE FROM kv_entries WHERE namespace = ? AND key = ?`),
	}
}

func (ns *namespace) Get(ctx context.Context, key string) (string, error) {
	var val string
	if err := ns.db.GetContext(ctx, &val, ns.getQuery, ns.name, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", core.ErrKeyNotFound
		}
		return "", errors.Wrapf(err, "selecting %s", key)
	}
	return val, nil
}

func (ns *namespace) Set(ctx context.Context, key, value string) error {
	if _, err := ns.db.ExecContext(ctx, ns.upsertQuery, ns.name, key, value, nowFunc().UTC()); err != nil {
		return errors.Wrapf(err, "upserting %s", key)
	}
	return nil
}

func (ns *namespace) Delete(ctx context.Context, key string) error {
	if _, err := ns.db.ExecContext(ctx, ns.deleteQuery, ns.name, key); err != nil {
		return errors.Wrapf(err, "deleting %s", key)
	}
	return nil
}

func (ns *namespace) Ping(ctx context.Context) error {
	return ns.db.PingContext(ctx)
}
