package memstore

import (
	"context"
	"sync"

	"github.com/trezcool/studentportal/core"
)

type (
	// DB holds every namespace of the process in memory.
	DB struct {
		sync.RWMutex
		table map[string]map[string]string // {namespace: {key: value}}
	}

	namespace struct {
		db   *DB
		name string
	}
)

var _ core.Namespace = (*namespace)(nil) // interface compliance check

func Open() *DB {
	return &DB{table: make(map[string]map[string]string)}
}

// Namespace returns the namespace `name`, sharing storage with every other namespace of the same name.
func (db *DB) Namespace(name string) core.Namespace {
	return &namespace{db: db, name: name}
}

func (ns *namespace) Get(_ context.Context, key string) (string, error) {
	ns.db.RLock()
	defer ns.db.RUnlock()

	val, ok := ns.db.table[ns.name][key]
	if !ok {
		return "", core.ErrKeyNotFound
	}
	return val, nil
}

func (ns *namespace) Set(_ context.Context, key, value string) error {
	ns.db.Lock()
	defer ns.db.Unlock()

	tbl, ok := ns.db.table[ns.name]
	if !ok {
		tbl = make(map[string]string)
		ns.db.table[ns.name] = tbl
	}
	tbl[key] = value
	return nil
}

func (ns *namespace) Delete(_ context.Context, key string) error {
	ns.db.Lock()
	defer ns.db.Unlock()

	delete(ns.db.table[ns.name], key)
	return nil
}

func (ns *namespace) Ping(context.Context) error { return nil }
