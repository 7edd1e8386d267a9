package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
)

// SessionManager tracks which record, if any, is logged in.
// The pointer lives under its own key, apart from the Collection.
type SessionManager struct {
	ns     core.Namespace
	logger core.Logger
}

func NewSessionManager(ns core.Namespace, logger core.Logger) *SessionManager {
	return &SessionManager{ns: ns, logger: logger}
}

// Establish logs `id` in, replacing any previous session.
func (sm *SessionManager) Establish(ctx context.Context, id string) error {
	return errors.Wrap(sm.ns.Set(ctx, SessionKey, id), "establishing session")
}

func (sm *SessionManager) Clear(ctx context.Context) error {
	if err := sm.ns.Delete(ctx, SessionKey); err != nil && !errors.Is(err, core.ErrKeyNotFound) {
		return errors.Wrap(err, "clearing session")
	}
	return nil
}

// CurrentID returns the logged in id. Read failures count as logged out.
func (sm *SessionManager) CurrentID(ctx context.Context) (string, bool) {
	id, err := sm.ns.Get(ctx, SessionKey)
	if err != nil {
		if !errors.Is(err, core.ErrKeyNotFound) {
			sm.logger.Warn("reading session", err)
		}
		return "", false
	}
	return id, id != ""
}

// Current resolves the session against `coll`.
// An id missing from the Collection is reported as logged out.
func (sm *SessionManager) Current(ctx context.Context, coll Collection) (Record, bool) {
	id, ok := sm.CurrentID(ctx)
	if !ok {
		return Record{}, false
	}
	return FindByID(coll, id)
}
