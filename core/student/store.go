package student

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
)

// Namespace keys
const (
	StudentsKey = "students"
	SessionKey  = "loggedInUser"
)

// RecordStore gives typed access to the persisted Collection.
// Services hold its lock for the whole read-modify-write of an operation.
type RecordStore struct {
	ns     core.Namespace
	logger core.Logger
	mu     sync.Mutex
}

func NewRecordStore(ns core.Namespace, logger core.Logger) *RecordStore {
	return &RecordStore{ns: ns, logger: logger}
}

// LoadAll reads the persisted Collection.
// A missing, unreadable or undecodable value yields an empty Collection.
func (s *RecordStore) LoadAll(ctx context.Context) Collection {
	raw, err := s.ns.Get(ctx, StudentsKey)
	if err != nil {
		if !errors.Is(err, core.ErrKeyNotFound) {
			s.logger.Warn("loading students", errors.Wrap(err, "reading namespace"))
		}
		return Collection{}
	}

	var coll Collection
	if err := json.Unmarshal([]byte(raw), &coll); err != nil {
		s.logger.Warn("loading students", errors.Wrap(err, "decoding collection"))
		return Collection{}
	}
	if coll == nil { // "null"
		return Collection{}
	}
	return coll
}

// SaveAll overwrites the persisted Collection in a single write.
func (s *RecordStore) SaveAll(ctx context.Context, coll Collection) error {
	if coll == nil {
		coll = Collection{}
	}
	raw, err := json.Marshal(coll)
	if err != nil {
		return errors.Wrap(err, "encoding collection")
	}
	if err := s.ns.Set(ctx, StudentsKey, string(raw)); err != nil {
		return errors.Wrap(err, "writing collection")
	}
	return nil
}

// Ping checks the underlying namespace is reachable.
func (s *RecordStore) Ping(ctx context.Context) error {
	return s.ns.Ping(ctx)
}

func (s *RecordStore) lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

func FindByID(coll Collection, id string) (Record, bool) {
	for _, r := range coll {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Upsert replaces the record with the same ID or appends it.
// The returned Collection is a copy; it must still be saved.
func Upsert(coll Collection, rec Record) Collection {
	out := make(Collection, len(coll), len(coll)+1)
	copy(out, coll)
	for i := range out {
		if out[i].ID == rec.ID {
			out[i] = rec
			return out
		}
	}
	return append(out, rec)
}
