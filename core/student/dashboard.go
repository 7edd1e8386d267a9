package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrEmptyQuery  = errors.New("enter a search term")
)

// DashboardController exposes the operations of the logged in student's dashboard.
// Every mutation is persisted before it returns.
type DashboardController struct {
	store    *RecordStore
	sessions *SessionManager
}

func NewDashboardController(store *RecordStore, sessions *SessionManager) *DashboardController {
	return &DashboardController{store: store, sessions: sessions}
}

// Current returns the logged in student.
func (dc *DashboardController) Current(ctx context.Context) (Record, error) {
	rec, ok := dc.sessions.Current(ctx, dc.store.LoadAll(ctx))
	if !ok {
		return Record{}, ErrNotLoggedIn
	}
	return rec, nil
}

func (dc *DashboardController) Overview(ctx context.Context) (Overview, error) {
	rec, err := dc.Current(ctx)
	if err != nil {
		return Overview{}, err
	}
	return rec.Overview(nowFunc()), nil
}

// MarkAttendance records one class. There is no upper bound on the total.
func (dc *DashboardController) MarkAttendance(ctx context.Context, present bool) (Record, error) {
	return dc.mutate(ctx, func(rec *Record) error {
		rec.Attendance.Mark(present)
		return nil
	})
}

func (dc *DashboardController) UpdateProfile(ctx context.Context, pu ProfileUpdate) (Record, error) {
	pu.clean()
	if pu.Name == "" {
		return Record{}, core.NewValidationError(ErrEmptyName, core.FieldError{Field: "name", Error: ErrEmptyName.Error()})
	}
	return dc.mutate(ctx, func(rec *Record) error {
		rec.Name = pu.Name
		rec.Contact = pu.Contact
		rec.Address = pu.Address
		return nil
	})
}

// Search counts case-insensitive matches of `query` in the logged in student's
// courses, assignment titles and notifications.
func (dc *DashboardController) Search(ctx context.Context, query string) (SearchSummary, error) {
	query = core.CleanString(query, true)
	if query == "" {
		return SearchSummary{}, core.NewValidationError(ErrEmptyQuery)
	}
	rec, err := dc.Current(ctx)
	if err != nil {
		return SearchSummary{}, err
	}
	return rec.Search(query), nil
}

func (dc *DashboardController) Logout(ctx context.Context) error {
	return dc.sessions.Clear(ctx)
}

// mutate applies `fn` to a copy of the logged in record, then upserts & saves the Collection.
func (dc *DashboardController) mutate(ctx context.Context, fn func(rec *Record) error) (Record, error) {
	unlock := dc.store.lock()
	defer unlock()

	coll := dc.store.LoadAll(ctx)
	cur, ok := dc.sessions.Current(ctx, coll)
	if !ok {
		return Record{}, ErrNotLoggedIn
	}

	rec := cur.clone()
	if err := fn(&rec); err != nil {
		return Record{}, err
	}
	if err := dc.store.SaveAll(ctx, Upsert(coll, rec)); err != nil {
		return Record{}, errors.Wrap(err, "saving student")
	}
	return rec, nil
}
