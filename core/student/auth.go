package student

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/trezcool/studentportal/core"
)

var (
	ErrEmptyField         = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("student not found")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters in length")

	requiredText = "this field is required"

	minPasswordLen = 8
)

type AuthenticationService struct {
	store     *RecordStore
	sessions  *SessionManager
	passwords passwordScheme
}

func NewAuthenticationService(store *RecordStore, sessions *SessionManager, conf *core.Config) *AuthenticationService {
	return &AuthenticationService{
		store:     store,
		sessions:  sessions,
		passwords: newPasswordScheme(conf.Security.HashPasswords),
	}
}

// Authenticate logs in the student matching `email` & `password`.
// Unknown emails and wrong passwords both fail with ErrInvalidCredentials.
func (svc *AuthenticationService) Authenticate(ctx context.Context, email, password string) (Record, error) {
	email = core.CleanString(email, true)

	var flds []core.FieldError
	if email == "" {
		flds = append(flds, core.FieldError{Field: "email", Error: requiredText})
	}
	if password == "" {
		flds = append(flds, core.FieldError{Field: "password", Error: requiredText})
	}
	if len(flds) > 0 {
		return Record{}, core.NewValidationError(ErrEmptyField, flds...)
	}

	unlock := svc.store.lock()
	defer unlock()

	coll := svc.store.LoadAll(ctx)
	for _, rec := range coll {
		if rec.Email == email && svc.passwords.matches(rec.Password, password) {
			if err := svc.sessions.Establish(ctx, rec.ID); err != nil {
				return Record{}, err
			}
			return rec, nil
		}
	}
	return Record{}, core.NewValidationError(ErrInvalidCredentials)
}

func (svc *AuthenticationService) Logout(ctx context.Context) error {
	return svc.sessions.Clear(ctx)
}

// ResetPassword replaces the password of the student registered with `email`.
// The active session is left untouched.
func (svc *AuthenticationService) ResetPassword(ctx context.Context, email, password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return core.NewValidationError(ErrPasswordTooShort, core.FieldError{Field: "password", Error: ErrPasswordTooShort.Error()})
	}
	email = core.CleanString(email, true)

	unlock := svc.store.lock()
	defer unlock()

	coll := svc.store.LoadAll(ctx)
	for _, rec := range coll {
		if rec.Email != email {
			continue
		}
		pwd, err := svc.passwords.encode(password)
		if err != nil {
			return err
		}
		rec = rec.clone()
		rec.Password = pwd
		return svc.store.SaveAll(ctx, Upsert(coll, rec))
	}
	return ErrNotFound
}
