package student

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studentportal/core"
	memstore "github.com/trezcool/studentportal/storage/memory"
)

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

type testLogger struct {
	mu    sync.Mutex
	warns []string
}

var _ core.Logger = (*testLogger)(nil)

func (l *testLogger) log(msg string, args []interface{}) string {
	return fmt.Sprint(append([]interface{}{msg}, args...)...)
}

func (l *testLogger) Debug(string, ...interface{}) {}
func (l *testLogger) Info(string, ...interface{})  {}
func (l *testLogger) Warn(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, l.log(msg, args))
}
func (l *testLogger) Error(string, ...interface{}) {}
func (l *testLogger) Fatal(msg string, args ...interface{}) {
	panic(l.log(msg, args))
}

type mailSpy struct {
	mu   sync.Mutex
	sent []*core.EmailMessage
}

func (m *mailSpy) SendMessages(messages ...*core.EmailMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, messages...)
}

// failingNamespace fails every operation with err.
type failingNamespace struct {
	err error
}

func (ns failingNamespace) Get(context.Context, string) (string, error) { return "", ns.err }
func (ns failingNamespace) Set(context.Context, string, string) error   { return ns.err }
func (ns failingNamespace) Delete(context.Context, string) error        { return ns.err }
func (ns failingNamespace) Ping(context.Context) error                  { return ns.err }

type fixture struct {
	ctx      context.Context
	conf     *core.Config
	ns       core.Namespace
	logger   *testLogger
	mail     *mailSpy
	store    *RecordStore
	sessions *SessionManager
	reg      *RegistrationService
	auth     *AuthenticationService
	dash     *DashboardController
}

func setup(t *testing.T, hashPasswords ...bool) *fixture {
	t.Helper()
	freezeTime(t, fixedNow)

	conf := &core.Config{AppName: "Student Portal"}
	if len(hashPasswords) > 0 {
		conf.Security.HashPasswords = hashPasswords[0]
	}

	f := &fixture{
		ctx:    context.Background(),
		conf:   conf,
		ns:     memstore.Open().Namespace("test"),
		logger: new(testLogger),
		mail:   new(mailSpy),
	}
	f.store = NewRecordStore(f.ns, f.logger)
	f.sessions = NewSessionManager(f.ns, f.logger)
	f.reg = NewRegistrationService(f.store, newTestValidator(), f.mail, conf)
	f.auth = NewAuthenticationService(f.store, f.sessions, conf)
	f.dash = NewDashboardController(f.store, f.sessions)
	return f
}

func newTestValidator() *Validator {
	return NewValidator(validator.New(), core.NewTranslator())
}

func freezeTime(t *testing.T, now time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = orig })
}

func validNewStudent(email string) NewStudent {
	return NewStudent{
		Name:            "Ada Lovelace",
		Email:           email,
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
		Gender:          "Female",
		DateOfBirth:     "2000-01-01",
		Department:      "Computer Science",
		Course:          "Algorithms",
		Year:            "2",
		Contact:         "+243 999 1234",
		Address:         "12 Main Street",
	}
}

func (f *fixture) register(t *testing.T, email string) Record {
	t.Helper()
	rec, err := f.reg.Register(f.ctx, validNewStudent(email))
	require.NoError(t, err)
	return rec
}

// login registers a student and logs them in.
func (f *fixture) login(t *testing.T, email string) Record {
	t.Helper()
	rec := f.register(t, email)
	_, err := f.auth.Authenticate(f.ctx, email, "longenough1")
	require.NoError(t, err)
	return rec
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	vErr, ok := err.(*core.ValidationError)
	require.Truef(t, ok, "want *core.ValidationError, got %T (%v)", err, err)
	return vErr.FieldMap()
}
