package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/student"
	memstore "github.com/trezcool/studentportal/storage/memory"
	"github.com/trezcool/studentportal/testutil"
)

type testLogger struct {
	errors []string
}

func (l *testLogger) Debug(string, ...interface{})       {}
func (l *testLogger) Info(string, ...interface{})        {}
func (l *testLogger) Warn(string, ...interface{})        {}
func (l *testLogger) Error(msg string, _ ...interface{}) { l.errors = append(l.errors, msg) }
func (l *testLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

type testApp struct {
	Server
	ns       core.Namespace
	logger   *testLogger
	registry *prometheus.Registry
	shutdown int
}

func setup(t *testing.T, withOpts ...func(*Options)) *testApp {
	t.Helper()

	conf := &core.Config{AppName: "Student Portal", TestMode: true}
	ns := memstore.Open().Namespace("test")
	logger := new(testLogger)
	registry := prometheus.NewRegistry()

	store := student.NewRecordStore(ns, logger)
	sessions := student.NewSessionManager(ns, logger)
	v := student.NewValidator(validator.New(), core.NewTranslator())

	app := &testApp{ns: ns, logger: logger, registry: registry}
	opts := &Options{
		AppName:        conf.AppName,
		TestMode:       true,
		DisableReqLogs: true,
		Logger:         logger,
		Registerer:     registry,
		Gatherer:       registry,
		Store:          store,
		Registrations:  student.NewRegistrationService(store, v, nil, conf),
		Auth:           student.NewAuthenticationService(store, sessions, conf),
		Dashboard:      student.NewDashboardController(store, sessions),
	}
	for _, with := range withOpts {
		with(opts)
	}
	app.Server = NewServer(opts, func() { app.shutdown++ })
	return app
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func (app *testApp) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	app.ServeHTTP(rec, req)
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func newStudentJSON(t *testing.T, email string) []byte {
	return marshallObj(t, testutil.NewStudent(email))
}

// login registers `email` & logs them in.
func (app *testApp) login(t *testing.T, email string) {
	t.Helper()
	if rec := app.do(http.MethodPost, "/v1/students/register", newStudentJSON(t, email)); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	body := marshallObj(t, LoginRequest{Email: email, Password: testutil.DefaultPassword})
	if rec := app.do(http.MethodPost, "/v1/session/login", body); rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
}

func (app *testApp) sessionID(t *testing.T) string {
	t.Helper()
	id, err := app.ns.Get(context.Background(), student.SessionKey)
	if err != nil {
		return ""
	}
	return id
}
