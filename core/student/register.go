package student

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/studentportal/core"
)

// mockable in tests
var newID = func() string { return "stu_" + uuid.NewString() }

const (
	welcomeTemplate = "welcome"
	welcomeSubject  = "Welcome!"
)

type RegistrationService struct {
	store     *RecordStore
	validator *Validator
	passwords passwordScheme
	mailSvc   core.EmailService // optional
	appName   string
}

func NewRegistrationService(store *RecordStore, v *Validator, mailSvc core.EmailService, conf *core.Config) *RegistrationService {
	return &RegistrationService{
		store:     store,
		validator: v,
		passwords: newPasswordScheme(conf.Security.HashPasswords),
		mailSvc:   mailSvc,
		appName:   conf.AppName,
	}
}

// Register validates `ns` against the persisted Collection and stores a new Record with default
// dashboard state. It does not log the student in.
func (svc *RegistrationService) Register(ctx context.Context, ns NewStudent) (Record, error) {
	unlock := svc.store.lock()
	defer unlock()

	coll := svc.store.LoadAll(ctx)
	if err := svc.validator.ValidateRegistration(&ns, coll); err != nil {
		return Record{}, err
	}

	pwd, err := svc.passwords.encode(ns.Password)
	if err != nil {
		return Record{}, errors.Wrap(err, "encoding password")
	}
	rec := svc.newRecord(ns, uniqueID(coll), pwd, nowFunc().UTC())

	if err := svc.store.SaveAll(ctx, Upsert(coll, rec)); err != nil {
		return Record{}, errors.Wrap(err, "saving new student")
	}

	svc.sendWelcome(rec)
	return rec, nil
}

func (svc *RegistrationService) newRecord(ns NewStudent, id, pwd string, now time.Time) Record {
	return Record{
		ID:          id,
		Name:        ns.Name,
		Email:       ns.Email,
		Password:    pwd,
		Gender:      ns.Gender,
		DateOfBirth: ns.DateOfBirth,
		Department:  ns.Department,
		Course:      ns.Course,
		Year:        ns.Year,
		Contact:     ns.Contact,
		Address:     ns.Address,
		Attendance:  Attendance{},
		Courses:     []string{ns.Course},
		Assignments: []Assignment{
			{ID: "a1", Title: "Intro assignment", DueDate: now.Add(5 * 24 * time.Hour), Progress: 20},
		},
		Grades: []Grade{
			{Term: "Term1", Value: 72},
			{Term: "Term2", Value: 78},
			{Term: "Term3", Value: 82},
		},
		Notifications: []Notification{
			{ID: "n1", Title: "Welcome!", Text: "Welcome to " + svc.appName + ". Your profile is ready."},
		},
		CreatedAt: now,
	}
}

func (svc *RegistrationService) sendWelcome(rec Record) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: rec.Name, Address: rec.Email}},
		Subject:      welcomeSubject,
		TemplateName: welcomeTemplate,
		TemplateData: rec.Profile(),
	})
}

// uniqueID generates ids until one is unused in `coll`.
func uniqueID(coll Collection) string {
	for {
		if id := newID(); !coll.HasID(id) {
			return id
		}
	}
}
