package student

import (
	"math"
	"strings"
	"time"

	"github.com/trezcool/studentportal/core"
)

var nowFunc = time.Now // mockable in tests

// Form choices
var (
	Genders     = []Choice{{Name: "Male", Value: "Male"}, {Name: "Female", Value: "Female"}, {Name: "Other", Value: "Other"}}
	Departments = []Choice{
		{Name: "Computer Science", Value: "Computer Science"},
		{Name: "Information Technology", Value: "Information Technology"},
		{Name: "Electronics", Value: "Electronics"},
		{Name: "Mechanical", Value: "Mechanical"},
		{Name: "Civil", Value: "Civil"},
		{Name: "Business Administration", Value: "Business Administration"},
	}
	Years = []Choice{{Name: "1st year", Value: "1"}, {Name: "2nd year", Value: "2"}, {Name: "3rd year", Value: "3"}, {Name: "4th year", Value: "4"}}
)

type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func hasChoice(choices []Choice, val string) bool {
	for _, c := range choices {
		if c.Value == val {
			return true
		}
	}
	return false
}

type (
	Attendance struct {
		Present int `json:"present"`
		Total   int `json:"total"`
	}

	Assignment struct {
		ID       string    `json:"id"`
		Title    string    `json:"title"`
		DueDate  time.Time `json:"dueDate"`
		Progress int       `json:"progress"`
	}

	Grade struct {
		Term  string  `json:"term"`
		Value float64 `json:"value"`
	}

	Notification struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Text  string `json:"text"`
	}

	// Record is a single student's full profile and dashboard state.
	Record struct {
		ID            string         `json:"id"`
		Name          string         `json:"name"`
		Email         string         `json:"email"`
		Password      string         `json:"password"`
		Gender        string         `json:"gender"`
		DateOfBirth   string         `json:"dateOfBirth"`
		Department    string         `json:"department"`
		Course        string         `json:"course"`
		Year          string         `json:"year"`
		Contact       string         `json:"contact"`
		Address       string         `json:"address"`
		Attendance    Attendance     `json:"attendance"`
		Courses       []string       `json:"courses"`
		Assignments   []Assignment   `json:"assignments"`
		Grades        []Grade        `json:"grades"`
		Notifications []Notification `json:"notifications"`
		CreatedAt     time.Time      `json:"createdAt"`
	}

	// Collection is the full persisted set of records, unique by ID.
	Collection []Record

	NewStudent struct {
		Name            string `json:"name" validate:"required,min=3"`
		Email           string `json:"email" validate:"required,email_shape"`
		Password        string `json:"password" validate:"required,min=8"`
		ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
		Gender          string `json:"gender" validate:"required,gender"`
		DateOfBirth     string `json:"dateOfBirth" validate:"min_age=13"`
		Department      string `json:"department" validate:"required,department"`
		Course          string `json:"course" validate:"required"`
		Year            string `json:"year" validate:"required,year"`
		Contact         string `json:"contact" validate:"required,phone"`
		Address         string `json:"address" validate:"required,min=5"`
	}

	ProfileUpdate struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
		Address string `json:"address"`
	}

	SearchSummary struct {
		Query         string `json:"query"`
		Courses       int    `json:"courses"`
		Assignments   int    `json:"assignments"`
		Notifications int    `json:"notifications"`
	}

	// Profile is a Record without its credentials.
	Profile struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Email       string    `json:"email"`
		Gender      string    `json:"gender"`
		DateOfBirth string    `json:"dateOfBirth"`
		Department  string    `json:"department"`
		Course      string    `json:"course"`
		Year        string    `json:"year"`
		Contact     string    `json:"contact"`
		Address     string    `json:"address"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// Overview is everything the dashboard page displays.
	Overview struct {
		Profile             Profile        `json:"profile"`
		FirstName           string         `json:"firstName"`
		Attendance          Attendance     `json:"attendance"`
		AttendancePercent   int            `json:"attendancePercent"`
		CourseCount         int            `json:"courseCount"`
		UpcomingAssignments int            `json:"upcomingAssignments"`
		Courses             []string       `json:"courses"`
		Assignments         []Assignment   `json:"assignments"`
		Grades              []Grade        `json:"grades"`
		Notifications       []Notification `json:"notifications"`
		NotificationCount   int            `json:"notificationCount"`
	}
)

// Mark records one class: total always grows, present only when attended.
func (a *Attendance) Mark(present bool) {
	a.Total++
	if present {
		a.Present++
	}
}

// Percent returns round(present/total*100), 0 when no class was recorded.
func (a Attendance) Percent() int {
	if a.Total == 0 {
		return 0
	}
	return int(math.Round(float64(a.Present) / float64(a.Total) * 100))
}

func (ns *NewStudent) clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true)
	ns.Gender = core.CleanString(ns.Gender)
	ns.DateOfBirth = core.CleanString(ns.DateOfBirth)
	ns.Department = core.CleanString(ns.Department)
	ns.Course = core.CleanString(ns.Course)
	ns.Year = core.CleanString(ns.Year)
	ns.Contact = core.CleanString(ns.Contact)
	ns.Address = core.CleanString(ns.Address)
}

func (pu *ProfileUpdate) clean() {
	pu.Name = core.CleanString(pu.Name)
	pu.Contact = core.CleanString(pu.Contact)
	pu.Address = core.CleanString(pu.Address)
}

// LogPerson implements core.Person.
func (r Record) LogPerson() (id, name, email string) {
	return r.ID, r.Name, r.Email
}

func (r Record) Profile() Profile {
	return Profile{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Gender:      r.Gender,
		DateOfBirth: r.DateOfBirth,
		Department:  r.Department,
		Course:      r.Course,
		Year:        r.Year,
		Contact:     r.Contact,
		Address:     r.Address,
		CreatedAt:   r.CreatedAt,
	}
}

// Overview builds the dashboard read model as of `now`.
func (r Record) Overview(now time.Time) Overview {
	var upcoming int
	for _, a := range r.Assignments {
		if a.DueDate.After(now) {
			upcoming++
		}
	}
	var firstName string
	if parts := strings.Fields(r.Name); len(parts) > 0 {
		firstName = parts[0]
	}
	return Overview{
		Profile:             r.Profile(),
		FirstName:           firstName,
		Attendance:          r.Attendance,
		AttendancePercent:   r.Attendance.Percent(),
		CourseCount:         len(r.Courses),
		UpcomingAssignments: upcoming,
		Courses:             cloneSlice(r.Courses),
		Assignments:         cloneSlice(r.Assignments),
		Grades:              cloneSlice(r.Grades),
		Notifications:       cloneSlice(r.Notifications),
		NotificationCount:   len(r.Notifications),
	}
}

// Search counts case-insensitive substring matches of `query` (already lower-cased).
func (r Record) Search(query string) SearchSummary {
	sum := SearchSummary{Query: query}
	for _, c := range r.Courses {
		if strings.Contains(strings.ToLower(c), query) {
			sum.Courses++
		}
	}
	for _, a := range r.Assignments {
		if strings.Contains(strings.ToLower(a.Title), query) {
			sum.Assignments++
		}
	}
	for _, n := range r.Notifications {
		if strings.Contains(strings.ToLower(n.Title), query) || strings.Contains(strings.ToLower(n.Text), query) {
			sum.Notifications++
		}
	}
	return sum
}

func (r Record) clone() Record {
	c := r
	c.Courses = cloneSlice(r.Courses)
	c.Assignments = cloneSlice(r.Assignments)
	c.Grades = cloneSlice(r.Grades)
	c.Notifications = cloneSlice(r.Notifications)
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func (coll Collection) HasID(id string) bool {
	_, ok := FindByID(coll, id)
	return ok
}

// HasEmail does a case-insensitive lookup of `email`.
func (coll Collection) HasEmail(email string) bool {
	for _, r := range coll {
		if strings.EqualFold(r.Email, email) {
			return true
		}
	}
	return false
}
