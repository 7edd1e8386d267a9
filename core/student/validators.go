package student

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studentportal/core"
)

var (
	errInvalidRegistration = errors.New("invalid registration")
	errEmailTaken          = "email already registered, try logging in"

	emailShapeTag   = "email_shape"
	emailShapeText  = "enter a valid email"
	emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	phoneTag   = "phone"
	phoneText  = "enter a valid contact number"
	phoneRegex = regexp.MustCompile(`^[\d+\s]{7,15}$`)

	minAgeTag  = "min_age"
	minAgeText = "enter a valid date of birth (age 13+)"

	genderTag      = "gender"
	genderText     = "select a gender"
	departmentTag  = "department"
	departmentText = "select a department"
	yearTag        = "year"
	yearText       = "select a year"

	passwordsMismatchTag  = "eqfield"
	passwordsMismatchText = "passwords do not match"

	dobLayouts = []string{"2006-01-02", time.RFC3339}
)

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator registers the student validation rules on `validate`.
func NewValidator(validate *validator.Validate, translator ut.Translator) *Validator {
	core.InitValidators(validate, translator)

	_ = validate.RegisterValidation(emailShapeTag, func(fl validator.FieldLevel) bool {
		return emailShapeRegex.MatchString(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, emailShapeTag, emailShapeText)

	_ = validate.RegisterValidation(phoneTag, func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, phoneTag, phoneText)

	_ = validate.RegisterValidation(minAgeTag, minAgeValidation)
	core.RegisterCustomTranslation(validate, translator, minAgeTag, minAgeText)

	_ = validate.RegisterValidation(genderTag, choiceValidation(Genders))
	core.RegisterCustomTranslation(validate, translator, genderTag, genderText)
	_ = validate.RegisterValidation(departmentTag, choiceValidation(Departments))
	core.RegisterCustomTranslation(validate, translator, departmentTag, departmentText)
	_ = validate.RegisterValidation(yearTag, choiceValidation(Years))
	core.RegisterCustomTranslation(validate, translator, yearTag, yearText)

	// eqfield is only used to confirm passwords
	core.RegisterCustomTranslation(validate, translator, passwordsMismatchTag, passwordsMismatchText, true)

	return &Validator{validate: validate, translator: translator}
}

// ValidateRegistration cleans `ns` in place and checks every field independently.
// It returns nil or a *core.ValidationError listing one message per failing field.
func (v *Validator) ValidateRegistration(ns *NewStudent, existing Collection) error {
	ns.clean()

	var flds []core.FieldError
	if err := v.validate.Struct(ns); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return err
		}
		flds = core.FieldErrors(vErrs, v.translator)
	}

	if ns.Email != "" && existing.HasEmail(ns.Email) {
		flds = setFieldError(flds, core.FieldError{Field: "email", Error: errEmailTaken})
	}

	if len(flds) > 0 {
		return core.NewValidationError(errInvalidRegistration, flds...)
	}
	return nil
}

func setFieldError(flds []core.FieldError, fe core.FieldError) []core.FieldError {
	for i := range flds {
		if flds[i].Field == fe.Field {
			flds[i] = fe
			return flds
		}
	}
	return append(flds, fe)
}

// Age returns the whole years elapsed between `dob` and `now`.
// An empty or unparsable date yields 0.
func Age(dob string, now time.Time) int {
	dob = core.CleanString(dob)
	if dob == "" {
		return 0
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, dob); err == nil {
			years := now.Sub(t).Hours() / 24 / 365.25
			return int(math.Floor(years))
		}
	}
	return 0
}

func minAgeValidation(fl validator.FieldLevel) bool {
	minAge, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return Age(fl.Field().String(), nowFunc()) >= minAge
}

func choiceValidation(choices []Choice) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return hasChoice(choices, fl.Field().String())
	}
}
