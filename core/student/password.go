package student

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var bcryptCost = bcrypt.DefaultCost

// passwordScheme decides how passwords are stored and compared.
type passwordScheme interface {
	encode(pwd string) (string, error)
	matches(stored, pwd string) bool
}

func newPasswordScheme(hash bool) passwordScheme {
	if hash {
		return bcryptScheme{}
	}
	return plainScheme{}
}

// plainScheme stores passwords as entered.
type plainScheme struct{}

func (plainScheme) encode(pwd string) (string, error) { return pwd, nil }
func (plainScheme) matches(stored, pwd string) bool   { return stored == pwd }

// bcryptScheme stores bcrypt hashes. Records saved before hashing was enabled still match in cleartext.
type bcryptScheme struct{}

func (bcryptScheme) encode(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (bcryptScheme) matches(stored, pwd string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return stored == pwd
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pwd)) == nil
}
