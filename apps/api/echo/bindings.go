package echoapi

import (
	"github.com/trezcool/studentportal/core/student"
)

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	AttendanceRequest struct {
		Present bool `json:"present"`
	}

	ChoicesResponse struct {
		Genders     []student.Choice `json:"genders"`
		Departments []student.Choice `json:"departments"`
		Years       []student.Choice `json:"years"`
	}
)
