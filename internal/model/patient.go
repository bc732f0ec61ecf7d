package model

import (
	"fmt"
	"math"
)

type Gender string

const (
	GenderMale       Gender = "M"
	GenderFemale     Gender = "F"
	GenderOther      Gender = "Other"
	GenderOtherShort Gender = "O"
)

// Genders lists the accepted gender codes.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther, GenderOtherShort}

func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

// MaxAge is the largest age the patients.age INTEGER column can hold.
const MaxAge = math.MaxInt32

type Patient struct {
	Base
	Name   string  `db:"name" json:"name" validate:"required,max=100"`
	Age    int     `db:"age" json:"age" validate:"gt=0,max=2147483647"`
	Gender *string `db:"gender" json:"gender,omitempty" validate:"omitempty,oneof=M F Other O"`
}

func (p *Patient) String() string {
	gender := "-"
	if p.Gender != nil {
		gender = *p.Gender
	}
	return fmt.Sprintf("Patient(id=%d, name=%s, age=%d, gender=%s, created_at=%s)",
		p.ID, p.Name, p.Age, gender, formatTime(p.CreatedAt))
}
