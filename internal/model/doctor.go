package model

import "fmt"

type Doctor struct {
	Base
	Name      string `db:"name" json:"name" validate:"required,max=100"`
	Specialty string `db:"specialty" json:"specialty" validate:"required,max=100"`
}

func (d *Doctor) String() string {
	return fmt.Sprintf("Doctor(id=%d, name=%s, specialty=%s, created_at=%s)",
		d.ID, d.Name, d.Specialty, formatTime(d.CreatedAt))
}
