package model

import "time"

// Base contains the columns every table carries. Both are assigned by the
// store on insert; ID is zero until the entity has been persisted.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsPersisted reports whether the entity has been read back from storage.
func (b Base) IsPersisted() bool {
	return b.ID != 0
}
