package models

import (
	"time"
)

// Account defines the account model based on the 'accounts' table.
// Role is a plain value, not a pointer or a collection: an account without
// exactly one role cannot be represented.
type Account struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	BirthDate time.Time `json:"birthDate" db:"birth_date"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Role      Role      `json:"role"`
}
