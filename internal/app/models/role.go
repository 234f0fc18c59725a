package models

// RoleName identifies one of the seeded roles. The set is closed; accounts
// always hold exactly one role.
type RoleName string

const (
	RoleAdministrator RoleName = "ADMINISTRATOR"
	RoleStaff         RoleName = "STAFF"
	RoleTeacher       RoleName = "TEACHER"
	RoleChief         RoleName = "CHIEF"
	RoleStudent       RoleName = "STUDENT"
)

// Role defines the role model based on the 'roles' table
type Role struct {
	ID   int64    `json:"id" db:"id"`
	Name RoleName `json:"name" db:"name"`
}
