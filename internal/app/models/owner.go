package models

// OwnerRecord is the role-specific record wrapping an account 1:1. The set
// of implementations is closed: Student, Teacher and StaffMember.
type OwnerRecord interface {
	ownerRecord()
}

// Student defines the student model based on the 'students' table
type Student struct {
	ID                 int64  `json:"id" db:"id"`
	AccountID          int64  `json:"accountId" db:"account_id"`
	RegistrationNumber string `json:"registrationNumber" db:"registration_number"`

	// Relation (populated when needed)
	Account *Account `json:"account,omitempty"`
}

// Teacher defines the teacher model based on the 'teachers' table. Accounts
// with role TEACHER or CHIEF both own a Teacher record.
type Teacher struct {
	ID        int64 `json:"id" db:"id"`
	AccountID int64 `json:"accountId" db:"account_id"`

	// Relation (populated when needed)
	Account *Account `json:"account,omitempty"`
}

// StaffMember defines the staff model based on the 'staff_members' table
type StaffMember struct {
	ID        int64 `json:"id" db:"id"`
	AccountID int64 `json:"accountId" db:"account_id"`

	// Relation (populated when needed)
	Account *Account `json:"account,omitempty"`
}

func (*Student) ownerRecord()     {}
func (*Teacher) ownerRecord()     {}
func (*StaffMember) ownerRecord() {}
