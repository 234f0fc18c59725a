package models

import "time"

// Contract binds a student to a specialization for one semester. Contracts
// are append-only; a contract for semester N requires an existing contract
// for semester N-1 in the same specialization.
type Contract struct {
	ID               int64     `json:"id" db:"id"`
	StudentID        int64     `json:"studentId" db:"student_id"`
	SpecializationID int64     `json:"specializationId" db:"specialization_id"`
	SemesterNumber   int       `json:"semesterNumber" db:"semester_number"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Specialization *Specialization `json:"specialization,omitempty"`
}
