package models

// Specialization represents a named program of study composed of courses
// across semesters.
type Specialization struct {
	ID            int64  `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	SemesterCount int    `json:"semesterCount" db:"semester_count"`

	// Courses ordered by semester number (populated when needed)
	Courses []*Course `json:"courses,omitempty"`
}

// Course belongs to one specialization and is taught in one semester.
type Course struct {
	ID               int64  `json:"id" db:"id"`
	SpecializationID int64  `json:"specializationId" db:"specialization_id"`
	TeacherID        *int64 `json:"teacherId,omitempty" db:"teacher_id"`
	Name             string `json:"name" db:"name"`
	SemesterNumber   int    `json:"semesterNumber" db:"semester_number"`
	IsOptional       bool   `json:"isOptional" db:"is_optional"`
}
