package models

// Grade associates a student with a score for one course. Grades are
// read-only here; grade entry happens elsewhere.
type Grade struct {
	ID        int64   `json:"id" db:"id"`
	StudentID int64   `json:"studentId" db:"student_id"`
	CourseID  int64   `json:"courseId" db:"course_id"`
	Score     float64 `json:"score" db:"score"`

	// Relation (populated when needed)
	Course *Course `json:"course,omitempty"`
}
