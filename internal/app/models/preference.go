package models

// OptionalPreference is a student's ranked choice of one optional course.
// Lower rank means higher priority; ranks are unique per student and
// specialization.
type OptionalPreference struct {
	StudentID int64 `json:"studentId" db:"student_id"`
	CourseID  int64 `json:"courseId" db:"course_id"`
	Rank      int   `json:"rank" db:"rank"`

	// Relation (populated when needed)
	Course *Course `json:"course,omitempty"`
}
