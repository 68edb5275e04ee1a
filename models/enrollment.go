package models

import "time"

const (
	EnrollmentActive     = "active"
	EnrollmentInProgress = "in_progress"
	EnrollmentCompleted  = "completed"
)

// Enrollment is a user's registered intent to take a course. At most one
// exists per (user, course).
type Enrollment struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	UserID      string     `json:"userId" gorm:"uniqueIndex:idx_enrollment_user_course;size:36;not null"`
	CourseID    string     `json:"courseId" gorm:"uniqueIndex:idx_enrollment_user_course;size:64;not null"`
	Status      string     `json:"status" gorm:"default:'active'"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
