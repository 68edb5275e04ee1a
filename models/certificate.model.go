package models

import "time"

// Certificate is proof that a user completed a course. At most one exists
// per (user, course).
type Certificate struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	UserID         string    `json:"userId" gorm:"uniqueIndex:idx_certificate_user_course;size:36;not null"`
	CourseID       string    `json:"courseId" gorm:"uniqueIndex:idx_certificate_user_course;size:64;not null"`
	IssuedAt       time.Time `json:"issuedAt"`
	CertificateURL string    `json:"certificateUrl"`
}
