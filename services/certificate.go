package services

import (
	"context"
	"fmt"

	"elearn/logger"
	"elearn/models"
	"elearn/store"
	"elearn/utils"
)

// IssueCertificate grants userID a certificate for courseID once they are
// enrolled and have completed every lesson. Later calls return the first
// certificate with created=false.
func IssueCertificate(ctx context.Context, st store.Store, userID, courseID string) (models.Certificate, bool, error) {
	course, err := getCourse(ctx, st, courseID)
	if err != nil {
		return models.Certificate{}, false, err
	}

	cert, created, err := st.IssueCertificate(ctx, models.Certificate{
		ID:             newID(),
		UserID:         userID,
		CourseID:       course.ID,
		IssuedAt:       nowFunc(),
		CertificateURL: fmt.Sprintf("/certificates/%s.pdf", newID()),
	}, func(enrollment *models.Enrollment, progress *models.Progress) error {
		if enrollment == nil {
			return ErrNotEnrolled
		}
		if len(course.Lessons) > 0 && (progress == nil || !courseComplete(course, *progress)) {
			return ErrCourseIncomplete
		}
		return nil
	})
	if err != nil {
		return models.Certificate{}, false, err
	}
	if created {
		logger.Log.Info("certificate issued", "user_id", userID, "course_id", course.ID, "certificate_id", cert.ID)
		utils.Dispatch(newEvent(ctx, st, utils.EventCertificateIssued, userID, course, cert))
	}
	return cert, created, nil
}

func ListCertificates(ctx context.Context, st store.Store, userID string) ([]models.Certificate, error) {
	return st.ListCertificates(ctx, userID)
}
