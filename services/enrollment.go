package services

import (
	"context"

	"elearn/logger"
	"elearn/models"
	"elearn/store"
	"elearn/utils"
)

// Enroll registers userID for courseID. Enrolling twice returns the first
// enrollment with created=false.
func Enroll(ctx context.Context, st store.Store, userID, courseID string) (models.Enrollment, bool, error) {
	course, err := getCourse(ctx, st, courseID)
	if err != nil {
		return models.Enrollment{}, false, err
	}

	now := nowFunc()
	enrollment, created, err := st.Enroll(ctx, models.Enrollment{
		ID:         newID(),
		UserID:     userID,
		CourseID:   course.ID,
		Status:     models.EnrollmentActive,
		EnrolledAt: now,
		UpdatedAt:  now,
	})
	if err != nil {
		return models.Enrollment{}, false, err
	}

	if created {
		logger.Log.Info("user enrolled", "user_id", userID, "course_id", course.ID)
		utils.Dispatch(newEvent(ctx, st, utils.EventEnrollmentCreated, userID, course, enrollment))
	}
	return enrollment, created, nil
}

func ListEnrollments(ctx context.Context, st store.Store, userID string) ([]models.Enrollment, error) {
	return st.ListEnrollments(ctx, userID)
}

// enrollmentSync moves an enrollment's status along with the progress
// record it is committed with.
func enrollmentSync(course models.Course) store.EnrollmentSync {
	return func(progress models.Progress, enrollment *models.Enrollment) bool {
		status := models.EnrollmentActive
		switch {
		case courseComplete(course, progress):
			status = models.EnrollmentCompleted
		case len(progress.LessonsCompleted) > 0:
			status = models.EnrollmentInProgress
		}
		if status == enrollment.Status {
			return false
		}

		now := nowFunc()
		enrollment.Status = status
		enrollment.UpdatedAt = now
		if status == models.EnrollmentCompleted {
			enrollment.CompletedAt = &now
		} else {
			enrollment.CompletedAt = nil
		}
		return true
	}
}

// courseComplete reports whether every lesson of course is in progress.
func courseComplete(course models.Course, progress models.Progress) bool {
	if len(course.Lessons) == 0 {
		return false
	}
	for _, l := range course.Lessons {
		if !progress.IsCompleted(l.ID) {
			return false
		}
	}
	return true
}

func newEvent(ctx context.Context, st store.Store, kind, userID string, course models.Course, data interface{}) utils.Event {
	ev := utils.Event{
		Type:        kind,
		UserID:      userID,
		CourseID:    course.ID,
		OccurredAt:  nowFunc(),
		Data:        data,
		CourseTitle: course.Title,
	}
	if user, err := st.GetUserByID(ctx, userID); err == nil {
		ev.UserName = user.Name
		ev.UserEmail = user.Email
	}
	return ev
}
