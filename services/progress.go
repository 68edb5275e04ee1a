package services

import (
	"context"

	"elearn/models"
	"elearn/store"
)

// UpsertProgress marks lessonID of courseID completed or not completed for
// userID, creating the progress record on first use.
func UpsertProgress(ctx context.Context, st store.Store, userID, courseID string, lessonID int, completed bool) (models.Progress, error) {
	course, err := getCourse(ctx, st, courseID)
	if err != nil {
		return models.Progress{}, err
	}
	if !course.HasLesson(lessonID) {
		return models.Progress{}, ErrUnknownLesson
	}

	progress, err := st.MutateProgress(ctx, userID, course.ID, func(p *models.Progress) error {
		now := nowFunc()
		if p.ID == "" {
			p.ID = newID()
			p.CreatedAt = now
		}
		p.MarkLesson(lessonID, completed)
		p.UpdatedAt = now
		return nil
	}, enrollmentSync(course))
	if err != nil {
		return models.Progress{}, err
	}
	return progress, nil
}

// GetProgress returns every progress record of userID.
func GetProgress(ctx context.Context, st store.Store, userID string) ([]models.Progress, error) {
	return st.ListProgress(ctx, userID)
}
