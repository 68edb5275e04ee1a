package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"elearn/models"
	"elearn/store"
)

// nowFunc is swapped in tests.
var nowFunc = func() time.Time { return time.Now().UTC() }

func newID() string {
	return uuid.NewString()
}

func getCourse(ctx context.Context, st store.Store, courseID string) (models.Course, error) {
	course, err := st.GetCourse(ctx, courseID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Course{}, ErrCourseNotFound
	}
	return course, err
}
