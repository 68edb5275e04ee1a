package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearn/models"
)

func TestComputeAnalyticsCountsLessons(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	recordEvents(t)
	require.NoError(t, st.SaveCourse(ctx, models.Course{ID: "102", Title: "Python", Lessons: []models.Lesson{{ID: 1}, {ID: 2}}}))

	_, _, err := Enroll(ctx, st, "u1", "101")
	require.NoError(t, err)
	for _, step := range []struct {
		course string
		lesson int
	}{{"101", 1}, {"101", 2}, {"102", 1}} {
		_, err := UpsertProgress(ctx, st, "u1", step.course, step.lesson, true)
		require.NoError(t, err)
	}
	_, err = UpsertProgress(ctx, st, "u2", "101", 1, true)
	require.NoError(t, err)

	a, err := ComputeAnalytics(ctx, st, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, a.TotalCourses)
	assert.Equal(t, 0, a.CompletedCourses)
	assert.Equal(t, 3, a.TotalLessons)
	assert.Equal(t, 0, a.Certificates)
	assert.Len(t, a.Progress, 2)
	assert.Equal(t, 2, a.ActiveToday)
}

func TestComputeAnalyticsEmptyUser(t *testing.T) {
	st := newTestStore(t)

	a, err := ComputeAnalytics(context.Background(), st, "nobody")
	require.NoError(t, err)
	assert.Zero(t, a.TotalCourses)
	assert.Zero(t, a.TotalLessons)
	assert.NotNil(t, a.Progress)
	assert.NotNil(t, a.Courses)
}

func TestSummarizeActivityWindowsAndBreakdown(t *testing.T) {
	// Wednesday.
	at := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	courses := map[string]models.Course{"101": testCourse}
	progress := []models.Progress{
		{CourseID: "101", LessonsCompleted: []int{1, 3}, UpdatedAt: at.Add(-time.Hour)},
		{CourseID: "gone", LessonsCompleted: []int{7}, UpdatedAt: time.Date(2024, 5, 13, 8, 0, 0, 0, time.UTC)},
		{CourseID: "old", LessonsCompleted: []int{}, UpdatedAt: time.Date(2024, 5, 12, 23, 0, 0, 0, time.UTC)},
	}
	certs := []models.Certificate{{CourseID: "x"}}

	a := summarize([]models.Enrollment{{}, {}}, progress, certs, courses, at)
	assert.Equal(t, 2, a.TotalCourses)
	assert.Equal(t, 1, a.CompletedCourses)
	assert.Equal(t, 1, a.Certificates)
	assert.Equal(t, 3, a.TotalLessons)
	assert.Equal(t, 1, a.ActiveToday)
	assert.Equal(t, 2, a.ActiveThisWeek)

	require.Len(t, a.Courses, 3)
	assert.Equal(t, CourseProgress{CourseID: "101", Title: testCourse.Title, CompletedLessons: 2, TotalLessons: 3, Percent: 66}, a.Courses[0])
	assert.Equal(t, CourseProgress{CourseID: "gone", CompletedLessons: 1}, a.Courses[1])
}
