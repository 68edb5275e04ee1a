package services

import (
	"context"
	"time"

	"github.com/jinzhu/now"

	"elearn/models"
	"elearn/store"
)

type CourseProgress struct {
	CourseID         string `json:"courseId"`
	Title            string `json:"title"`
	CompletedLessons int    `json:"completedLessons"`
	TotalLessons     int    `json:"totalLessons"`
	Percent          int    `json:"percent"`
}

// Analytics summarises one user's learning activity.
type Analytics struct {
	TotalCourses     int               `json:"totalCourses"`
	CompletedCourses int               `json:"completedCourses"`
	TotalLessons     int               `json:"totalLessons"`
	Certificates     int               `json:"certificates"`
	Progress         []models.Progress `json:"progress"`

	ActiveToday    int              `json:"activeToday"`
	ActiveThisWeek int              `json:"activeThisWeek"`
	Courses        []CourseProgress `json:"courses"`
}

// ComputeAnalytics reads the user's enrollments, progress and certificates
// and derives the summary counts.
func ComputeAnalytics(ctx context.Context, st store.Store, userID string) (Analytics, error) {
	enrollments, err := st.ListEnrollments(ctx, userID)
	if err != nil {
		return Analytics{}, err
	}
	progress, err := st.ListProgress(ctx, userID)
	if err != nil {
		return Analytics{}, err
	}
	certs, err := st.ListCertificates(ctx, userID)
	if err != nil {
		return Analytics{}, err
	}
	courses, err := st.ListCourses(ctx)
	if err != nil {
		return Analytics{}, err
	}

	byID := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	return summarize(enrollments, progress, certs, byID, nowFunc()), nil
}

func summarize(enrollments []models.Enrollment, progress []models.Progress, certs []models.Certificate, courses map[string]models.Course, at time.Time) Analytics {
	out := Analytics{
		TotalCourses:     len(enrollments),
		CompletedCourses: len(certs),
		Certificates:     len(certs),
		Progress:         progress,
		Courses:          []CourseProgress{},
	}
	if out.Progress == nil {
		out.Progress = []models.Progress{}
	}

	cal := (&now.Config{WeekStartDay: time.Monday, TimeLocation: at.Location()}).With(at)
	dayStart, weekStart := cal.BeginningOfDay(), cal.BeginningOfWeek()

	for _, p := range progress {
		out.TotalLessons += len(p.LessonsCompleted)
		if !p.UpdatedAt.Before(dayStart) {
			out.ActiveToday++
		}
		if !p.UpdatedAt.Before(weekStart) {
			out.ActiveThisWeek++
		}

		entry := CourseProgress{CourseID: p.CourseID}
		if course, ok := courses[p.CourseID]; ok {
			entry.Title = course.Title
			entry.TotalLessons = len(course.Lessons)
			for _, l := range course.Lessons {
				if p.IsCompleted(l.ID) {
					entry.CompletedLessons++
				}
			}
		} else {
			entry.CompletedLessons = len(p.LessonsCompleted)
		}
		if entry.TotalLessons > 0 {
			entry.Percent = entry.CompletedLessons * 100 / entry.TotalLessons
		}
		out.Courses = append(out.Courses, entry)
	}
	return out
}
