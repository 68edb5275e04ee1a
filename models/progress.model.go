package models

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

// Progress records which lessons of one course a user has completed.
// At most one exists per (user, course).
type Progress struct {
	ID               string                   `json:"id" gorm:"primaryKey;size:36"`
	UserID           string                   `json:"userId" gorm:"uniqueIndex:idx_progress_user_course;size:36;not null"`
	CourseID         string                   `json:"courseId" gorm:"uniqueIndex:idx_progress_user_course;size:64;not null"`
	LessonsCompleted datatypes.JSONSlice[int] `json:"lessonsCompleted"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// IsCompleted reports whether lessonID is in the completed set.
func (p Progress) IsCompleted(lessonID int) bool {
	for _, id := range p.LessonsCompleted {
		if id == lessonID {
			return true
		}
	}
	return false
}

// MarkLesson adds or removes lessonID from the completed set. The set stays
// sorted and duplicate free. It reports whether the set changed.
func (p *Progress) MarkLesson(lessonID int, completed bool) bool {
	if completed {
		if p.IsCompleted(lessonID) {
			return false
		}
		p.LessonsCompleted = append(p.LessonsCompleted, lessonID)
		sort.Ints(p.LessonsCompleted)
		return true
	}

	kept := make(datatypes.JSONSlice[int], 0, len(p.LessonsCompleted))
	for _, id := range p.LessonsCompleted {
		if id != lessonID {
			kept = append(kept, id)
		}
	}
	changed := len(kept) != len(p.LessonsCompleted)
	p.LessonsCompleted = kept
	return changed
}

// Clone returns a copy that shares no memory with p.
func (p Progress) Clone() Progress {
	out := p
	out.LessonsCompleted = append(datatypes.JSONSlice[int]{}, p.LessonsCompleted...)
	return out
}
