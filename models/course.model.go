package models

import "gorm.io/datatypes"

// Course is a learning unit with an ordered list of lessons. Courses are
// seeded from a catalog file; the API never writes them.
type Course struct {
	ID          string                      `json:"id" yaml:"id" gorm:"primaryKey;size:64"`
	Title       string                      `json:"title" yaml:"title"`
	Description string                      `json:"description" yaml:"description"`
	Duration    string                      `json:"duration" yaml:"duration"`
	Level       string                      `json:"level" yaml:"level"`
	Instructor  string                      `json:"instructor" yaml:"instructor"`
	Price       float64                     `json:"price" yaml:"price"`
	Rating      float64                     `json:"rating" yaml:"rating"`
	Students    int                         `json:"students" yaml:"students"`
	Icon        string                      `json:"icon" yaml:"icon"`
	Lessons     datatypes.JSONSlice[Lesson] `json:"lessons" yaml:"lessons"`
}

// Lesson belongs to exactly one course; its id is only unique within it.
type Lesson struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Duration    string `json:"duration" yaml:"duration"`
	VideoURL    string `json:"videoUrl" yaml:"videoUrl"`
	Description string `json:"description" yaml:"description"`
}

// HasLesson reports whether lessonID names one of the course's lessons.
func (c Course) HasLesson(lessonID int) bool {
	for _, l := range c.Lessons {
		if l.ID == lessonID {
			return true
		}
	}
	return false
}

// LessonIDs returns the course's lesson ids in course order.
func (c Course) LessonIDs() []int {
	ids := make([]int, 0, len(c.Lessons))
	for _, l := range c.Lessons {
		ids = append(ids, l.ID)
	}
	return ids
}
