package models

import "encoding/json"

// Document is the on-disk layout of the flat-file store: one top-level array
// per entity collection.
type Document struct {
	Users        []User            `json:"users"`
	Courses      []Course          `json:"courses"`
	Enrollments  []Enrollment      `json:"enrollments"`
	Progress     []Progress        `json:"progress"`
	Certificates []Certificate     `json:"certificates"`
	Forums       []Forum           `json:"forums"`
	Posts        []Post            `json:"posts"`
	Analytics    []json.RawMessage `json:"analytics"`
}

// EmptyDocument returns a document whose collections are all non-nil.
func EmptyDocument() Document {
	var d Document
	d.Normalize()
	return d
}

// Normalize replaces nil collections with empty ones so they serialize as [].
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Courses == nil {
		d.Courses = []Course{}
	}
	if d.Enrollments == nil {
		d.Enrollments = []Enrollment{}
	}
	if d.Progress == nil {
		d.Progress = []Progress{}
	}
	if d.Certificates == nil {
		d.Certificates = []Certificate{}
	}
	if d.Forums == nil {
		d.Forums = []Forum{}
	}
	if d.Posts == nil {
		d.Posts = []Post{}
	}
	if d.Analytics == nil {
		d.Analytics = []json.RawMessage{}
	}
	for i := range d.Progress {
		if d.Progress[i].LessonsCompleted == nil {
			d.Progress[i].LessonsCompleted = []int{}
		}
	}
	for i := range d.Courses {
		if d.Courses[i].Lessons == nil {
			d.Courses[i].Lessons = []Lesson{}
		}
	}
}
