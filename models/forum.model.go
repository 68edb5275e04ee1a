package models

import "time"

type Forum struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	CourseID    string    `json:"courseId" gorm:"index;size:64;not null"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy" gorm:"size:36"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	ForumID   string    `json:"forumId" gorm:"index;size:36;not null"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId" gorm:"size:36"`
	CreatedAt time.Time `json:"createdAt"`
}
