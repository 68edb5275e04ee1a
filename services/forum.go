package services

import (
	"context"
	"errors"
	"strings"

	"elearn/models"
	"elearn/store"
)

func ListForums(ctx context.Context, st store.Store, courseID string) ([]models.Forum, error) {
	return st.ListForums(ctx, courseID)
}

// CreateForum opens a discussion thread on an existing course.
func CreateForum(ctx context.Context, st store.Store, userID, courseID, title, description string) (models.Forum, error) {
	course, err := getCourse(ctx, st, courseID)
	if err != nil {
		return models.Forum{}, err
	}

	forum := models.Forum{
		ID:          newID(),
		CourseID:    course.ID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedBy:   userID,
		CreatedAt:   nowFunc(),
	}
	if err := st.CreateForum(ctx, forum); err != nil {
		return models.Forum{}, err
	}
	return forum, nil
}

func ListPosts(ctx context.Context, st store.Store, forumID string) ([]models.Post, error) {
	return st.ListPosts(ctx, forumID)
}

// CreatePost appends a message to an existing forum.
func CreatePost(ctx context.Context, st store.Store, userID, forumID, content string) (models.Post, error) {
	if _, err := st.GetForum(ctx, forumID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Post{}, ErrForumNotFound
		}
		return models.Post{}, err
	}

	post := models.Post{
		ID:        newID(),
		ForumID:   forumID,
		Content:   content,
		AuthorID:  userID,
		CreatedAt: nowFunc(),
	}
	if err := st.CreatePost(ctx, post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}
