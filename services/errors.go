package services

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCourseNotFound     = errors.New("course not found")
	ErrForumNotFound      = errors.New("forum not found")
	ErrUnknownLesson      = errors.New("lesson does not belong to course")
	ErrNotEnrolled        = errors.New("user is not enrolled in course")
	ErrCourseIncomplete   = errors.New("course has incomplete lessons")
)
