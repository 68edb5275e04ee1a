package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"elearn/models"
)

// FileStore keeps every collection in one JSON document on disk. The whole
// document is held in memory; each mutation is applied under a single writer
// lock, persisted by atomic replace, and rolled back in memory if the write
// fails.
type FileStore struct {
	mu   sync.RWMutex
	path string
	doc  models.Document

	userByID    map[string]int
	userByEmail map[string]int
	courseByID  map[string]int
	enrollByKey map[string]int
	progByKey   map[string]int
	certByKey   map[string]int
	forumByID   map[string]int

	write func(path string, data []byte) error
}

// OpenFileStore loads the document at path, creating it with empty
// collections when it does not exist.
func OpenFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("document path is required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create document dir: %w", err)
		}
	}

	s := &FileStore{path: path, write: atomicWrite}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.doc = models.EmptyDocument()
		s.reindex()
		if err := s.persist(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read document: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	doc.Normalize()
	s.doc = doc
	s.reindex()
	return s, nil
}

func pairKey(userID, courseID string) string {
	return userID + "\x00" + courseID
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// reindex rebuilds every lookup map from the document. When a legacy
// document holds duplicates for a unique key the first record wins.
func (s *FileStore) reindex() {
	s.userByID = make(map[string]int, len(s.doc.Users))
	s.userByEmail = make(map[string]int, len(s.doc.Users))
	for i, u := range s.doc.Users {
		setOnce(s.userByID, u.ID, i)
		setOnce(s.userByEmail, normalizeEmail(u.Email), i)
	}
	s.courseByID = make(map[string]int, len(s.doc.Courses))
	for i, c := range s.doc.Courses {
		setOnce(s.courseByID, c.ID, i)
	}
	s.enrollByKey = make(map[string]int, len(s.doc.Enrollments))
	for i, e := range s.doc.Enrollments {
		setOnce(s.enrollByKey, pairKey(e.UserID, e.CourseID), i)
	}
	s.progByKey = make(map[string]int, len(s.doc.Progress))
	for i, p := range s.doc.Progress {
		setOnce(s.progByKey, pairKey(p.UserID, p.CourseID), i)
	}
	s.certByKey = make(map[string]int, len(s.doc.Certificates))
	for i, c := range s.doc.Certificates {
		setOnce(s.certByKey, pairKey(c.UserID, c.CourseID), i)
	}
	s.forumByID = make(map[string]int, len(s.doc.Forums))
	for i, f := range s.doc.Forums {
		setOnce(s.forumByID, f.ID, i)
	}
}

func setOnce(m map[string]int, key string, i int) {
	if _, ok := m[key]; !ok {
		m[key] = i
	}
}

func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.write(s.path, data); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}

// commit persists the document and runs undo when that fails. Callers hold
// the write lock.
func (s *FileStore) commit(undo func()) error {
	if err := s.persist(); err != nil {
		undo()
		return err
	}
	return nil
}

// atomicWrite writes data next to path and renames it into place.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (s *FileStore) CreateUser(ctx context.Context, user models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(user.Email)
	user.Email = email
	if _, ok := s.userByEmail[email]; ok {
		return ErrDuplicate
	}
	if _, ok := s.userByID[user.ID]; ok {
		return ErrDuplicate
	}

	i := len(s.doc.Users)
	s.doc.Users = append(s.doc.Users, user)
	s.userByID[user.ID] = i
	s.userByEmail[email] = i
	return s.commit(func() {
		s.doc.Users = s.doc.Users[:i]
		delete(s.userByID, user.ID)
		delete(s.userByEmail, email)
	})
}

func (s *FileStore) GetUserByID(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.userByID[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.doc.Users[i], nil
}

func (s *FileStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.userByEmail[normalizeEmail(email)]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.doc.Users[i], nil
}

// SaveCourse inserts the course or replaces the one with the same id.
func (s *FileStore) SaveCourse(ctx context.Context, course models.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	course = cloneCourse(course)
	if i, ok := s.courseByID[course.ID]; ok {
		prev := s.doc.Courses[i]
		s.doc.Courses[i] = course
		return s.commit(func() { s.doc.Courses[i] = prev })
	}

	i := len(s.doc.Courses)
	s.doc.Courses = append(s.doc.Courses, course)
	s.courseByID[course.ID] = i
	return s.commit(func() {
		s.doc.Courses = s.doc.Courses[:i]
		delete(s.courseByID, course.ID)
	})
}

func (s *FileStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, 0, len(s.doc.Courses))
	for _, c := range s.doc.Courses {
		out = append(out, cloneCourse(c))
	}
	return out, nil
}

func (s *FileStore) GetCourse(ctx context.Context, id string) (models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.courseByID[id]
	if !ok {
		return models.Course{}, ErrNotFound
	}
	return cloneCourse(s.doc.Courses[i]), nil
}

func (s *FileStore) Enroll(ctx context.Context, e models.Enrollment) (models.Enrollment, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Enrollment{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(e.UserID, e.CourseID)
	if i, ok := s.enrollByKey[key]; ok {
		return s.doc.Enrollments[i], false, nil
	}

	i := len(s.doc.Enrollments)
	s.doc.Enrollments = append(s.doc.Enrollments, e)
	s.enrollByKey[key] = i
	err := s.commit(func() {
		s.doc.Enrollments = s.doc.Enrollments[:i]
		delete(s.enrollByKey, key)
	})
	if err != nil {
		return models.Enrollment{}, false, err
	}
	return e, true, nil
}

func (s *FileStore) GetEnrollment(ctx context.Context, userID, courseID string) (models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.enrollByKey[pairKey(userID, courseID)]
	if !ok {
		return models.Enrollment{}, ErrNotFound
	}
	return s.doc.Enrollments[i], nil
}

func (s *FileStore) UpdateEnrollment(ctx context.Context, e models.Enrollment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.enrollByKey[pairKey(e.UserID, e.CourseID)]
	if !ok || s.doc.Enrollments[i].ID != e.ID {
		return ErrNotFound
	}
	prev := s.doc.Enrollments[i]
	s.doc.Enrollments[i] = e
	return s.commit(func() { s.doc.Enrollments[i] = prev })
}

func (s *FileStore) ListEnrollments(ctx context.Context, userID string) ([]models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Enrollment{}
	for i, e := range s.doc.Enrollments {
		if e.UserID != userID || s.enrollByKey[pairKey(e.UserID, e.CourseID)] != i {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *FileStore) MutateProgress(ctx context.Context, userID, courseID string, fn ProgressMutation, sync EnrollmentSync) (models.Progress, error) {
	if err := ctx.Err(); err != nil {
		return models.Progress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(userID, courseID)
	i, exists := s.progByKey[key]

	var p models.Progress
	if exists {
		p = s.doc.Progress[i].Clone()
	} else {
		p = models.Progress{UserID: userID, CourseID: courseID, LessonsCompleted: []int{}}
	}
	if err := fn(&p); err != nil {
		return models.Progress{}, err
	}
	if p.UserID != userID || p.CourseID != courseID {
		return models.Progress{}, fmt.Errorf("progress mutation changed its key")
	}

	var undo []func()
	if exists {
		prev := s.doc.Progress[i]
		s.doc.Progress[i] = p
		undo = append(undo, func() { s.doc.Progress[i] = prev })
	} else {
		i = len(s.doc.Progress)
		s.doc.Progress = append(s.doc.Progress, p)
		s.progByKey[key] = i
		undo = append(undo, func() {
			s.doc.Progress = s.doc.Progress[:i]
			delete(s.progByKey, key)
		})
	}

	if ei, enrolled := s.enrollByKey[key]; sync != nil && enrolled {
		prev := s.doc.Enrollments[ei]
		next := prev
		if sync(p.Clone(), &next) {
			s.doc.Enrollments[ei] = next
			undo = append(undo, func() { s.doc.Enrollments[ei] = prev })
		}
	}

	err := s.commit(func() {
		for j := len(undo) - 1; j >= 0; j-- {
			undo[j]()
		}
	})
	if err != nil {
		return models.Progress{}, err
	}
	return p.Clone(), nil
}

func (s *FileStore) ListProgress(ctx context.Context, userID string) ([]models.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Progress{}
	for i, p := range s.doc.Progress {
		if p.UserID != userID || s.progByKey[pairKey(p.UserID, p.CourseID)] != i {
			continue
		}
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *FileStore) IssueCertificate(ctx context.Context, c models.Certificate, guard CertificateGuard) (models.Certificate, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Certificate{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(c.UserID, c.CourseID)
	if i, ok := s.certByKey[key]; ok {
		return s.doc.Certificates[i], false, nil
	}

	if guard != nil {
		var enrollment *models.Enrollment
		if ei, ok := s.enrollByKey[key]; ok {
			e := s.doc.Enrollments[ei]
			enrollment = &e
		}
		var progress *models.Progress
		if pi, ok := s.progByKey[key]; ok {
			p := s.doc.Progress[pi].Clone()
			progress = &p
		}
		if err := guard(enrollment, progress); err != nil {
			return models.Certificate{}, false, err
		}
	}

	i := len(s.doc.Certificates)
	s.doc.Certificates = append(s.doc.Certificates, c)
	s.certByKey[key] = i
	err := s.commit(func() {
		s.doc.Certificates = s.doc.Certificates[:i]
		delete(s.certByKey, key)
	})
	if err != nil {
		return models.Certificate{}, false, err
	}
	return c, true, nil
}

func (s *FileStore) ListCertificates(ctx context.Context, userID string) ([]models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Certificate{}
	for i, c := range s.doc.Certificates {
		if c.UserID != userID || s.certByKey[pairKey(c.UserID, c.CourseID)] != i {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *FileStore) CreateForum(ctx context.Context, f models.Forum) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.forumByID[f.ID]; ok {
		return ErrDuplicate
	}
	i := len(s.doc.Forums)
	s.doc.Forums = append(s.doc.Forums, f)
	s.forumByID[f.ID] = i
	return s.commit(func() {
		s.doc.Forums = s.doc.Forums[:i]
		delete(s.forumByID, f.ID)
	})
}

func (s *FileStore) GetForum(ctx context.Context, id string) (models.Forum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.forumByID[id]
	if !ok {
		return models.Forum{}, ErrNotFound
	}
	return s.doc.Forums[i], nil
}

func (s *FileStore) ListForums(ctx context.Context, courseID string) ([]models.Forum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Forum{}
	for _, f := range s.doc.Forums {
		if f.CourseID == courseID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FileStore) CreatePost(ctx context.Context, p models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := len(s.doc.Posts)
	s.doc.Posts = append(s.doc.Posts, p)
	return s.commit(func() { s.doc.Posts = s.doc.Posts[:i] })
}

func (s *FileStore) ListPosts(ctx context.Context, forumID string) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Post{}
	for _, p := range s.doc.Posts {
		if p.ForumID == forumID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *FileStore) Export(ctx context.Context) (models.Document, error) {
	s.mu.RLock()
	raw, err := json.Marshal(s.doc)
	s.mu.RUnlock()
	if err != nil {
		return models.Document{}, fmt.Errorf("encode document: %w", err)
	}
	var out models.Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.Document{}, fmt.Errorf("copy document: %w", err)
	}
	out.Normalize()
	return out, nil
}

func (s *FileStore) Close() error { return nil }

func cloneCourse(c models.Course) models.Course {
	out := c
	out.Lessons = append([]models.Lesson{}, c.Lessons...)
	return out
}
