package store

import (
	"context"
	"errors"

	"elearn/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// ProgressMutation edits a progress record in place. Returning an error
// aborts the write.
type ProgressMutation func(p *models.Progress) error

// EnrollmentSync brings e in line with the progress record p it is committed
// with. It reports whether e changed.
type EnrollmentSync func(p models.Progress, e *models.Enrollment) bool

// CertificateGuard vets a new certificate against the holder's enrollment
// and progress for the course, either of which is nil when absent. A
// non-nil error aborts the issue and is returned unchanged.
type CertificateGuard func(e *models.Enrollment, p *models.Progress) error

// Store persists every entity collection. Implementations enforce unique
// email and at most one enrollment, progress record and certificate per
// (user, course).
type Store interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	SaveCourse(ctx context.Context, course models.Course) error
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (models.Course, error)

	// Enroll stores e unless the user is already enrolled in the course, in
	// which case the existing enrollment is returned with created=false.
	Enroll(ctx context.Context, e models.Enrollment) (models.Enrollment, bool, error)
	GetEnrollment(ctx context.Context, userID, courseID string) (models.Enrollment, error)
	UpdateEnrollment(ctx context.Context, e models.Enrollment) error
	ListEnrollments(ctx context.Context, userID string) ([]models.Enrollment, error)

	// MutateProgress loads the (user, course) record, or an empty one with no
	// ID when absent, applies fn and persists the result atomically. When
	// sync is set and the user is enrolled, the enrollment it derives is
	// written in the same commit.
	MutateProgress(ctx context.Context, userID, courseID string, fn ProgressMutation, sync EnrollmentSync) (models.Progress, error)
	ListProgress(ctx context.Context, userID string) ([]models.Progress, error)

	// IssueCertificate stores c unless one exists for the same (user,
	// course), in which case the existing one is returned with created=false.
	// guard, when set, runs against the state the insert commits on.
	IssueCertificate(ctx context.Context, c models.Certificate, guard CertificateGuard) (models.Certificate, bool, error)
	ListCertificates(ctx context.Context, userID string) ([]models.Certificate, error)

	CreateForum(ctx context.Context, f models.Forum) error
	GetForum(ctx context.Context, id string) (models.Forum, error)
	ListForums(ctx context.Context, courseID string) ([]models.Forum, error)
	CreatePost(ctx context.Context, p models.Post) error
	ListPosts(ctx context.Context, forumID string) ([]models.Post, error)

	// Export returns a full copy of every collection.
	Export(ctx context.Context) (models.Document, error)
	Close() error
}
