package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"elearn/models"
)

// GormStore implements Store on a SQL database. Uniqueness per (user,
// course) is backed by unique indexes; the gorm.DB must be opened with
// TranslateError so violations surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates every table.
func (g *GormStore) Migrate() error {
	return g.db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Progress{},
		&models.Certificate{},
		&models.Forum{},
		&models.Post{},
	)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func (g *GormStore) CreateUser(ctx context.Context, user models.User) error {
	user.Email = normalizeEmail(user.Email)
	return translate(g.db.WithContext(ctx).Create(&user).Error)
}

func (g *GormStore) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return u, translate(err)
}

func (g *GormStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := g.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	return u, translate(err)
}

func (g *GormStore) SaveCourse(ctx context.Context, course models.Course) error {
	if course.Lessons == nil {
		course.Lessons = []models.Lesson{}
	}
	return translate(g.db.WithContext(ctx).Save(&course).Error)
}

func (g *GormStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	err := g.db.WithContext(ctx).Order("id asc").Find(&courses).Error
	return courses, translate(err)
}

func (g *GormStore) GetCourse(ctx context.Context, id string) (models.Course, error) {
	var c models.Course
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	return c, translate(err)
}

func (g *GormStore) Enroll(ctx context.Context, e models.Enrollment) (models.Enrollment, bool, error) {
	existing, err := g.GetEnrollment(ctx, e.UserID, e.CourseID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Enrollment{}, false, err
	}

	err = translate(g.db.WithContext(ctx).Create(&e).Error)
	if errors.Is(err, ErrDuplicate) {
		// Lost a race with a concurrent enrollment for the same pair.
		existing, err := g.GetEnrollment(ctx, e.UserID, e.CourseID)
		return existing, false, err
	}
	if err != nil {
		return models.Enrollment{}, false, err
	}
	return e, true, nil
}

func (g *GormStore) GetEnrollment(ctx context.Context, userID, courseID string) (models.Enrollment, error) {
	var e models.Enrollment
	err := g.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	return e, translate(err)
}

func (g *GormStore) UpdateEnrollment(ctx context.Context, e models.Enrollment) error {
	res := updateEnrollment(g.db.WithContext(ctx), e)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func updateEnrollment(db *gorm.DB, e models.Enrollment) *gorm.DB {
	return db.Model(&models.Enrollment{}).
		Where("id = ? AND user_id = ? AND course_id = ?", e.ID, e.UserID, e.CourseID).
		Updates(map[string]interface{}{
			"status":       e.Status,
			"updated_at":   e.UpdatedAt,
			"completed_at": e.CompletedAt,
		})
}

// lockPair loads the (user, course) progress and enrollment rows for update,
// in that order. Absent rows come back nil.
func lockPair(tx *gorm.DB, userID, courseID string) (*models.Enrollment, *models.Progress, error) {
	var p models.Progress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&p).Error
	progress := &p
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = nil
	case err != nil:
		return nil, nil, err
	case p.LessonsCompleted == nil:
		p.LessonsCompleted = []int{}
	}

	var e models.Enrollment
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error
	enrollment := &e
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		enrollment = nil
	case err != nil:
		return nil, nil, err
	}
	return enrollment, progress, nil
}

func (g *GormStore) ListEnrollments(ctx context.Context, userID string) ([]models.Enrollment, error) {
	out := []models.Enrollment{}
	err := g.db.WithContext(ctx).Where("user_id = ?", userID).Order("enrolled_at asc").Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) MutateProgress(ctx context.Context, userID, courseID string, fn ProgressMutation, sync EnrollmentSync) (models.Progress, error) {
	var out models.Progress
	var err error
	// A concurrent first write for the same pair makes our insert hit the
	// unique index; the retry then sees the row and updates it.
	for attempt := 0; attempt < 3; attempt++ {
		out, err = g.mutateProgressOnce(ctx, userID, courseID, fn, sync)
		if !errors.Is(err, ErrDuplicate) {
			break
		}
	}
	return out, err
}

func (g *GormStore) mutateProgressOnce(ctx context.Context, userID, courseID string, fn ProgressMutation, sync EnrollmentSync) (models.Progress, error) {
	var out models.Progress
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, locked, err := lockPair(tx, userID, courseID)
		if err != nil {
			return err
		}

		p := models.Progress{UserID: userID, CourseID: courseID, LessonsCompleted: []int{}}
		if locked != nil {
			p = *locked
		}
		if err := fn(&p); err != nil {
			return err
		}
		if p.LessonsCompleted == nil {
			p.LessonsCompleted = []int{}
		}

		if locked != nil {
			err = tx.Save(&p).Error
		} else {
			err = tx.Create(&p).Error
		}
		if err != nil {
			return err
		}

		if sync != nil && enrollment != nil && sync(p.Clone(), enrollment) {
			if err := updateEnrollment(tx, *enrollment).Error; err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	return out, translate(err)
}

func (g *GormStore) ListProgress(ctx context.Context, userID string) ([]models.Progress, error) {
	out := []models.Progress{}
	if err := g.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at asc").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	for i := range out {
		if out[i].LessonsCompleted == nil {
			out[i].LessonsCompleted = []int{}
		}
	}
	return out, nil
}

func (g *GormStore) IssueCertificate(ctx context.Context, c models.Certificate, guard CertificateGuard) (models.Certificate, bool, error) {
	var existing models.Certificate
	created := false
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND course_id = ?", c.UserID, c.CourseID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if guard != nil {
			enrollment, progress, err := lockPair(tx, c.UserID, c.CourseID)
			if err != nil {
				return err
			}
			if err := guard(enrollment, progress); err != nil {
				return err
			}
		}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		created = true
		return nil
	})

	err = translate(err)
	if errors.Is(err, ErrDuplicate) {
		// Lost a race with a concurrent issue for the same pair.
		err = g.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", c.UserID, c.CourseID).First(&existing).Error
		return existing, false, translate(err)
	}
	if err != nil {
		return models.Certificate{}, false, err
	}
	if created {
		return c, true, nil
	}
	return existing, false, nil
}

func (g *GormStore) ListCertificates(ctx context.Context, userID string) ([]models.Certificate, error) {
	out := []models.Certificate{}
	err := g.db.WithContext(ctx).Where("user_id = ?", userID).Order("issued_at asc").Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) CreateForum(ctx context.Context, f models.Forum) error {
	return translate(g.db.WithContext(ctx).Create(&f).Error)
}

func (g *GormStore) GetForum(ctx context.Context, id string) (models.Forum, error) {
	var f models.Forum
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	return f, translate(err)
}

func (g *GormStore) ListForums(ctx context.Context, courseID string) ([]models.Forum, error) {
	out := []models.Forum{}
	err := g.db.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at asc").Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) CreatePost(ctx context.Context, p models.Post) error {
	return translate(g.db.WithContext(ctx).Create(&p).Error)
}

func (g *GormStore) ListPosts(ctx context.Context, forumID string) ([]models.Post, error) {
	out := []models.Post{}
	err := g.db.WithContext(ctx).Where("forum_id = ?", forumID).Order("created_at asc").Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) Export(ctx context.Context) (models.Document, error) {
	doc := models.EmptyDocument()
	db := g.db.WithContext(ctx)
	for _, dest := range []interface{}{
		&doc.Users, &doc.Courses, &doc.Enrollments, &doc.Progress,
		&doc.Certificates, &doc.Forums, &doc.Posts,
	} {
		if err := db.Find(dest).Error; err != nil {
			return models.Document{}, translate(err)
		}
	}
	doc.Normalize()
	return doc, nil
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
