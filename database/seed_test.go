package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearn/config"
	"elearn/store"
)

func TestSeedCoursesFromBundledCatalog(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	n, err := SeedCourses(ctx, st, filepath.Join("..", "seed", "courses.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	course, err := st.GetCourse(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, "Web Development Fundamentals", course.Title)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, course.LessonIDs())

	// Seeding again replaces rather than duplicates.
	_, err = SeedCourses(ctx, st, filepath.Join("..", "seed", "courses.yaml"))
	require.NoError(t, err)
	courses, err := st.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 3)
}

func TestLoadCatalogRejectsDuplicateLessons(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
courses:
  - id: "1"
    title: Broken
    lessons:
      - { id: 1, title: a }
      - { id: 1, title: b }
`), 0o644))

	_, err := LoadCatalog(path)
	assert.ErrorContains(t, err, "duplicate lesson id 1")
}

func TestLoadCatalogRejectsMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("courses:\n  - title: Nameless\n"), 0o644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestOpenSelectsDriver(t *testing.T) {
	cfg := &config.Config{StoreDriver: "file", DBPath: filepath.Join(t.TempDir(), "db.json")}
	st, err := Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.FileStore{}, st)

	_, err = Open(&config.Config{StoreDriver: "mongo"})
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestOpenSQLiteIgnoresDocumentPath(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "db.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{"users":[]}`), 0o644))

	st, err := Open(&config.Config{StoreDriver: "sqlite", DBPath: doc, SQLitePath: filepath.Join(dir, "elearn.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	assert.IsType(t, &store.GormStore{}, st)

	raw, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[]}`, string(raw))
}
