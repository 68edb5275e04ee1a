package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"elearn/models"
	"elearn/store"
	"elearn/utils"
)

var testCourse = models.Course{
	ID:    "101",
	Title: "Web Development Fundamentals",
	Lessons: []models.Lesson{
		{ID: 1, Title: "HTML"},
		{ID: 2, Title: "CSS"},
		{ID: 3, Title: "JavaScript"},
	},
}

type recorder struct {
	mu     sync.Mutex
	events []utils.Event
	seen   chan struct{}
}

func (r *recorder) Notify(_ context.Context, ev utils.Event) error {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.seen <- struct{}{}
	return nil
}

func (r *recorder) wait(t *testing.T) utils.Event {
	t.Helper()
	select {
	case <-r.seen:
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.OpenFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	require.NoError(t, st.SaveCourse(context.Background(), testCourse))
	return st
}

func recordEvents(t *testing.T) *recorder {
	t.Helper()
	rec := &recorder{seen: make(chan struct{}, 16)}
	prev := utils.Notifications
	utils.Notifications = rec
	t.Cleanup(func() { utils.Notifications = prev })
	return rec
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}

func registerUser(t *testing.T, st store.Store, email string) models.User {
	t.Helper()
	u, err := Register(context.Background(), st, "Student", email, "password123", bcrypt.MinCost)
	require.NoError(t, err)
	return u
}
