package utils

import (
	"context"
	"errors"
	"time"

	"elearn/logger"
)

const (
	EventEnrollmentCreated = "enrollment.created"
	EventCertificateIssued = "certificate.issued"
)

// Event describes something a user did that other systems may care about.
type Event struct {
	Type       string      `json:"type"`
	UserID     string      `json:"userId"`
	CourseID   string      `json:"courseId"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data,omitempty"`

	UserName    string `json:"-"`
	UserEmail   string `json:"-"`
	CourseTitle string `json:"-"`
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Notifications receives every dispatched event. It is replaced at start-up
// with the configured notifiers.
var Notifications Notifier = NoopNotifier{}

const notifyTimeout = 15 * time.Second

// Dispatch delivers ev in the background. Delivery failures are logged only.
func Dispatch(ev Event) {
	n := Notifications
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := n.Notify(ctx, ev); err != nil {
			logger.Log.Warn("event delivery failed", "type", ev.Type, "user_id", ev.UserID, "course_id", ev.CourseID, "error", err)
		}
	}()
}

type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Event) error { return nil }

// MultiNotifier fans an event out to every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
