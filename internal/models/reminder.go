package models

import (
	"time"

	trackererrors "college-tracker/internal/common/errors"
)

type ReminderType string

const (
	ReminderDeadline     ReminderType = "deadline"
	ReminderDocument     ReminderType = "document"
	ReminderInterview    ReminderType = "interview"
	ReminderResult       ReminderType = "result"
	ReminderFinancialAid ReminderType = "financial-aid"
)

func (t ReminderType) IsValid() bool {
	switch t {
	case ReminderDeadline, ReminderDocument, ReminderInterview, ReminderResult, ReminderFinancialAid:
		return true
	}
	return false
}

// Reminder is an inert record: due-ness is decided by whoever sweeps the
// collection, there is no scheduler attached to it.
type Reminder struct {
	ID          string       `json:"id"`
	Type        ReminderType `json:"type"`
	Date        time.Time    `json:"date"`
	Message     string       `json:"message"`
	IsCompleted bool         `json:"isCompleted"`
	RelatedID   *string      `json:"relatedId,omitempty"`
}

// IsDue reports whether the reminder should fire at now.
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.IsCompleted && !r.Date.After(now)
}

// Validate checks the Reminder invariants.
func (r *Reminder) Validate() error {
	if r.ID == "" {
		return trackererrors.NewValidationError("reminder.id", "id is required")
	}
	if !r.Type.IsValid() {
		return trackererrors.NewValidationError("reminder.type", "unknown reminder type")
	}
	if r.Date.IsZero() {
		return trackererrors.NewValidationError("reminder.date", "date is required")
	}
	if r.Message == "" {
		return trackererrors.NewValidationError("reminder.message", "message is required")
	}
	return nil
}
