package models

import (
	"time"

	trackererrors "college-tracker/internal/common/errors"
)

type InterviewType string

const (
	InterviewOnline   InterviewType = "online"
	InterviewInPerson InterviewType = "in-person"
	InterviewPhone    InterviewType = "phone"
)

func (t InterviewType) IsValid() bool {
	return t == InterviewOnline || t == InterviewInPerson || t == InterviewPhone
}

type InterviewStatus string

const (
	InterviewScheduled   InterviewStatus = "scheduled"
	InterviewCompleted   InterviewStatus = "completed"
	InterviewCancelled   InterviewStatus = "cancelled"
	InterviewRescheduled InterviewStatus = "rescheduled"
)

func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled, InterviewRescheduled:
		return true
	}
	return false
}

type Interview struct {
	ID            string          `json:"id"`
	Type          InterviewType   `json:"type"`
	ScheduledDate time.Time       `json:"scheduledDate"`
	Duration      int             `json:"duration"` // minutes
	Interviewer   *string         `json:"interviewer,omitempty"`
	Location      *string         `json:"location,omitempty"`
	MeetingLink   *string         `json:"meetingLink,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	Status        InterviewStatus `json:"status"`
	Feedback      *string         `json:"feedback,omitempty"`
	Rating        *int            `json:"rating,omitempty"` // 1-5
}

// Validate checks the Interview invariants.
func (i *Interview) Validate() error {
	if i.ID == "" {
		return trackererrors.NewValidationError("interview.id", "id is required")
	}
	if !i.Type.IsValid() {
		return trackererrors.NewValidationError("interview.type", "unknown interview type")
	}
	if i.ScheduledDate.IsZero() {
		return trackererrors.NewValidationError("interview.scheduledDate", "scheduled date is required")
	}
	if i.Duration <= 0 {
		return trackererrors.NewValidationError("interview.duration", "duration must be positive minutes")
	}
	if !i.Status.IsValid() {
		return trackererrors.NewValidationError("interview.status", "unknown interview status")
	}
	if i.Rating != nil && (*i.Rating < 1 || *i.Rating > 5) {
		return trackererrors.NewValidationError("interview.rating", "rating must be between 1 and 5")
	}
	return nil
}
