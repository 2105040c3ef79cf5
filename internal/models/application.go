package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	trackererrors "college-tracker/internal/common/errors"
)

// ChecklistItem tracks one ad hoc to-do entry on an application.
type ChecklistItem struct {
	Completed     bool       `json:"completed"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// Application is the aggregate root: one university-program application and
// all of its embedded sub-records.
type Application struct {
	ID                   string                   `json:"id"`
	University           University               `json:"university"`
	Program              Program                  `json:"program"`
	Status               Status                   `json:"status"`
	SubmittedDate        *time.Time               `json:"submittedDate,omitempty"`
	Notes                string                   `json:"notes,omitempty"`
	Documents            []Document               `json:"documents"`
	Interviews           []Interview              `json:"interviews"`
	FinancialAid         []FinancialAid           `json:"financialAid"`
	Reminders            []Reminder               `json:"reminders"`
	Checklist            map[string]ChecklistItem `json:"checklist"`
	Priority             Priority                 `json:"priority"`
	ApplicationFeePaid   bool                     `json:"applicationFeePaid"`
	ApplicationFeeAmount float64                  `json:"applicationFeeAmount"`
	CreatedAt            time.Time                `json:"createdAt"`
	UpdatedAt            time.Time                `json:"updatedAt"`
}

// NewApplication creates an Application in its initial state: status pending,
// empty sub-collections, regular priority, createdAt = updatedAt = now.
func NewApplication(university University, program Program) (*Application, error) {
	now := time.Now().UTC()
	app := &Application{
		ID:           uuid.New().String(),
		University:   university,
		Program:      program,
		Status:       StatusPending,
		Documents:    []Document{},
		Interviews:   []Interview{},
		FinancialAid: []FinancialAid{},
		Reminders:    []Reminder{},
		Checklist:    map[string]ChecklistItem{},
		Priority:     PriorityRegular,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := app.Validate(); err != nil {
		return nil, err
	}

	return app, nil
}

// Validate checks the Application invariants, including every embedded record.
func (a *Application) Validate() error {
	if a.ID == "" {
		return trackererrors.NewValidationError("application.id", "id is required")
	}
	if err := a.University.Validate(); err != nil {
		return err
	}
	if err := a.Program.Validate(); err != nil {
		return err
	}
	if !a.Status.IsValid() {
		return trackererrors.NewValidationError("application.status", fmt.Sprintf("unknown status %q", a.Status))
	}
	if !a.Priority.IsValid() {
		return trackererrors.NewValidationError("application.priority", fmt.Sprintf("unknown priority %q", a.Priority))
	}
	if a.ApplicationFeeAmount < 0 {
		return trackererrors.NewValidationError("application.applicationFeeAmount", "fee amount must be non-negative")
	}
	if a.CreatedAt.IsZero() {
		return trackererrors.NewValidationError("application.createdAt", "creation timestamp is required")
	}
	if a.UpdatedAt.Before(a.CreatedAt) {
		return trackererrors.NewValidationError("application.updatedAt", "updatedAt must not precede createdAt")
	}
	if a.SubmittedDate != nil && a.SubmittedDate.Before(a.CreatedAt) {
		return trackererrors.NewValidationError("application.submittedDate", "submittedDate must not precede createdAt")
	}
	if a.Status == StatusSubmitted && a.SubmittedDate == nil {
		return trackererrors.NewValidationError("application.submittedDate", "submitted applications must carry a submission date")
	}

	seenDocs := map[string]bool{}
	for i := range a.Documents {
		if err := a.Documents[i].Validate(); err != nil {
			return err
		}
		if seenDocs[a.Documents[i].ID] {
			return trackererrors.NewValidationError("application.documents", "duplicate document id "+a.Documents[i].ID)
		}
		seenDocs[a.Documents[i].ID] = true
	}

	seenInterviews := map[string]bool{}
	for i := range a.Interviews {
		if err := a.Interviews[i].Validate(); err != nil {
			return err
		}
		if seenInterviews[a.Interviews[i].ID] {
			return trackererrors.NewValidationError("application.interviews", "duplicate interview id "+a.Interviews[i].ID)
		}
		seenInterviews[a.Interviews[i].ID] = true
	}

	seenAid := map[string]bool{}
	for i := range a.FinancialAid {
		if err := a.FinancialAid[i].Validate(); err != nil {
			return err
		}
		if seenAid[a.FinancialAid[i].ID] {
			return trackererrors.NewValidationError("application.financialAid", "duplicate financial aid id "+a.FinancialAid[i].ID)
		}
		seenAid[a.FinancialAid[i].ID] = true
	}

	seenReminders := map[string]bool{}
	for i := range a.Reminders {
		if err := a.Reminders[i].Validate(); err != nil {
			return err
		}
		if seenReminders[a.Reminders[i].ID] {
			return trackererrors.NewValidationError("application.reminders", "duplicate reminder id "+a.Reminders[i].ID)
		}
		seenReminders[a.Reminders[i].ID] = true
	}

	return nil
}

func (a *Application) touch() {
	a.UpdatedAt = time.Now().UTC()
}

// SetStatus moves the application to status. Transitioning to submitted stamps
// the submission date if it is not already set.
func (a *Application) SetStatus(status Status) error {
	if !status.IsValid() {
		return trackererrors.NewValidationError("application.status", fmt.Sprintf("unknown status %q", status))
	}
	a.Status = status
	if status == StatusSubmitted && a.SubmittedDate == nil {
		now := time.Now().UTC()
		a.SubmittedDate = &now
	}
	a.touch()
	return nil
}

// AddDocument appends a validated document with a unique id.
func (a *Application) AddDocument(doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	for i := range a.Documents {
		if a.Documents[i].ID == doc.ID {
			return trackererrors.NewValidationError("application.documents", "duplicate document id "+doc.ID)
		}
	}
	a.Documents = append(a.Documents, doc)
	a.touch()
	return nil
}

// AddInterview appends a validated interview with a unique id.
func (a *Application) AddInterview(interview Interview) error {
	if err := interview.Validate(); err != nil {
		return err
	}
	for i := range a.Interviews {
		if a.Interviews[i].ID == interview.ID {
			return trackererrors.NewValidationError("application.interviews", "duplicate interview id "+interview.ID)
		}
	}
	a.Interviews = append(a.Interviews, interview)
	a.touch()
	return nil
}

// AddFinancialAid appends a validated aid record with a unique id.
func (a *Application) AddFinancialAid(aid FinancialAid) error {
	if err := aid.Validate(); err != nil {
		return err
	}
	for i := range a.FinancialAid {
		if a.FinancialAid[i].ID == aid.ID {
			return trackererrors.NewValidationError("application.financialAid", "duplicate financial aid id "+aid.ID)
		}
	}
	a.FinancialAid = append(a.FinancialAid, aid)
	a.touch()
	return nil
}

// AddReminder appends a validated reminder with a unique id.
func (a *Application) AddReminder(reminder Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}
	for i := range a.Reminders {
		if a.Reminders[i].ID == reminder.ID {
			return trackererrors.NewValidationError("application.reminders", "duplicate reminder id "+reminder.ID)
		}
	}
	a.Reminders = append(a.Reminders, reminder)
	a.touch()
	return nil
}

// SetChecklistItem upserts one checklist entry.
func (a *Application) SetChecklistItem(key string, item ChecklistItem) error {
	if key == "" {
		return trackererrors.NewValidationError("application.checklist", "checklist key is required")
	}
	if a.Checklist == nil {
		a.Checklist = map[string]ChecklistItem{}
	}
	a.Checklist[key] = item
	a.touch()
	return nil
}

// SetNotes replaces the free-text notes.
func (a *Application) SetNotes(notes string) {
	a.Notes = notes
	a.touch()
}

// MarkFeePaid records payment of the application fee.
func (a *Application) MarkFeePaid(amount float64) error {
	if amount < 0 {
		return trackererrors.NewValidationError("application.applicationFeeAmount", "fee amount must be non-negative")
	}
	a.ApplicationFeePaid = true
	a.ApplicationFeeAmount = amount
	a.touch()
	return nil
}
