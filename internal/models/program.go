package models

import (
	"time"

	trackererrors "college-tracker/internal/common/errors"
)

type Program struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	UniversityID   string      `json:"universityId"`
	Requirements   []string    `json:"requirements"`
	Deadline       time.Time   `json:"deadline"`
	EarlyDeadline  *time.Time  `json:"earlyDeadline,omitempty"`
	ApplicationFee float64     `json:"applicationFee"`
	ProgramType    ProgramType `json:"programType"`
	Duration       string      `json:"duration,omitempty"`
	Description    *string     `json:"description,omitempty"`
	AcceptanceRate *float64    `json:"acceptanceRate,omitempty"`
	AverageSAT     *int        `json:"averageSAT,omitempty"`
	AverageACT     *int        `json:"averageACT,omitempty"`
}

// Validate checks the Program invariants.
func (p *Program) Validate() error {
	if p.ID == "" {
		return trackererrors.NewValidationError("program.id", "id is required")
	}
	if p.Name == "" {
		return trackererrors.NewValidationError("program.name", "name is required")
	}
	if p.UniversityID == "" {
		return trackererrors.NewValidationError("program.universityId", "owning university id is required")
	}
	if p.Deadline.IsZero() {
		return trackererrors.NewValidationError("program.deadline", "deadline is required")
	}
	if p.EarlyDeadline != nil && p.EarlyDeadline.After(p.Deadline) {
		return trackererrors.NewValidationError("program.earlyDeadline", "early deadline must not be after the regular deadline")
	}
	if p.ApplicationFee < 0 {
		return trackererrors.NewValidationError("program.applicationFee", "application fee must be non-negative")
	}
	if !p.ProgramType.IsValid() {
		return trackererrors.NewValidationError("program.programType", "program type must be undergraduate, graduate or phd")
	}
	return nil
}
