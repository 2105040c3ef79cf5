package models

import trackererrors "college-tracker/internal/common/errors"

// Ranking holds optional national/international rank positions.
type Ranking struct {
	National      *int `json:"national,omitempty"`
	International *int `json:"international,omitempty"`
}

type University struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Location        string         `json:"location"`
	Type            UniversityType `json:"type"`
	Logo            *string        `json:"logo,omitempty"`
	Website         *string        `json:"website,omitempty"`
	PhotoURL        *string        `json:"photoUrl,omitempty"`
	ContactEmail    *string        `json:"contactEmail,omitempty"`
	ContactPhone    *string        `json:"contactPhone,omitempty"`
	AdmissionOffice *string        `json:"admissionOffice,omitempty"`
	Ranking         *Ranking       `json:"ranking,omitempty"`
}

// Validate checks the University invariants.
func (u *University) Validate() error {
	if u.ID == "" {
		return trackererrors.NewValidationError("university.id", "id is required")
	}
	if u.Name == "" {
		return trackererrors.NewValidationError("university.name", "name is required")
	}
	if !u.Type.IsValid() {
		return trackererrors.NewValidationError("university.type", "type must be public or private")
	}
	return nil
}
