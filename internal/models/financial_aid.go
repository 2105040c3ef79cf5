package models

import (
	"time"

	trackererrors "college-tracker/internal/common/errors"
)

type AidType string

const (
	AidScholarship AidType = "scholarship"
	AidGrant       AidType = "grant"
	AidLoan        AidType = "loan"
	AidWorkStudy   AidType = "work-study"
)

func (t AidType) IsValid() bool {
	return t == AidScholarship || t == AidGrant || t == AidLoan || t == AidWorkStudy
}

type AidStatus string

const (
	AidNotApplied AidStatus = "not-applied"
	AidApplied    AidStatus = "applied"
	AidPending    AidStatus = "pending"
	AidApproved   AidStatus = "approved"
	AidRejected   AidStatus = "rejected"
)

func (s AidStatus) IsValid() bool {
	switch s {
	case AidNotApplied, AidApplied, AidPending, AidApproved, AidRejected:
		return true
	}
	return false
}

type FinancialAid struct {
	ID           string     `json:"id"`
	Type         AidType    `json:"type"`
	Name         string     `json:"name"`
	Amount       *float64   `json:"amount,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       AidStatus  `json:"status"`
	Requirements []string   `json:"requirements"`
	Documents    []Document `json:"documents"`
}

// AmountOrZero treats a missing amount as 0 for aggregate statistics.
func (f *FinancialAid) AmountOrZero() float64 {
	if f.Amount == nil {
		return 0
	}
	return *f.Amount
}

// Validate checks the FinancialAid invariants.
func (f *FinancialAid) Validate() error {
	if f.ID == "" {
		return trackererrors.NewValidationError("financialAid.id", "id is required")
	}
	if !f.Type.IsValid() {
		return trackererrors.NewValidationError("financialAid.type", "unknown aid type")
	}
	if f.Name == "" {
		return trackererrors.NewValidationError("financialAid.name", "name is required")
	}
	if f.Amount != nil && *f.Amount < 0 {
		return trackererrors.NewValidationError("financialAid.amount", "amount must be non-negative")
	}
	if !f.Status.IsValid() {
		return trackererrors.NewValidationError("financialAid.status", "unknown aid status")
	}
	for i := range f.Documents {
		if err := f.Documents[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
