package models

import (
	"time"

	trackererrors "college-tracker/internal/common/errors"
)

type DocumentType string

const (
	DocumentTranscript     DocumentType = "transcript"
	DocumentRecommendation DocumentType = "recommendation"
	DocumentEssay          DocumentType = "essay"
	DocumentTestScore      DocumentType = "test-score"
	DocumentPortfolio      DocumentType = "portfolio"
	DocumentCertificate    DocumentType = "certificate"
	DocumentOther          DocumentType = "other"
)

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTranscript, DocumentRecommendation, DocumentEssay,
		DocumentTestScore, DocumentPortfolio, DocumentCertificate, DocumentOther:
		return true
	}
	return false
}

type DocumentStatus string

const (
	DocumentPending   DocumentStatus = "pending"
	DocumentUploaded  DocumentStatus = "uploaded"
	DocumentSubmitted DocumentStatus = "submitted"
	DocumentVerified  DocumentStatus = "verified"
	DocumentExpired   DocumentStatus = "expired"
)

// documentStatusRank orders the monotonic part of the document lifecycle.
// "expired" sits outside the ordering and is reachable from any status.
var documentStatusRank = map[DocumentStatus]int{
	DocumentPending:   0,
	DocumentUploaded:  1,
	DocumentSubmitted: 2,
	DocumentVerified:  3,
}

func (s DocumentStatus) IsValid() bool {
	if s == DocumentExpired {
		return true
	}
	_, ok := documentStatusRank[s]
	return ok
}

// IsComplete reports whether the document counts toward completion metrics.
func (s DocumentStatus) IsComplete() bool {
	return s == DocumentSubmitted || s == DocumentVerified
}

type Document struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Type           DocumentType   `json:"type"`
	Status         DocumentStatus `json:"status"`
	FileURL        *string        `json:"fileUrl,omitempty"`
	FileName       *string        `json:"fileName,omitempty"`
	UploadDate     *time.Time     `json:"uploadDate,omitempty"`
	ExpirationDate *time.Time     `json:"expirationDate,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
}

// Validate checks the Document invariants.
func (d *Document) Validate() error {
	if d.ID == "" {
		return trackererrors.NewValidationError("document.id", "id is required")
	}
	if d.Name == "" {
		return trackererrors.NewValidationError("document.name", "name is required")
	}
	if !d.Type.IsValid() {
		return trackererrors.NewValidationError("document.type", "unknown document type")
	}
	if !d.Status.IsValid() {
		return trackererrors.NewValidationError("document.status", "unknown document status")
	}
	return nil
}

// AdvanceStatus moves the document to next, enforcing forward-only movement
// through pending, uploaded, submitted, verified. Expiry is always allowed.
func (d *Document) AdvanceStatus(next DocumentStatus) error {
	if !next.IsValid() {
		return trackererrors.NewValidationError("document.status", "unknown document status")
	}
	if next == DocumentExpired {
		d.Status = DocumentExpired
		return nil
	}
	if d.Status == DocumentExpired {
		return trackererrors.NewValidationError("document.status", "expired documents cannot re-enter the lifecycle")
	}
	if documentStatusRank[next] < documentStatusRank[d.Status] {
		return trackererrors.NewValidationError("document.status", "document status cannot move backwards")
	}
	d.Status = next
	return nil
}

// ExpireIfDue marks the document expired once its expiration date has passed.
// Returns true when the status changed.
func (d *Document) ExpireIfDue(now time.Time) bool {
	if d.ExpirationDate == nil || d.Status == DocumentExpired {
		return false
	}
	if d.ExpirationDate.After(now) {
		return false
	}
	d.Status = DocumentExpired
	return true
}
