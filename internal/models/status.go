package models

// Status is the lifecycle state of an Application.
//
// The set deliberately preserves the three opaque values "waitlisted",
// "waitlist" and "dpwas" as distinct states: the upstream data uses all three
// without a documented distinction, and merging them would change counts in
// historical exports.
type Status string

const (
	StatusPending     Status = "pending"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under-review"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusWaitlisted  Status = "waitlisted"
	StatusDpwas       Status = "dpwas"
	StatusWaitlist    Status = "waitlist"
)

// AllStatuses lists every status in canonical order. Analytics rely on this
// to zero-fill distributions.
var AllStatuses = []Status{
	StatusPending,
	StatusSubmitted,
	StatusUnderReview,
	StatusAccepted,
	StatusRejected,
	StatusWaitlisted,
	StatusDpwas,
	StatusWaitlist,
}

func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsDecided reports whether the application has reached a terminal decision
// for processing-time purposes.
func (s Status) IsDecided() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWaitlisted
}

// UniversityType distinguishes public and private institutions.
type UniversityType string

const (
	UniversityPublic  UniversityType = "public"
	UniversityPrivate UniversityType = "private"
)

func (t UniversityType) IsValid() bool {
	return t == UniversityPublic || t == UniversityPrivate
}

// ProgramType is the degree level of a Program.
type ProgramType string

const (
	ProgramUndergraduate ProgramType = "undergraduate"
	ProgramGraduate      ProgramType = "graduate"
	ProgramPhD           ProgramType = "phd"
)

func (t ProgramType) IsValid() bool {
	return t == ProgramUndergraduate || t == ProgramGraduate || t == ProgramPhD
}

// Priority is the application track.
type Priority string

const (
	PriorityRegular Priority = "regular"
	PriorityEarly   Priority = "early"
	PriorityHigh    Priority = "priority"
	PriorityRolling Priority = "rolling"
)

func (p Priority) IsValid() bool {
	return p == PriorityRegular || p == PriorityEarly || p == PriorityHigh || p == PriorityRolling
}
