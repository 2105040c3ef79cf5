// Package filters selects and orders application collections. Every function
// is pure: inputs are never mutated and results are fresh slices.
package filters

import (
	"math"
	"sort"
	"strings"
	"time"

	"college-tracker/internal/models"
)

const (
	// StatusAll disables status/type filtering when supplied in Options.
	StatusAll = "all"

	// DefaultDaysAhead is the default horizon for UpcomingDeadlines.
	DefaultDaysAhead = 30
)

// DateRange is an inclusive deadline window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FeeRange is an inclusive application-fee window.
type FeeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Options describes one filter pass. Zero-valued axes are skipped; supplied
// axes compose with logical AND.
type Options struct {
	SearchTerm     string     `json:"searchTerm,omitempty"`
	Status         string     `json:"status,omitempty"`
	UniversityType string     `json:"universityType,omitempty"`
	DeadlineRange  *DateRange `json:"deadlineRange,omitempty"`
	FeeRange       *FeeRange  `json:"applicationFeeRange,omitempty"`
}

// SortKey names a comparator for Sort.
type SortKey string

const (
	SortByDeadline   SortKey = "deadline"
	SortByStatus     SortKey = "status"
	SortByUniversity SortKey = "university"
	SortByProgram    SortKey = "program"
	SortByFee        SortKey = "fee"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Filter returns the applications matching every supplied axis in opts,
// preserving input order.
func Filter(apps []models.Application, opts Options) []models.Application {
	filtered := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if matches(&app, &opts) {
			filtered = append(filtered, app)
		}
	}
	return filtered
}

func matches(app *models.Application, opts *Options) bool {
	if opts.SearchTerm != "" {
		term := strings.ToLower(opts.SearchTerm)
		if !strings.Contains(strings.ToLower(app.University.Name), term) &&
			!strings.Contains(strings.ToLower(app.Program.Name), term) &&
			!strings.Contains(strings.ToLower(app.University.Location), term) {
			return false
		}
	}

	if opts.Status != "" && opts.Status != StatusAll && string(app.Status) != opts.Status {
		return false
	}

	if opts.UniversityType != "" && opts.UniversityType != StatusAll &&
		string(app.University.Type) != opts.UniversityType {
		return false
	}

	if opts.DeadlineRange != nil {
		if app.Program.Deadline.Before(opts.DeadlineRange.Start) ||
			app.Program.Deadline.After(opts.DeadlineRange.End) {
			return false
		}
	}

	if opts.FeeRange != nil {
		if app.Program.ApplicationFee < opts.FeeRange.Min ||
			app.Program.ApplicationFee > opts.FeeRange.Max {
			return false
		}
	}

	return true
}

// Sort returns a new slice ordered by key. The sort is stable, so repeated
// sorts on unchanged data are idempotent.
func Sort(apps []models.Application, key SortKey, order SortOrder) []models.Application {
	sorted := make([]models.Application, len(apps))
	copy(sorted, apps)

	var less func(a, b *models.Application) bool
	switch key {
	case SortByDeadline:
		less = func(a, b *models.Application) bool {
			return a.Program.Deadline.Before(b.Program.Deadline)
		}
	case SortByStatus:
		less = func(a, b *models.Application) bool {
			return a.Status < b.Status
		}
	case SortByUniversity:
		less = func(a, b *models.Application) bool {
			return a.University.Name < b.University.Name
		}
	case SortByProgram:
		less = func(a, b *models.Application) bool {
			return a.Program.Name < b.Program.Name
		}
	case SortByFee:
		less = func(a, b *models.Application) bool {
			return a.Program.ApplicationFee < b.Program.ApplicationFee
		}
	default:
		return sorted
	}

	if order == Descending {
		asc := less
		less = func(a, b *models.Application) bool { return asc(b, a) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j])
	})
	return sorted
}

// UpcomingDeadlines returns pending or submitted applications whose program
// deadline falls within [now, now+daysAhead days], soonest first. Deadlines
// already in the past are excluded; analytics tracks those as overdue.
func UpcomingDeadlines(apps []models.Application, now time.Time, daysAhead int) []models.Application {
	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}
	cutoff := now.Add(time.Duration(daysAhead) * 24 * time.Hour)

	upcoming := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if app.Status != models.StatusPending && app.Status != models.StatusSubmitted {
			continue
		}
		if app.Program.Deadline.Before(now) || app.Program.Deadline.After(cutoff) {
			continue
		}
		upcoming = append(upcoming, app)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Program.Deadline.Before(upcoming[j].Program.Deadline)
	})
	return upcoming
}

// Stats is a quick per-status tally with deadline pressure counters.
type Stats struct {
	Total             int                   `json:"total"`
	ByStatus          map[models.Status]int `json:"byStatus"`
	UpcomingDeadlines int                   `json:"upcomingDeadlines"` // due within 7 days
	Overdue           int                   `json:"overdue"`
}

// GetStats tallies statuses and, for still-active applications, counts
// deadlines due within a week and deadlines already missed.
func GetStats(apps []models.Application, now time.Time) Stats {
	stats := Stats{
		Total:    len(apps),
		ByStatus: make(map[models.Status]int, len(models.AllStatuses)),
	}
	for _, s := range models.AllStatuses {
		stats.ByStatus[s] = 0
	}

	for _, app := range apps {
		stats.ByStatus[app.Status]++

		if app.Status != models.StatusPending && app.Status != models.StatusSubmitted {
			continue
		}
		daysUntil := int(math.Ceil(app.Program.Deadline.Sub(now).Hours() / 24))
		if daysUntil >= 0 && daysUntil <= 7 {
			stats.UpcomingDeadlines++
		}
		if daysUntil < 0 {
			stats.Overdue++
		}
	}
	return stats
}
