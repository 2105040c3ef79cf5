// Package analytics derives aggregate statistics from application
// collections. Functions are pure and total: well-formed input never produces
// an error, and every rate returns 0 on an empty denominator because the UI
// renders these numbers directly.
package analytics

import (
	"math"
	"sort"
	"time"

	"college-tracker/internal/models"
)

// TopUniversitiesLimit caps the most-applied list.
const TopUniversitiesLimit = 5

// TopAidProgramsLimit caps the highest-amount approved aid list.
const TopAidProgramsLimit = 5

// StatusCounts tallies applications per status, zero-filling every known
// status so the distribution always covers the full set.
func StatusCounts(apps []models.Application) map[models.Status]int {
	counts := make(map[models.Status]int, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		counts[s] = 0
	}
	for _, app := range apps {
		counts[app.Status]++
	}
	return counts
}

// SuccessRate is the percentage of accepted applications.
func SuccessRate(apps []models.Application) float64 {
	if len(apps) == 0 {
		return 0
	}
	accepted := 0
	for _, app := range apps {
		if app.Status == models.StatusAccepted {
			accepted++
		}
	}
	return float64(accepted) / float64(len(apps)) * 100
}

// AverageProcessingTime is the mean number of days from creation to
// submission over decided applications (accepted, rejected or waitlisted)
// that carry both dates. Per-application days round up; the mean rounds to
// the nearest whole day.
func AverageProcessingTime(apps []models.Application) int {
	totalDays := 0
	counted := 0
	for _, app := range apps {
		if !app.Status.IsDecided() {
			continue
		}
		if app.SubmittedDate == nil || app.CreatedAt.IsZero() {
			continue
		}
		totalDays += int(math.Ceil(app.SubmittedDate.Sub(app.CreatedAt).Hours() / 24))
		counted++
	}
	if counted == 0 {
		return 0
	}
	return int(math.Round(float64(totalDays) / float64(counted)))
}

// DeadlineProximity buckets every application by raw distance from now to its
// program deadline: urgent under 7 days (overdue included), soon between 7
// and 30, later beyond 30. Unlike the upcoming-deadline filter this is not
// status-filtered; each application lands in exactly one bucket.
type DeadlineProximity struct {
	Urgent int `json:"urgent"`
	Soon   int `json:"soon"`
	Later  int `json:"later"`
}

// Proximity computes the deadline proximity buckets relative to now.
func Proximity(apps []models.Application, now time.Time) DeadlineProximity {
	var p DeadlineProximity
	for _, app := range apps {
		daysLeft := app.Program.Deadline.Sub(now).Hours() / 24
		switch {
		case daysLeft < 7:
			p.Urgent++
		case daysLeft <= 30:
			p.Soon++
		default:
			p.Later++
		}
	}
	return p
}

// UniversityCount pairs a university name with its application count.
type UniversityCount struct {
	University string `json:"university"`
	Count      int    `json:"count"`
}

// TopUniversities groups applications by university name and returns the n
// most applied-to, ties resolved by first-encounter order.
func TopUniversities(apps []models.Application, n int) []UniversityCount {
	if n <= 0 {
		n = TopUniversitiesLimit
	}

	counts := map[string]int{}
	order := []string{}
	for _, app := range apps {
		if _, seen := counts[app.University.Name]; !seen {
			order = append(order, app.University.Name)
		}
		counts[app.University.Name]++
	}

	result := make([]UniversityCount, 0, len(order))
	for _, name := range order {
		result = append(result, UniversityCount{University: name, Count: counts[name]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}

// AcceptanceProbability is the empirical acceptance frequency among
// applications to the same university. It is not a predictive model; callers
// must not treat it as calibrated.
func AcceptanceProbability(app models.Application, all []models.Application) float64 {
	total := 0
	accepted := 0
	for _, other := range all {
		if other.University.ID != app.University.ID {
			continue
		}
		total++
		if other.Status == models.StatusAccepted {
			accepted++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(accepted) / float64(total) * 100
}

// DocumentCompletionRate is the percentage of documents, across every
// application, that are submitted or verified.
func DocumentCompletionRate(apps []models.Application) float64 {
	total := 0
	completed := 0
	for _, app := range apps {
		for _, doc := range app.Documents {
			total++
			if doc.Status.IsComplete() {
				completed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// AidProgram names one approved aid record and its amount.
type AidProgram struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// FinancialAidStats aggregates every embedded aid record.
type FinancialAidStats struct {
	TotalApplied          int          `json:"totalApplied"`
	TotalApproved         int          `json:"totalApproved"`
	AverageApprovedAmount float64      `json:"averageApprovedAmount"`
	TopPrograms           []AidProgram `json:"topPrograms"`
}

// FinancialAidStatistics sums aid records across all applications. The
// average covers approved records only, treating a missing amount as 0; the
// top list holds the five highest-amount approved records, ties in original
// order.
func FinancialAidStatistics(apps []models.Application) FinancialAidStats {
	stats := FinancialAidStats{TopPrograms: []AidProgram{}}

	approved := []AidProgram{}
	totalAmount := 0.0
	for _, app := range apps {
		for i := range app.FinancialAid {
			aid := &app.FinancialAid[i]
			stats.TotalApplied++
			if aid.Status != models.AidApproved {
				continue
			}
			stats.TotalApproved++
			totalAmount += aid.AmountOrZero()
			approved = append(approved, AidProgram{Name: aid.Name, Amount: aid.AmountOrZero()})
		}
	}

	if stats.TotalApproved > 0 {
		stats.AverageApprovedAmount = totalAmount / float64(stats.TotalApproved)
	}

	sort.SliceStable(approved, func(i, j int) bool {
		return approved[i].Amount > approved[j].Amount
	})
	if len(approved) > TopAidProgramsLimit {
		approved = approved[:TopAidProgramsLimit]
	}
	stats.TopPrograms = approved
	return stats
}

// TimelineStats summarizes submission and decision pace.
type TimelineStats struct {
	AverageDaysToSubmit   int `json:"averageDaysToSubmit"`
	AverageDaysToDecision int `json:"averageDaysToDecision"`
}

// TimelineAnalysis averages creation-to-submission days over submitted
// applications and submission-to-last-update days over accepted/rejected
// ones.
func TimelineAnalysis(apps []models.Application) TimelineStats {
	submitDays, submitCount := 0, 0
	decisionDays, decisionCount := 0, 0

	for _, app := range apps {
		if app.SubmittedDate != nil && !app.CreatedAt.IsZero() {
			submitDays += int(math.Ceil(app.SubmittedDate.Sub(app.CreatedAt).Hours() / 24))
			submitCount++
		}
		if (app.Status == models.StatusAccepted || app.Status == models.StatusRejected) &&
			app.SubmittedDate != nil && !app.UpdatedAt.IsZero() {
			decisionDays += int(math.Ceil(app.UpdatedAt.Sub(*app.SubmittedDate).Hours() / 24))
			decisionCount++
		}
	}

	var stats TimelineStats
	if submitCount > 0 {
		stats.AverageDaysToSubmit = int(math.Round(float64(submitDays) / float64(submitCount)))
	}
	if decisionCount > 0 {
		stats.AverageDaysToDecision = int(math.Round(float64(decisionDays) / float64(decisionCount)))
	}
	return stats
}

// Report is the combined analytics view the UI renders in one pass.
type Report struct {
	SuccessRate           float64               `json:"successRate"`
	AverageProcessingTime int                   `json:"averageProcessingTime"`
	MostApplied           []UniversityCount     `json:"mostAppliedUniversities"`
	StatusDistribution    map[models.Status]int `json:"statusDistribution"`
	DeadlineProximity     DeadlineProximity     `json:"deadlineProximity"`
}

// Comprehensive assembles the full report relative to now.
func Comprehensive(apps []models.Application, now time.Time) Report {
	return Report{
		SuccessRate:           SuccessRate(apps),
		AverageProcessingTime: AverageProcessingTime(apps),
		MostApplied:           TopUniversities(apps, TopUniversitiesLimit),
		StatusDistribution:    StatusCounts(apps),
		DeadlineProximity:     Proximity(apps, now),
	}
}
