package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"college-tracker/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func makeApp(id, university, location string, uniType models.UniversityType, program string, status models.Status, deadline time.Time, fee float64) models.Application {
	return models.Application{
		ID: id,
		University: models.University{
			ID:       "uni-" + university,
			Name:     university,
			Location: location,
			Type:     uniType,
		},
		Program: models.Program{
			ID:             "prog-" + id,
			Name:           program,
			UniversityID:   "uni-" + university,
			Deadline:       deadline,
			ApplicationFee: fee,
			ProgramType:    models.ProgramUndergraduate,
		},
		Status:    status,
		CreatedAt: testNow.AddDate(0, -1, 0),
		UpdatedAt: testNow.AddDate(0, -1, 0),
	}
}

func testApps() []models.Application {
	return []models.Application{
		makeApp("a1", "State University", "Springfield", models.UniversityPublic,
			"Computer Science", models.StatusPending, testNow.AddDate(0, 0, 10), 75),
		makeApp("a2", "Tech Institute", "Boston", models.UniversityPrivate,
			"Electrical Engineering", models.StatusSubmitted, testNow.AddDate(0, 0, 5), 90),
		makeApp("a3", "State University", "Springfield", models.UniversityPublic,
			"Mathematics", models.StatusAccepted, testNow.AddDate(0, 0, 40), 60),
		makeApp("a4", "Coastal College", "San Diego", models.UniversityPrivate,
			"Marine Biology", models.StatusRejected, testNow.AddDate(0, 0, -3), 120),
	}
}

func ids(apps []models.Application) []string {
	out := make([]string, len(apps))
	for i, app := range apps {
		out[i] = app.ID
	}
	return out
}

// ==========================
// Filter Tests
// ==========================

func TestFilter_SearchTerm(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{"university name match", "state", []string{"a1", "a3"}},
		{"program name match", "engineering", []string{"a2"}},
		{"location match", "san diego", []string{"a4"}},
		{"case insensitive", "TECH", []string{"a2"}},
		{"no match", "oxford", []string{}},
		{"empty term matches all", "", []string{"a1", "a2", "a3", "a4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testApps(), Options{SearchTerm: tt.term})
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestFilter_StatusAndType(t *testing.T) {
	apps := testApps()

	got := Filter(apps, Options{Status: "pending"})
	assert.Equal(t, []string{"a1"}, ids(got))

	got = Filter(apps, Options{Status: StatusAll})
	assert.Len(t, got, 4)

	got = Filter(apps, Options{UniversityType: "private"})
	assert.Equal(t, []string{"a2", "a4"}, ids(got))

	got = Filter(apps, Options{UniversityType: StatusAll})
	assert.Len(t, got, 4)
}

func TestFilter_Ranges(t *testing.T) {
	apps := testApps()

	got := Filter(apps, Options{DeadlineRange: &DateRange{
		Start: testNow,
		End:   testNow.AddDate(0, 0, 15),
	}})
	assert.Equal(t, []string{"a1", "a2"}, ids(got))

	// Range bounds are inclusive.
	got = Filter(apps, Options{FeeRange: &FeeRange{Min: 75, Max: 90}})
	assert.Equal(t, []string{"a1", "a2"}, ids(got))
}

func TestFilter_PredicatesComposeWithAND(t *testing.T) {
	got := Filter(testApps(), Options{
		SearchTerm:     "state",
		Status:         "pending",
		UniversityType: "public",
	})
	assert.Equal(t, []string{"a1"}, ids(got))
}

func TestFilter_Idempotent(t *testing.T) {
	opts := Options{UniversityType: "public", FeeRange: &FeeRange{Min: 0, Max: 100}}
	once := Filter(testApps(), opts)
	twice := Filter(once, opts)
	assert.Equal(t, once, twice)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	apps := testApps()
	before := ids(apps)
	Filter(apps, Options{Status: "pending"})
	assert.Equal(t, before, ids(apps))
}

// ==========================
// Sort Tests
// ==========================

func TestSort_Keys(t *testing.T) {
	apps := testApps()

	tests := []struct {
		name     string
		key      SortKey
		order    SortOrder
		expected []string
	}{
		{"deadline asc", SortByDeadline, Ascending, []string{"a4", "a2", "a1", "a3"}},
		{"deadline desc", SortByDeadline, Descending, []string{"a3", "a1", "a2", "a4"}},
		{"fee asc", SortByFee, Ascending, []string{"a3", "a1", "a2", "a4"}},
		{"university asc", SortByUniversity, Ascending, []string{"a4", "a1", "a3", "a2"}},
		{"program asc", SortByProgram, Ascending, []string{"a1", "a2", "a4", "a3"}},
		{"status asc", SortByStatus, Ascending, []string{"a3", "a1", "a4", "a2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(apps, tt.key, tt.order)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestSort_Stable(t *testing.T) {
	apps := testApps()
	// a1 and a3 share a university name; ties keep input order.
	got := Sort(apps, SortByUniversity, Ascending)
	assert.Equal(t, []string{"a4", "a1", "a3", "a2"}, ids(got))

	// Sorting twice yields identical output.
	again := Sort(got, SortByUniversity, Ascending)
	assert.Equal(t, ids(got), ids(again))
}

func TestSort_DescendingReversesWithoutTies(t *testing.T) {
	apps := testApps()
	asc := Sort(apps, SortByDeadline, Ascending)
	desc := Sort(apps, SortByDeadline, Descending)

	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	apps := testApps()
	before := ids(apps)
	Sort(apps, SortByFee, Descending)
	assert.Equal(t, before, ids(apps))
}

// ==========================
// Upcoming Deadline Tests
// ==========================

func TestUpcomingDeadlines(t *testing.T) {
	apps := testApps()
	got := UpcomingDeadlines(apps, testNow, 30)

	// a3 is accepted, a4 is rejected and overdue; only active ones remain,
	// soonest first.
	assert.Equal(t, []string{"a2", "a1"}, ids(got))
}

func TestUpcomingDeadlines_ExcludesBeyondHorizon(t *testing.T) {
	apps := []models.Application{
		makeApp("far", "State University", "Springfield", models.UniversityPublic,
			"CS", models.StatusPending, testNow.AddDate(0, 0, 45), 50),
	}
	assert.Empty(t, UpcomingDeadlines(apps, testNow, 30))
}

func TestUpcomingDeadlines_ExcludesPastDeadlines(t *testing.T) {
	apps := []models.Application{
		makeApp("late", "State University", "Springfield", models.UniversityPublic,
			"CS", models.StatusPending, testNow.AddDate(0, 0, -1), 50),
	}
	assert.Empty(t, UpcomingDeadlines(apps, testNow, 30))
}

func TestUpcomingDeadlines_ExcludesInactiveStatuses(t *testing.T) {
	for _, status := range []models.Status{
		models.StatusUnderReview, models.StatusAccepted, models.StatusRejected,
		models.StatusWaitlisted, models.StatusDpwas, models.StatusWaitlist,
	} {
		apps := []models.Application{
			makeApp("x", "State University", "Springfield", models.UniversityPublic,
				"CS", status, testNow.AddDate(0, 0, 5), 50),
		}
		assert.Empty(t, UpcomingDeadlines(apps, testNow, 30), "status %s", status)
	}
}

// ==========================
// Stats Tests
// ==========================

func TestGetStats(t *testing.T) {
	stats := GetStats(testApps(), testNow)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[models.StatusPending])
	assert.Equal(t, 1, stats.ByStatus[models.StatusSubmitted])
	assert.Equal(t, 1, stats.ByStatus[models.StatusAccepted])
	assert.Equal(t, 1, stats.ByStatus[models.StatusRejected])
	assert.Equal(t, 0, stats.ByStatus[models.StatusWaitlist])

	// a2 is due in 5 days; a4 is overdue but rejected, so not counted.
	assert.Equal(t, 1, stats.UpcomingDeadlines)
	assert.Equal(t, 0, stats.Overdue)
}

func TestGetStats_CountsOverdueActiveApplications(t *testing.T) {
	apps := []models.Application{
		makeApp("o1", "State University", "Springfield", models.UniversityPublic,
			"CS", models.StatusPending, testNow.AddDate(0, 0, -2), 50),
	}
	stats := GetStats(apps, testNow)
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 0, stats.UpcomingDeadlines)
}
