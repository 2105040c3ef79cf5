package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"college-tracker/internal/common/config"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/models"
)

// ==========================
// Fake AWS Services
// ==========================

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

// ==========================
// Test Helper Functions
// ==========================

func testConfig() config.NotificationConfig {
	cfg := config.NotificationConfig{
		EmailEnabled: true,
		PushEnabled:  true,
		ReminderDays: []int{7, 3, 1},
		QuietHours:   config.QuietHoursConfig{Start: "22:00", End: "08:00"},
	}
	cfg.AWS.Region = "us-east-1"
	cfg.AWS.SES.FromEmail = "noreply@tracker.test"
	cfg.AWS.SES.ToEmail = "applicant@tracker.test"
	cfg.AWS.SNS.TopicARN = "arn:aws:sns:us-east-1:000000000000:reminders"
	return cfg
}

func setupNotifier(t *testing.T, cfg config.NotificationConfig) (*Notifier, *fakeSES, *fakeSNS) {
	sesSvc := &fakeSES{}
	snsSvc := &fakeSNS{}
	n := New(cfg, sesSvc, snsSvc, logger.Nop())
	return n, sesSvc, snsSvc
}

func at(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 1, hour, minute, 0, 0, time.UTC)
	}
}

func testReminder(id string) models.Reminder {
	return models.Reminder{
		ID:      id,
		Type:    models.ReminderDeadline,
		Date:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Message: "Application deadline is approaching",
	}
}

// ==========================
// Delivery Tests
// ==========================

func TestScheduleReminder_DeliversOnBothChannels(t *testing.T) {
	n, sesSvc, snsSvc := setupNotifier(t, testConfig())
	n.now = at(12, 0)

	n.ScheduleReminder(context.Background(), testReminder("r1"))

	require.Len(t, sesSvc.inputs, 1)
	require.Len(t, snsSvc.inputs, 1)
	assert.Equal(t, 0, n.PendingCount())

	email := sesSvc.inputs[0]
	assert.Equal(t, "noreply@tracker.test", *email.Source)
	assert.Equal(t, []string{"applicant@tracker.test"}, email.Destination.ToAddresses)
	assert.Equal(t, "Deadline Reminder", *email.Message.Subject.Data)
	assert.Equal(t, "Application deadline is approaching", *email.Message.Body.Text.Data)

	push := snsSvc.inputs[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:reminders", *push.TopicArn)
	assert.Equal(t, "Deadline Reminder", *push.Subject)
}

func TestScheduleReminder_TitlePerReminderType(t *testing.T) {
	tests := []struct {
		reminderType models.ReminderType
		expected     string
	}{
		{models.ReminderDeadline, "Deadline Reminder"},
		{models.ReminderDocument, "Document Required"},
		{models.ReminderInterview, "Interview Scheduled"},
		{models.ReminderResult, "Result Available"},
		{models.ReminderFinancialAid, "Financial Aid Update"},
	}

	for _, tt := range tests {
		t.Run(string(tt.reminderType), func(t *testing.T) {
			n, sesSvc, _ := setupNotifier(t, testConfig())
			n.now = at(12, 0)

			r := testReminder("r1")
			r.Type = tt.reminderType
			n.ScheduleReminder(context.Background(), r)

			require.Len(t, sesSvc.inputs, 1)
			assert.Equal(t, tt.expected, *sesSvc.inputs[0].Message.Subject.Data)
		})
	}
}

func TestScheduleReminder_RespectsChannelToggles(t *testing.T) {
	cfg := testConfig()
	cfg.PushEnabled = false
	n, sesSvc, snsSvc := setupNotifier(t, cfg)
	n.now = at(12, 0)

	n.ScheduleReminder(context.Background(), testReminder("r1"))

	assert.Len(t, sesSvc.inputs, 1)
	assert.Empty(t, snsSvc.inputs)
}

func TestScheduleReminder_FailureOnOneChannelDoesNotBlockOther(t *testing.T) {
	n, sesSvc, snsSvc := setupNotifier(t, testConfig())
	n.now = at(12, 0)
	sesSvc.err = errors.New("ses throttled")

	n.ScheduleReminder(context.Background(), testReminder("r1"))

	// The email attempt was made and failed, push still went out.
	assert.Len(t, sesSvc.inputs, 1)
	assert.Len(t, snsSvc.inputs, 1)
}

// ==========================
// Quiet Hours Tests
// ==========================

func TestScheduleReminder_DefersDuringQuietHours(t *testing.T) {
	n, sesSvc, snsSvc := setupNotifier(t, testConfig())
	n.now = at(23, 30)

	n.ScheduleReminder(context.Background(), testReminder("r1"))
	n.ScheduleReminder(context.Background(), testReminder("r2"))

	assert.Empty(t, sesSvc.inputs)
	assert.Empty(t, snsSvc.inputs)
	assert.Equal(t, 2, n.PendingCount())
}

func TestInQuietHours_WindowWrapsMidnight(t *testing.T) {
	n, _, _ := setupNotifier(t, testConfig())

	tests := []struct {
		name   string
		hour   int
		minute int
		quiet  bool
	}{
		{"just after start", 22, 0, true},
		{"before midnight", 23, 59, true},
		{"after midnight", 2, 15, true},
		{"just before end", 7, 59, true},
		{"at end", 8, 0, false},
		{"midday", 13, 0, false},
		{"just before start", 21, 59, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.quiet, n.inQuietHours(time.Date(2026, 3, 1, tt.hour, tt.minute, 0, 0, time.UTC)))
		})
	}
}

func TestInQuietHours_NonWrappingWindow(t *testing.T) {
	cfg := testConfig()
	cfg.QuietHours = config.QuietHoursConfig{Start: "12:00", End: "14:00"}
	n, _, _ := setupNotifier(t, cfg)

	assert.True(t, n.inQuietHours(time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)))
	assert.False(t, n.inQuietHours(time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)))
	assert.False(t, n.inQuietHours(time.Date(2026, 3, 1, 11, 59, 0, 0, time.UTC)))
}

func TestInQuietHours_MalformedWindowDisablesDeferral(t *testing.T) {
	cfg := testConfig()
	cfg.QuietHours = config.QuietHoursConfig{Start: "banana", End: "08:00"}
	n, _, _ := setupNotifier(t, cfg)

	assert.False(t, n.inQuietHours(time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)))
}

// ==========================
// Flush Tests
// ==========================

func TestFlush_DrainsDeferredQueue(t *testing.T) {
	n, sesSvc, _ := setupNotifier(t, testConfig())
	n.now = at(23, 30)

	n.ScheduleReminder(context.Background(), testReminder("r1"))
	n.ScheduleReminder(context.Background(), testReminder("r2"))
	require.Equal(t, 2, n.PendingCount())

	// Morning arrives.
	n.now = at(9, 0)
	delivered := n.Flush(context.Background())

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 0, n.PendingCount())
	assert.Len(t, sesSvc.inputs, 2)
}

func TestFlush_NoOpDuringQuietHours(t *testing.T) {
	n, sesSvc, _ := setupNotifier(t, testConfig())
	n.now = at(23, 30)

	n.ScheduleReminder(context.Background(), testReminder("r1"))
	delivered := n.Flush(context.Background())

	assert.Equal(t, 0, delivered)
	assert.Equal(t, 1, n.PendingCount())
	assert.Empty(t, sesSvc.inputs)
}

func TestFlush_EmptyQueue(t *testing.T) {
	n, _, _ := setupNotifier(t, testConfig())
	n.now = at(9, 0)

	assert.Equal(t, 0, n.Flush(context.Background()))
}
