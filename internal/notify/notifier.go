// Package notify delivers reminders over email (SES) and push (SNS).
// Delivery failures are logged and counted, never returned into the data
// path.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"college-tracker/internal/common/config"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/common/metrics"
	"college-tracker/internal/models"
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var reminderTitles = map[models.ReminderType]string{
	models.ReminderDeadline:     "Deadline Reminder",
	models.ReminderDocument:     "Document Required",
	models.ReminderInterview:    "Interview Scheduled",
	models.ReminderResult:       "Result Available",
	models.ReminderFinancialAid: "Financial Aid Update",
}

// Notifier delivers reminders through the configured channels, deferring
// anything that falls inside the quiet-hours window.
type Notifier struct {
	cfg    config.NotificationConfig
	ses    SESService
	sns    SNSService
	logger logger.Logger

	// now is swapped in tests to pin the quiet-hours clock.
	now func() time.Time

	mu       sync.Mutex
	deferred []models.Reminder
}

func New(cfg config.NotificationConfig, sesClient SESService, snsClient SNSService, log logger.Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		ses:    sesClient,
		sns:    snsClient,
		logger: log.WithFields(map[string]interface{}{"component": "notifier"}),
		now:    time.Now,
	}
}

// ScheduleReminder delivers the reminder now, or queues it when the current
// time falls inside quiet hours. It never returns an error; failures are
// logged per channel.
func (n *Notifier) ScheduleReminder(ctx context.Context, reminder models.Reminder) {
	if n.inQuietHours(n.now()) {
		n.mu.Lock()
		n.deferred = append(n.deferred, reminder)
		n.mu.Unlock()
		metrics.NotificationsDeferred.Inc()
		n.logger.Info("reminder deferred for quiet hours", map[string]interface{}{
			"reminderId": reminder.ID,
			"type":       reminder.Type,
		})
		return
	}
	n.deliver(ctx, reminder)
}

// Flush delivers everything deferred during quiet hours. A no-op while quiet
// hours are still in effect. Returns the number delivered.
func (n *Notifier) Flush(ctx context.Context) int {
	if n.inQuietHours(n.now()) {
		return 0
	}

	n.mu.Lock()
	pending := n.deferred
	n.deferred = nil
	n.mu.Unlock()

	for _, reminder := range pending {
		n.deliver(ctx, reminder)
	}
	return len(pending)
}

// PendingCount reports the size of the deferred queue.
func (n *Notifier) PendingCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.deferred)
}

func (n *Notifier) deliver(ctx context.Context, reminder models.Reminder) {
	title, ok := reminderTitles[reminder.Type]
	if !ok {
		title = "Application Reminder"
	}

	if n.cfg.EmailEnabled && n.ses != nil {
		if err := n.sendEmail(ctx, title, reminder.Message); err != nil {
			metrics.NotificationsFailed.WithLabelValues("email").Inc()
			n.logger.WithError(err).Error("email delivery failed", map[string]interface{}{
				"reminderId": reminder.ID,
			})
		} else {
			metrics.NotificationsSent.WithLabelValues("email").Inc()
		}
	}

	if n.cfg.PushEnabled && n.sns != nil {
		if err := n.sendPush(ctx, title, reminder.Message); err != nil {
			metrics.NotificationsFailed.WithLabelValues("push").Inc()
			n.logger.WithError(err).Error("push delivery failed", map[string]interface{}{
				"reminderId": reminder.ID,
			})
		} else {
			metrics.NotificationsSent.WithLabelValues("push").Inc()
		}
	}
}

func (n *Notifier) sendEmail(ctx context.Context, subject, body string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(n.cfg.AWS.SES.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.cfg.AWS.SES.ToEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	}
	_, err := n.ses.SendEmail(ctx, input)
	return err
}

func (n *Notifier) sendPush(ctx context.Context, title, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(n.cfg.AWS.SNS.TopicARN),
		Subject:  aws.String(title),
		Message:  aws.String(message),
	}
	_, err := n.sns.Publish(ctx, input)
	return err
}

// inQuietHours checks t against the configured window. The window may wrap
// midnight, e.g. 22:00-08:00.
func (n *Notifier) inQuietHours(t time.Time) bool {
	start, err1 := parseClock(n.cfg.QuietHours.Start)
	end, err2 := parseClock(n.cfg.QuietHours.End)
	if err1 != nil || err2 != nil || start == end {
		return false
	}

	minutes := t.Hour()*60 + t.Minute()
	if start < end {
		return minutes >= start && minutes < end
	}
	return minutes >= start || minutes < end
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return h*60 + m, nil
}
