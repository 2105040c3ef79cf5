// Package tracker holds the collection service: every mutation of the
// application collection flows through here and is persisted via the store.
package tracker

import (
	"context"
	"sync"
	"time"

	trackererrors "college-tracker/internal/common/errors"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/models"
	"college-tracker/internal/notify"
	"college-tracker/internal/storage"
)

// Service owns the in-memory collection. Reads hand out snapshots so the
// filter and analytics engines never see concurrent mutation.
type Service struct {
	store    storage.Store
	notifier *notify.Notifier
	logger   logger.Logger

	mu   sync.RWMutex
	apps []models.Application
}

// NewService loads the stored collection. A load failure degrades to an empty
// collection; the typed error is returned alongside the usable service so the
// caller can surface a warning.
func NewService(ctx context.Context, store storage.Store, notifier *notify.Notifier, log logger.Logger) (*Service, error) {
	svc := &Service{
		store:    store,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"component": "tracker"}),
	}

	apps, err := store.Load(ctx)
	svc.apps = apps
	if err != nil {
		svc.logger.WithError(err).Warn("starting with empty collection", nil)
		return svc, err
	}
	return svc, nil
}

// List returns a snapshot copy of the collection.
func (s *Service) List() []models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Application, len(s.apps))
	copy(out, s.apps)
	return out
}

// Get returns the application with the given id.
func (s *Service) Get(id string) (models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.apps {
		if s.apps[i].ID == id {
			return s.apps[i], nil
		}
	}
	return models.Application{}, trackererrors.NewNotFoundError("application", id)
}

// Add creates a new application for the given university and program.
func (s *Service) Add(ctx context.Context, university models.University, program models.Program) (models.Application, error) {
	app, err := models.NewApplication(university, program)
	if err != nil {
		return models.Application{}, err
	}

	s.mu.Lock()
	s.apps = append(s.apps, *app)
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return *app, err
	}
	s.logger.Info("application added", map[string]interface{}{
		"applicationId": app.ID,
		"university":    university.Name,
		"program":       program.Name,
	})
	return *app, nil
}

// UpdateStatus moves the application to status, stamping the submission date
// on the transition to submitted.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.Status) (models.Application, error) {
	return s.mutate(ctx, id, func(app *models.Application) error {
		return app.SetStatus(status)
	})
}

// Delete removes the application and all embedded sub-records.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	index := -1
	for i := range s.apps {
		if s.apps[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return trackererrors.NewNotFoundError("application", id)
	}
	s.apps = append(s.apps[:index], s.apps[index+1:]...)
	s.mu.Unlock()

	return s.persist(ctx)
}

// AddDocument attaches a document to the application.
func (s *Service) AddDocument(ctx context.Context, id string, doc models.Document) (models.Application, error) {
	return s.mutate(ctx, id, func(app *models.Application) error {
		return app.AddDocument(doc)
	})
}

// AddInterview attaches an interview to the application.
func (s *Service) AddInterview(ctx context.Context, id string, interview models.Interview) (models.Application, error) {
	return s.mutate(ctx, id, func(app *models.Application) error {
		return app.AddInterview(interview)
	})
}

// AddFinancialAid attaches a financial aid record to the application.
func (s *Service) AddFinancialAid(ctx context.Context, id string, aid models.FinancialAid) (models.Application, error) {
	return s.mutate(ctx, id, func(app *models.Application) error {
		return app.AddFinancialAid(aid)
	})
}

// AddReminder attaches a reminder to the application.
func (s *Service) AddReminder(ctx context.Context, id string, reminder models.Reminder) (models.Application, error) {
	return s.mutate(ctx, id, func(app *models.Application) error {
		return app.AddReminder(reminder)
	})
}

// SetChecklistItem upserts a checklist entry on the application.
func (s *Service) SetChecklistItem(ctx context.Context, id, key string, item models.ChecklistItem) (models.Application, error) {
	return s.mutate(ctx, id, func(app *models.Application) error {
		return app.SetChecklistItem(key, item)
	})
}

// SetNotes replaces the free-text notes on the application.
func (s *Service) SetNotes(ctx context.Context, id, notes string) (models.Application, error) {
	return s.mutate(ctx, id, func(app *models.Application) error {
		app.SetNotes(notes)
		return nil
	})
}

// MarkFeePaid records payment of the application fee.
func (s *Service) MarkFeePaid(ctx context.Context, id string, amount float64) (models.Application, error) {
	return s.mutate(ctx, id, func(app *models.Application) error {
		return app.MarkFeePaid(amount)
	})
}

// DispatchDueReminders hands every due, uncompleted reminder to the notifier
// and marks it completed. Returns the number dispatched.
func (s *Service) DispatchDueReminders(ctx context.Context, now time.Time) (int, error) {
	dispatched := 0

	s.mu.Lock()
	for i := range s.apps {
		changed := false
		for j := range s.apps[i].Reminders {
			reminder := &s.apps[i].Reminders[j]
			if !reminder.IsDue(now) {
				continue
			}
			if s.notifier != nil {
				s.notifier.ScheduleReminder(ctx, *reminder)
			}
			reminder.IsCompleted = true
			changed = true
			dispatched++
		}
		if changed {
			s.apps[i].UpdatedAt = time.Now().UTC()
		}
	}
	s.mu.Unlock()

	if dispatched == 0 {
		return 0, nil
	}
	if err := s.persist(ctx); err != nil {
		return dispatched, err
	}
	s.logger.Info("reminders dispatched", map[string]interface{}{"count": dispatched})
	return dispatched, nil
}

// mutate applies fn to the identified application and persists the result.
func (s *Service) mutate(ctx context.Context, id string, fn func(*models.Application) error) (models.Application, error) {
	s.mu.Lock()
	var target *models.Application
	for i := range s.apps {
		if s.apps[i].ID == id {
			target = &s.apps[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return models.Application{}, trackererrors.NewNotFoundError("application", id)
	}
	if err := fn(target); err != nil {
		s.mu.Unlock()
		return models.Application{}, err
	}
	updated := *target
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.List()); err != nil {
		s.logger.WithError(err).Error("save failed", nil)
		return err
	}
	return nil
}
