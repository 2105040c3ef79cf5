package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	trackererrors "college-tracker/internal/common/errors"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/common/metrics"
	"college-tracker/internal/common/validation"
	"college-tracker/internal/models"
)

const (
	DefaultKey       = "college-tracker-applications"
	DefaultBackupKey = "college-tracker-backup"
)

// RedisStore implements Store on a Redis key-value backend. Values never
// expire; the tracker owns exactly two keys.
type RedisStore struct {
	redis     *redis.Client
	key       string
	backupKey string
	logger    logger.Logger
}

func NewRedisStore(client *redis.Client, key, backupKey string, log logger.Logger) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	if backupKey == "" {
		backupKey = DefaultBackupKey
	}
	return &RedisStore{
		redis:     client,
		key:       key,
		backupKey: backupKey,
		logger:    log.WithFields(map[string]interface{}{"component": "redis-store"}),
	}
}

func (s *RedisStore) Load(ctx context.Context) ([]models.Application, error) {
	timer := time.Now()
	raw, err := s.redis.Get(ctx, s.key).Result()
	metrics.StoreOperationDuration.WithLabelValues("load").Observe(time.Since(timer).Seconds())

	if errors.Is(err, redis.Nil) {
		metrics.StoreOperations.WithLabelValues("load", "empty").Inc()
		return []models.Application{}, nil
	}
	if err != nil {
		metrics.StoreOperations.WithLabelValues("load", "error").Inc()
		s.logger.WithError(err).Error("load failed", map[string]interface{}{"key": s.key})
		return []models.Application{}, trackererrors.NewStorageUnavailableError(err)
	}

	var apps []models.Application
	if err := json.Unmarshal([]byte(raw), &apps); err != nil {
		metrics.StoreOperations.WithLabelValues("load", "corrupt").Inc()
		s.logger.WithError(err).Error("stored payload is not valid", map[string]interface{}{"key": s.key})
		return []models.Application{}, trackererrors.NewCorruptDataError(err)
	}

	metrics.StoreOperations.WithLabelValues("load", "ok").Inc()
	return apps, nil
}

func (s *RedisStore) Save(ctx context.Context, apps []models.Application) error {
	payload, err := json.Marshal(apps)
	if err != nil {
		return trackererrors.NewStorageWriteFailedError(err)
	}

	timer := time.Now()
	err = s.redis.Set(ctx, s.key, payload, 0).Err()
	metrics.StoreOperationDuration.WithLabelValues("save").Observe(time.Since(timer).Seconds())
	if err != nil {
		metrics.StoreOperations.WithLabelValues("save", "error").Inc()
		return trackererrors.NewStorageWriteFailedError(err)
	}
	metrics.StoreOperations.WithLabelValues("save", "ok").Inc()
	metrics.ApplicationsTracked.Set(float64(len(apps)))

	// Save also refreshes the backup. A backup failure is logged but does not
	// fail the primary write.
	if err := s.Backup(ctx, apps); err != nil {
		s.logger.WithError(err).Warn("backup refresh failed", map[string]interface{}{"key": s.backupKey})
	}
	return nil
}

func (s *RedisStore) Backup(ctx context.Context, apps []models.Application) error {
	snapshot := Snapshot{
		Applications: apps,
		Timestamp:    time.Now().UTC(),
		Version:      SnapshotVersion,
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return trackererrors.NewStorageWriteFailedError(err)
	}
	if err := s.redis.Set(ctx, s.backupKey, payload, 0).Err(); err != nil {
		metrics.StoreOperations.WithLabelValues("backup", "error").Inc()
		return trackererrors.NewStorageWriteFailedError(err)
	}
	metrics.StoreOperations.WithLabelValues("backup", "ok").Inc()
	return nil
}

func (s *RedisStore) Restore(ctx context.Context) ([]models.Application, error) {
	raw, err := s.redis.Get(ctx, s.backupKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, trackererrors.NewStorageUnavailableError(err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, trackererrors.NewCorruptDataError(err)
	}
	metrics.StoreOperations.WithLabelValues("restore", "ok").Inc()
	return snapshot.Applications, nil
}

func (s *RedisStore) Export(ctx context.Context) (string, error) {
	apps, err := s.Load(ctx)
	if err != nil {
		return "", err
	}

	snapshot := Snapshot{
		Applications: apps,
		Timestamp:    time.Now().UTC(),
		Version:      SnapshotVersion,
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", trackererrors.NewStorageWriteFailedError(err)
	}
	metrics.StoreOperations.WithLabelValues("export", "ok").Inc()
	return string(payload), nil
}

func (s *RedisStore) Import(ctx context.Context, data string) ([]models.Application, error) {
	if err := validation.ValidateSnapshot([]byte(data)); err != nil {
		metrics.StoreOperations.WithLabelValues("import", "invalid").Inc()
		return nil, trackererrors.NewImportInvalidError(err.Error())
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		metrics.StoreOperations.WithLabelValues("import", "invalid").Inc()
		return nil, trackererrors.NewImportInvalidError(err.Error())
	}

	for i := range snapshot.Applications {
		if err := snapshot.Applications[i].Validate(); err != nil {
			metrics.StoreOperations.WithLabelValues("import", "invalid").Inc()
			return nil, err
		}
	}

	if err := s.Save(ctx, snapshot.Applications); err != nil {
		return nil, err
	}
	metrics.StoreOperations.WithLabelValues("import", "ok").Inc()
	return snapshot.Applications, nil
}
