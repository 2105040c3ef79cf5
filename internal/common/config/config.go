package config

import "fmt"

type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type StorageConfig struct {
	Redis     RedisConfig `mapstructure:"redis"`
	Key       string      `mapstructure:"key"`
	BackupKey string      `mapstructure:"backup_key"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type NotificationConfig struct {
	EmailEnabled bool  `mapstructure:"email_enabled"`
	PushEnabled  bool  `mapstructure:"push_enabled"`
	ReminderDays []int `mapstructure:"reminder_days"`

	QuietHours QuietHoursConfig `mapstructure:"quiet_hours"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			FromEmail string `mapstructure:"from_email"`
			ToEmail   string `mapstructure:"to_email"`
		} `mapstructure:"ses"`
		SNS struct {
			TopicARN string `mapstructure:"topic_arn"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`

	// DispatchInterval is how often due reminders are checked, in seconds.
	DispatchInterval int `mapstructure:"dispatch_interval"`
}

// QuietHoursConfig is a local-time window during which notifications are
// deferred instead of delivered. The window may wrap midnight.
type QuietHoursConfig struct {
	Start string `mapstructure:"start"` // "HH:MM"
	End   string `mapstructure:"end"`   // "HH:MM"
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Storage.Redis.Address == "" {
		return fmt.Errorf("storage.redis.address is required")
	}
	if cfg.Storage.Key == "" {
		return fmt.Errorf("storage.key is required")
	}
	if cfg.Notifications.EmailEnabled && cfg.Notifications.AWS.SES.FromEmail == "" {
		return fmt.Errorf("notifications.aws.ses.from_email is required when email is enabled")
	}
	if cfg.Notifications.PushEnabled && cfg.Notifications.AWS.SNS.TopicARN == "" {
		return fmt.Errorf("notifications.aws.sns.topic_arn is required when push is enabled")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "college-tracker"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = "college-tracker-applications"
	}
	if cfg.Storage.BackupKey == "" {
		cfg.Storage.BackupKey = "college-tracker-backup"
	}
	if len(cfg.Notifications.ReminderDays) == 0 {
		cfg.Notifications.ReminderDays = []int{7, 3, 1}
	}
	if cfg.Notifications.QuietHours.Start == "" {
		cfg.Notifications.QuietHours.Start = "22:00"
	}
	if cfg.Notifications.QuietHours.End == "" {
		cfg.Notifications.QuietHours.End = "08:00"
	}
	if cfg.Notifications.DispatchInterval == 0 {
		cfg.Notifications.DispatchInterval = 60
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}
