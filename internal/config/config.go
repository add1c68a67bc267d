// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type NotificationsConfig struct {
	// Provider selects delivery: "ses" or "log".
	Provider string `yaml:"provider"`
	Region   string `yaml:"region,omitempty"`
	Sender   string `yaml:"sender,omitempty"`
	// Credentials are loaded from environment, never from the yaml file.
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`
}

type SchedulerConfig struct {
	RemindersEnabled    bool  `yaml:"reminders_enabled"`
	ReminderHoursBefore int64 `yaml:"reminder_hours_before"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Database      DatabaseConfig      `yaml:"database"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
}

// Load loads both .env and yaml configuration.
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Sensitive values come from the environment.
	cfg.Notifications.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Notifications.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}
	if c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.Filename == "" {
		return fmt.Errorf("database filename is required for sqlite")
	}

	switch c.Notifications.Provider {
	case "", "log":
		// Log delivery needs nothing else.
	case "ses":
		if c.Notifications.Region == "" {
			return fmt.Errorf("notification region is required for ses")
		}
		if c.Notifications.Sender == "" {
			return fmt.Errorf("notification sender is required for ses")
		}
	default:
		return fmt.Errorf("unsupported notification provider: %s", c.Notifications.Provider)
	}

	if c.Scheduler.RemindersEnabled && c.Scheduler.ReminderHoursBefore < 0 {
		return fmt.Errorf("reminder hours before cannot be negative")
	}

	return nil
}
