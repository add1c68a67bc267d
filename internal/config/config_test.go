package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
app:
  name: courtbook
  environment: test
  port: 8080
database:
  driver: sqlite
  filename: data/test.db
notifications:
  provider: log
scheduler:
  reminders_enabled: true
  reminder_hours_before: 24
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Name != "courtbook" || cfg.App.Port != 8080 {
		t.Fatalf("app config: %+v", cfg.App)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("database driver: %s", cfg.Database.Driver)
	}
	if !cfg.Scheduler.RemindersEnabled || cfg.Scheduler.ReminderHoursBefore != 24 {
		t.Fatalf("scheduler config: %+v", cfg.Scheduler)
	}
}

func TestLoad_SESCredentialsFromEnv(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret")

	cfg, err := Load(writeConfig(t, `
app:
  name: courtbook
  port: 8080
database:
  driver: sqlite
  filename: data/test.db
notifications:
  provider: ses
  region: us-east-1
  sender: reservations@example.com
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Notifications.AccessKeyID != "test-key" || cfg.Notifications.SecretAccessKey != "test-secret" {
		t.Fatal("credentials not read from environment")
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		contents string
	}{
		{"missing app name", `
app:
  port: 8080
database:
  driver: sqlite
  filename: data/test.db
`},
		{"unsupported driver", `
app:
  name: courtbook
  port: 8080
database:
  driver: postgres
  filename: data/test.db
`},
		{"ses without sender", `
app:
  name: courtbook
  port: 8080
database:
  driver: sqlite
  filename: data/test.db
notifications:
  provider: ses
  region: us-east-1
`},
		{"unknown provider", `
app:
  name: courtbook
  port: 8080
database:
  driver: sqlite
  filename: data/test.db
notifications:
  provider: carrier-pigeon
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.contents)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
