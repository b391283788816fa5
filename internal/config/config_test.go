package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123456:test-token")
	t.Setenv("TELEGRAM_ADMIN_ID", "999")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("MAIL_USERNAME", "bot@example.com")
	t.Setenv("MAIL_PASSWORD", "secret")
	t.Setenv("MAIL_ADMIN_EMAIL", "admin@example.com")
}

// chdir changes the working directory for the test and restores it on
// cleanup (testing.T.Chdir requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore cwd: %v", err)
		}
	})
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
telegram:
  token: "123456:yaml-token"
  admin_id: 777
  update_timeout: 60

database:
  dsn: "postgres://u:p@localhost:5432/yamldb"
  max_conns: 5
  min_conns: 1

mail:
  host: "smtp.example.com"
  port: 465
  username: "yaml@example.com"
  password: "yaml-secret"
  admin_email: "yaml-admin@example.com"

notifier:
  interval: "10s"

log:
  level: "debug"
  format: "json"
`

func TestLoad_FromEnvOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	chdir(t, t.TempDir()) // no config.yaml in cwd

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Telegram.AdminID != 999 {
		t.Errorf("AdminID = %d, want 999", cfg.Telegram.AdminID)
	}
	if cfg.Notifier.Interval != 30*time.Second {
		t.Errorf("Notifier.Interval = %v, want default 30s", cfg.Notifier.Interval)
	}
	if cfg.Mail.Host != "smtp.gmail.com" || cfg.Mail.Port != 465 {
		t.Errorf("Mail endpoint = %s:%d, want default smtp.gmail.com:465", cfg.Mail.Host, cfg.Mail.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, "info")
	}
}

func TestLoad_FromYAMLFile(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Telegram.Token != "123456:yaml-token" {
		t.Errorf("Token = %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.AdminID != 777 {
		t.Errorf("AdminID = %d, want 777", cfg.Telegram.AdminID)
	}
	if cfg.Notifier.Interval != 10*time.Second {
		t.Errorf("Notifier.Interval = %v, want 10s", cfg.Notifier.Interval)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("TELEGRAM_ADMIN_ID", "555")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Telegram.AdminID != 555 {
		t.Errorf("AdminID = %d, want env override 555", cfg.Telegram.AdminID)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	chdir(t, t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for missing required vars, got nil")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for explicit missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Telegram: TelegramConfig{Token: "t", AdminID: 1},
			Mail:     MailConfig{Port: 465, AdminEmail: "a@b.it"},
			Notifier: NotifierConfig{Interval: 30 * time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "non-positive admin id", mutate: func(c *Config) { c.Telegram.AdminID = 0 }, wantErr: true},
		{name: "zero notifier interval", mutate: func(c *Config) { c.Notifier.Interval = 0 }, wantErr: true},
		{name: "bad mail port", mutate: func(c *Config) { c.Mail.Port = 70000 }, wantErr: true},
		{name: "bad admin email", mutate: func(c *Config) { c.Mail.AdminEmail = "not-an-email" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
