package config

import "time"

// Config is the root application configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Database DatabaseConfig `yaml:"database"`
	Mail     MailConfig     `yaml:"mail"`
	Notifier NotifierConfig `yaml:"notifier"`
	Log      LogConfig      `yaml:"log"`
}

// TelegramConfig holds bot API settings.
type TelegramConfig struct {
	Token   string `yaml:"token"    env:"TELEGRAM_TOKEN"    env-required:"true"`
	AdminID int64  `yaml:"admin_id" env:"TELEGRAM_ADMIN_ID" env-required:"true"`
	// UpdateTimeout is the long-polling timeout passed to getUpdates.
	UpdateTimeout int `yaml:"update_timeout" env:"TELEGRAM_UPDATE_TIMEOUT" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// MailConfig holds SMTP settings for the admin notification email.
// The default host/port match Gmail's implicit-TLS endpoint.
type MailConfig struct {
	Host       string `yaml:"host"        env:"MAIL_HOST"        env-default:"smtp.gmail.com"`
	Port       int    `yaml:"port"        env:"MAIL_PORT"        env-default:"465"`
	Username   string `yaml:"username"    env:"MAIL_USERNAME"    env-required:"true"`
	Password   string `yaml:"password"    env:"MAIL_PASSWORD"    env-required:"true"`
	AdminEmail string `yaml:"admin_email" env:"MAIL_ADMIN_EMAIL" env-required:"true"`
}

// NotifierConfig holds settings for the approval notifier loop.
type NotifierConfig struct {
	Interval time.Duration `yaml:"interval" env:"NOTIFIER_INTERVAL" env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
