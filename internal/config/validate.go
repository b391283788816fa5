package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Telegram.AdminID <= 0 {
		return fmt.Errorf("telegram.admin_id must be a positive Telegram user ID (got %d)", c.Telegram.AdminID)
	}

	if c.Notifier.Interval <= 0 {
		return fmt.Errorf("notifier.interval must be > 0 (got %v)", c.Notifier.Interval)
	}

	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail.port must be a valid TCP port (got %d)", c.Mail.Port)
	}

	if !strings.Contains(c.Mail.AdminEmail, "@") {
		return fmt.Errorf("mail.admin_email %q is not an email address", c.Mail.AdminEmail)
	}

	return nil
}
