package config

import "errors"

func ValidateForRun(cfg *Config) error {
	var errs []error

	if cfg.RemindersAPIURL == "" {
		errs = append(errs, ErrRemindersAPIURLMissing)
	}
	if err := cfg.Poller.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Channels.TelegramBotToken != "" && cfg.Channels.TelegramChatID == 0 {
		errs = append(errs, ErrTelegramChatIDMissing)
	}

	return errors.Join(errs...)
}
