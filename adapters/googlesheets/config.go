package googlesheets

import "time"

// Config holds settings for the Google Sheets transport.
type Config struct {
	SpreadsheetID string
	MaxRetries    int           // retries after a quota error (default: 3)
	RetryInterval time.Duration // base backoff interval (default: 1s)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return ErrMissingSpreadsheetID
	}
	return nil
}
