package excel

// Config holds configuration for the Excel transport.
type Config struct {
	FilePath string // Path to the Excel workbook
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return ErrMissingFilePath
	}
	return nil
}
