package sheetstore

import "github.com/sirupsen/logrus"

// Options carries optional store settings.
type Options struct {
	// Logger receives informational notices and debug traces.
	// Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}
