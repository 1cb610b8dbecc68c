// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/housing-advisor/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateLogFormat checks the zap encoder name. Empty selects the default.
func ValidateLogFormat(format string) error {
	switch format {
	case "", "json", "console":
		return nil
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}
}
