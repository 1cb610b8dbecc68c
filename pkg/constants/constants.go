// Package constants provides shared constants for the housing-advisor application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// MaxLoanTermYears is the longest loan term accepted (480 months).
	MaxLoanTermYears = 40

	// PensionAge is the age at which the investment horizon ends.
	PensionAge = 69

	// PropertyAppreciationRate is the assumed yearly appreciation of the property value.
	PropertyAppreciationRate = 0.02
)

// Advice thresholds
const (
	// ComfortableIncomeShare is the share of net salary (percent) under which
	// mortgage costs are considered comfortable.
	ComfortableIncomeShare = 30.0

	// ModerateIncomeShare is the upper bound (percent) of the moderate band.
	ModerateIncomeShare = 40.0

	// NearEqualCostRatio is the relative difference under which rent and
	// ownership costs are considered roughly equal.
	NearEqualCostRatio = 0.1

	// LongTermLoanYears is the loan term above which ownership is long-term.
	LongTermLoanYears = 20
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "HOUSING"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown.
	DefaultShutdownTimeoutSeconds = 10
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
