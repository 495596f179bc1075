// Package constants provides shared constants for the loan-amortization application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of monthly periods in a year
	MonthsPerYear = 12

	// QuartersPerYear is the number of quarterly periods in a year
	QuartersPerYear = 4

	// HalfYearsPerYear is the number of semiannual periods in a year
	HalfYearsPerYear = 2

	// YearsPerYear is the number of annual periods in a year
	YearsPerYear = 1

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Locale constants
const (
	// DefaultLocale is used when no locale is configured
	DefaultLocale = "en-US"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Default loan values, matching the form defaults of the web page.
const (
	DefaultPrincipal     = 10000.0
	DefaultRatePercent   = 5.0
	DefaultDurationYears = 10
	DefaultFrequency     = "monthly"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultCacheSize is the default number of schedules held by the in-memory cache
	DefaultCacheSize = 512

	// DefaultMetricsIntervalSeconds is the default metrics export interval
	DefaultMetricsIntervalSeconds = 60
)
