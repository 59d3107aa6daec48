// Package constants provides shared constants for the loan-amortization application.
package constants

// DateLayout is the format expected in config files and request bodies.
const DateLayout = "2006-01-02"

// DisplayDateLayout renders dates as day, short month and two-digit year
// (e.g. "01 Feb 25").
const DisplayDateLayout = "02 Jan 06"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxTermYears bounds the schedule length a single computation may produce
	MaxTermYears = 100

	// RoundingTolerance is the allowed drift between rounded display figures (one currency unit)
	RoundingTolerance = 1.0
)

// Advisory thresholds used when validating loan parameters
const (
	// HighInterestRatePercent is the annual rate above which a warning is raised
	HighInterestRatePercent = 36.0

	// LongTermYears is the term above which a warning is raised
	LongTermYears = 30

	// HighProcessingFeePercent is the fee-to-principal ratio above which a warning is raised
	HighProcessingFeePercent = 5.0
)

// Regional display defaults
const (
	// DefaultCurrencySymbol prefixes rendered amounts
	DefaultCurrencySymbol = "₹"

	// DefaultCurrencyWord trails amounts written in words
	DefaultCurrencyWord = "Rupees"

	// DefaultLocale is the BCP 47 tag used for printed output
	DefaultLocale = "en-IN"

	// ReferencePrefix starts generated certificate reference numbers
	ReferencePrefix = "LN"
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

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix namespaces environment overrides, e.g. LOAN_LOAN_PRINCIPAL
	EnvPrefix = "LOAN"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultRateLimitPerSecond is the sustained request rate allowed per server
	DefaultRateLimitPerSecond = 10.0

	// DefaultRateLimitBurst is the burst size allowed on top of the sustained rate
	DefaultRateLimitBurst = 30

	// DefaultCacheTTLSeconds is how long a computed schedule is memoized
	DefaultCacheTTLSeconds = 300
)
