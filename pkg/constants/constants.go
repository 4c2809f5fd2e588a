// Package constants provides shared constants used throughout the
// crosscheck codebase. This includes matching tolerances, classification
// thresholds, concurrency bounds, file permissions, and other values that
// should be consistent across the application.
package constants

// Matching and classification constants
const (
	// DefaultClockToleranceSeconds is the matcher's clock alignment window.
	// Sources round period clocks differently, so events within this many
	// seconds of each other are match candidates.
	DefaultClockToleranceSeconds = 2

	// DefaultMinorThreshold is the largest absolute aggregate delta still
	// classified as a minor discrepancy.
	DefaultMinorThreshold = 1

	// OnIceMarkerSanityFactor flags a shift chart whose marker count
	// exceeds this multiple of the authoritative goal count.
	OnIceMarkerSanityFactor = 2
)

// Game structure constants
const (
	// RegulationPeriods is the number of regulation periods in a game
	RegulationPeriods = 3

	// ShootoutReportPeriod is the period number report-style sources print
	// for shootout attempts
	ShootoutReportPeriod = 5

	// MaxPeriod bounds the period numbers adapters accept
	MaxPeriod = 9
)

// Concurrency constants
const (
	// DefaultSeasonWorkers is the default number of games reconciled
	// concurrently during a season run
	DefaultSeasonWorkers = 4

	// MaxSeasonWorkers caps the configurable season worker count
	MaxSeasonWorkers = 32
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like API keys (rw-------)
	SecureFilePermissions = 0600
)

// Path constants
const (
	// DefaultConfigPath is the default path for the configuration file
	DefaultConfigPath = "~/.crosscheck.yaml"

	// DefaultReportsPath is the default directory for saved reports
	DefaultReportsPath = "~/.crosscheck/reports"
)

// Format constants
const (
	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)

// Record filename constants name the normalized per-source JSON documents
// a game directory holds.
const (
	// RosterFilename is the roster context document
	RosterFilename = "roster.json"

	// EventStreamFilename is the play-by-play record
	EventStreamFilename = "eventstream.json"

	// BoxscoreFilename is the totals record
	BoxscoreFilename = "boxscore.json"

	// GameSummaryFilename is the detailed scoring report record
	GameSummaryFilename = "gamesummary.json"

	// ShiftChartFilename is the shift report record
	ShiftChartFilename = "shiftchart.json"
)
