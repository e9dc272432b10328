// Package constants provides shared constants used throughout the dupap codebase.
// This includes timeouts, limits, file permissions, and the defaults for the
// quarantine workflow that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the XIQ API
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds cleanup work after a failed run
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// DefaultPageSize is the number of items requested per page from the XIQ API
	DefaultPageSize = 100

	// MaxPageSize is the largest page size the XIQ API accepts
	MaxPageSize = 100
)

// Quarantine workflow defaults
const (
	// DefaultGracePeriod is how long an unmanaged duplicate stays in the
	// quarantine group before it is deleted
	DefaultGracePeriod = 30 * 24 * time.Hour

	// DefaultGroupName is the name of the cloud config group that collects
	// quarantined duplicates
	DefaultGroupName = "MarkedAsReplaced"

	// DefaultGroupDescription is the description set when the group is created
	DefaultGroupDescription = "CCG for Unmanaged Duplicate APs"
)

// Default values
const (
	// DefaultBaseURL is the XIQ API endpoint
	DefaultBaseURL = "https://api.extremecloudiq.com"

	// DefaultStorePath is the file that tracks quarantined devices
	DefaultStorePath = "monitor_unmanaged.json"

	// DefaultLogFile is the log file sink written next to stdout output
	DefaultLogFile = "dupap.log"

	// EnvPrefix is the prefix for environment variable configuration
	EnvPrefix = "DUPAP"
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"

	// TimeFormatLog is the format used in log files
	TimeFormatLog = "2006-01-02 15:04:05.000"
)
