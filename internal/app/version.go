package app

import "fmt"

// appName tags every log record and the pgx application_name.
const appName = "genius-progression"

// Build metadata, stamped by the release build:
//
//	-ldflags "-X github.com/heartmarshall/genius-progression/internal/app.Version=1.4.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the version reported by /health and the "starting
// application" log line.
func BuildVersion() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", appName, Version, Commit, BuildTime)
}
