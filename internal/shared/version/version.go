// Package version holds build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/GriffinCanCode/LexOS/backend/internal/shared/version.Version=1.2.0"
package version

var (
	Version = "0.3.0"
	Commit  = "unknown"
)

// Service is the human-readable service name reported by the API
const Service = "LexOS Desktop (Go)"

// String returns "version (commit)"
func String() string {
	return Version + " (" + Commit + ")"
}
