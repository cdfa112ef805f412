// Package build carries version metadata injected at link time.
package build

import "fmt"

// These variables are set at build time via -ldflags, e.g.
//
//	-X github.com/shaharia-lab/designpatterns/internal/build.Version=v1.2.0
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// String returns a single human-readable build info string.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitSHA, BuildDate)
}
