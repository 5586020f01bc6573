package config

import "fmt"

// ModuleName, Commit and BuildDate are set at build time via
// -ldflags "-X github/chapool/go-mock-wallet/internal/config.Commit=...".
var (
	ModuleName = "go-mock-wallet"
	Commit     = "< 40 chars git commit hash via ldflags >"
	BuildDate  = "1970-01-01T00:00:00+00:00"
)

// GetFormattedBuildArgs returns the build information printed by --version.
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
