// Package version reports which build of countries-api is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Release builds stamp these with -ldflags, e.g.
//
//	-X github.com/deppfellow/countries-api/internal/version.Version=1.2.0
//	-X github.com/deppfellow/countries-api/internal/version.Commit=$(git rev-parse HEAD)
//	-X github.com/deppfellow/countries-api/internal/version.BuildDate=$(date -u +%FT%TZ)
var (
	Version   = "1.0.0"
	Commit    = ""
	BuildDate = ""
)

const shortRevisionLen = 7

// Revision returns Commit, or the vcs.revision the Go toolchain records
// when the binary is built from a checkout.
func Revision() string {
	if Commit != "" {
		return Commit
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}
	return ""
}

// Info is the one-line form shown by --version: "1.0.0" or "1.0.0 (abc1234)".
func Info() string {
	rev := Revision()
	if rev == "" {
		return Version
	}
	if len(rev) > shortRevisionLen {
		rev = rev[:shortRevisionLen]
	}
	return fmt.Sprintf("%s (%s)", Version, rev)
}

// Full is printed by the version command.
func Full() string {
	return fmt.Sprintf("countries-api version %s\ncommit: %s\nbuilt: %s\ngo: %s",
		Version, orUnknown(Revision()), orUnknown(BuildDate), runtime.Version())
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
