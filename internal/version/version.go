// Package version reports the faultnote build version.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Set at release time:
//
//	go build -ldflags="-X github.com/muurk/faultnote/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/faultnote/internal/version.Commit=abc123" ./cmd/faultnote
//
// Otherwise they are filled from the VCS stamp in the build info, falling
// back to "dev" with a timestamp.
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo()
	}
	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		// go install github.com/muurk/faultnote/cmd/faultnote@v0.3.0
		Version = info.Main.Version
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && rev != "" {
		Commit = rev[:min(7, len(rev))]
		if settings["vcs.modified"] == "true" {
			Commit += "-dirty"
		}
	}

	if Version == "" {
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			Version = "dev-" + t.Format("20060102")
		}
	}
}

// Full returns the version and commit, e.g. "v0.3.0 (commit: abc123)"
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
