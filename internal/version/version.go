// Package version reports the dpgen release and the revision it was built from.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags, e.g.
// -X github.com/example/dpgen/internal/version.Release=v1.2.0
var (
	Release   = "dev"
	Commit    = ""
	BuildTime = "unknown"
)

// String returns "dpgen <release> (commit: <sha>, built: <time>)".
// Without an injected commit the VCS revision stamped by the go tool is used.
func String() string {
	return fmt.Sprintf("dpgen %s (commit: %s, built: %s)", Release, revision(), BuildTime)
}

func revision() string {
	commit := Commit
	if commit == "" {
		commit = stampedRevision()
	}
	if commit == "" {
		return "unknown"
	}
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

var readBuildInfo = debug.ReadBuildInfo

func stampedRevision() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
