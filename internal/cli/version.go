package cli

import (
	"runtime/debug"
	"strings"
)

const (
	programName      = "citydiscovery"
	devVersion       = "dev"
	shortRevisionLen = 12
)

var readBuildInfo = debug.ReadBuildInfo

// versionLine is what --version prints.
func versionLine(injected string) string {
	return programName + " " + resolvedVersion(injected)
}

// resolvedVersion picks, in order: the -ldflags value, the module version
// from `go install`, the VCS revision stamped into the binary, then "dev".
func resolvedVersion(injected string) string {
	injected = strings.TrimSpace(injected)
	if injected != "" && injected != devVersion {
		return injected
	}
	if stamp, ok := buildStamp(); ok {
		return stamp
	}
	return devVersion
}

func buildStamp() (string, bool) {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return "", false
	}
	if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
		return v, true
	}

	vcs := make(map[string]string, 2)
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" || setting.Key == "vcs.modified" {
			vcs[setting.Key] = strings.TrimSpace(setting.Value)
		}
	}
	revision := vcs["vcs.revision"]
	if revision == "" {
		return "", false
	}
	if len(revision) > shortRevisionLen {
		revision = revision[:shortRevisionLen]
	}
	if strings.EqualFold(vcs["vcs.modified"], "true") {
		revision += "-dirty"
	}
	return revision, true
}
