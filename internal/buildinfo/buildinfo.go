package buildinfo

// These values are injected by GoReleaser via ldflags for release binaries.
// They default to empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// Summary formats the build metadata for display, e.g. "v1.2.0 (abc1234)".
func Summary() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" {
		v += " (" + Commit + ")"
	}
	return v
}
