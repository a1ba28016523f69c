// Package version exposes build metadata.
package version

// These variables are set at build time via -ldflags
// Example: go build -ldflags "-X github.com/quillcraft/quillcraft/internal/version.Version=v1.0.0"
var (
	// Version is the semantic version of the application
	Version = "dev"

	// Commit is the git commit hash
	Commit = "none"

	// BuildTime is the timestamp of the build
	BuildTime = "unknown"
)

// Info is the JSON shape served by GET /api/version.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// Current returns the version info of the running binary.
func Current() Info {
	return Info{Version: Version, Commit: Commit, BuildTime: BuildTime}
}
