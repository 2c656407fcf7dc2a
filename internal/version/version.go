package version

// Version is the deckshell release string. It is published in the generated document
// as the slidev:version meta tag so the client can detect mismatched builds.
// Set it at build time:
// go build -ldflags "-X git.home.luguber.info/inful/deckshell/internal/version.Version=v0.3.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
