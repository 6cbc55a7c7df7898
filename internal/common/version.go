package common

// Set at build time with -ldflags "-X tarediiran-industries.com/tfl-status/internal/common.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
)
