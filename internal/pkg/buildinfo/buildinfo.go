package buildinfo

// Version is injected at release build time, for example:
// -X github.com/devsantx/Lacos-Digitais-Backend/internal/pkg/buildinfo.Version=v1.2.0
var Version = "v1.0.0-dev"

// Commit is optionally injected with the git commit, for example:
// -X github.com/devsantx/Lacos-Digitais-Backend/internal/pkg/buildinfo.Commit=abcdef1
var Commit = "unknown"
