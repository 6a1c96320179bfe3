// Package version reports build metadata for replayfs.
//
// Values come from -ldflags when the binary is built by the Makefile:
//
//	-ldflags "-X github.com/dendrascience/replayfs/version.Version=v1.0.0 -X github.com/dendrascience/replayfs/version.Commit=abc123"
//
// and otherwise fall back to the module and VCS data recorded by the Go
// toolchain (debug.ReadBuildInfo), so `go install` builds still report a
// meaningful version.
package version
