// Package version reports the build identity of a promptkit binary.
//
// Release builds set the fields with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/promptkit/version.Version=1.2.0"
//
// Anything left unset is filled from the module's embedded VCS stamp.
package version
