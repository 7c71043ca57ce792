// Package process stops the headless browser started for previews,
// together with the renderer and GPU helpers it spawned.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would address the caller's own
// process group or every process.
var ErrInvalidPID = errors.New("invalid process id")
