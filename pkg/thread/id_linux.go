package thread

import "golang.org/x/sys/unix"

// ID returns the kernel id of the calling OS thread.
// It is stable only while the goroutine is locked to its thread.
func ID() int { return unix.Gettid() }
