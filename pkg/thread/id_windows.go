package thread

import "golang.org/x/sys/windows"

// ID returns the id of the calling OS thread.
// It is stable only while the goroutine is locked to its thread.
func ID() int { return int(windows.GetCurrentThreadId()) }
