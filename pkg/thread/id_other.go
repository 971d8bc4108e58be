//go:build !linux && !windows

package thread

// ID has no portable thread identity to read here without cgo,
// so the whole process counts as one thread.
func ID() int { return 1 }
