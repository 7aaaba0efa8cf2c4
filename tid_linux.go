//go:build linux

package jobsystem

import "golang.org/x/sys/unix"

// gettid returns the Linux thread id of the calling OS thread, used only as
// the argument to platform.Platform.SetThreadAffinity.
func gettid() int {
	return unix.Gettid()
}
