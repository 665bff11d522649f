//go:build linux

package proctable

import "golang.org/x/sys/unix"

// pidAlive probes process existence with a null signal. EPERM still means
// the process exists; only ESRCH reports it gone.
func pidAlive(pid int32) bool {
	err := unix.Kill(int(pid), 0)
	return err == nil || err == unix.EPERM
}
