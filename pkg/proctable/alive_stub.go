//go:build !linux
// +build !linux

package proctable

import "github.com/shirou/gopsutil/v4/process"

// pidAlive falls back to gopsutil's portable existence check off Linux.
func pidAlive(pid int32) bool {
	exists, err := process.PidExists(pid)
	return err == nil && exists
}
