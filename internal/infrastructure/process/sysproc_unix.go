//go:build !windows

package process

import "syscall"

// detachSysProcAttr puts the child in its own session so it survives the
// launcher's exit and any terminal hangup delivered to the launcher's group.
func detachSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
