//go:build unix

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/common/errclass/unix.go
//

package errclass

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// classifyErrno maps a unix syscall errno to the short label the rest of
// this package's [Classify] attaches to connect and ping failures.
func classifyErrno(errno syscall.Errno) (string, bool) {
	switch errno {
	case syscall.Errno(unix.EADDRNOTAVAIL):
		return "EADDRNOTAVAIL", true
	case syscall.Errno(unix.EADDRINUSE):
		return "EADDRINUSE", true
	case syscall.Errno(unix.ECONNABORTED):
		return "ECONNABORTED", true
	case syscall.Errno(unix.ECONNREFUSED):
		return "ECONNREFUSED", true
	case syscall.Errno(unix.ECONNRESET):
		return "ECONNRESET", true
	case syscall.Errno(unix.EHOSTUNREACH):
		return "EHOSTUNREACH", true
	case syscall.Errno(unix.EINVAL):
		return "EINVAL", true
	case syscall.Errno(unix.EINTR):
		return "EINTR", true
	case syscall.Errno(unix.ENETDOWN):
		return "ENETDOWN", true
	case syscall.Errno(unix.ENETUNREACH):
		return "ENETUNREACH", true
	case syscall.Errno(unix.ENOBUFS):
		return "ENOBUFS", true
	case syscall.Errno(unix.ENOTCONN):
		return "ENOTCONN", true
	case syscall.Errno(unix.EPROTONOSUPPORT):
		return "EPROTONOSUPPORT", true
	case syscall.Errno(unix.ETIMEDOUT):
		return "ETIMEDOUT", true
	default:
		return "", false
	}
}
