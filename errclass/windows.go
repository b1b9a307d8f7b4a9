//go:build windows

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/common/errclass/windows.go
//

package errclass

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// classifyErrno maps a Windows socket errno to the short label the rest of
// this package's Classify attaches to connect and ping failures.
func classifyErrno(errno syscall.Errno) (string, bool) {
	switch errno {
	case syscall.Errno(windows.WSAEADDRNOTAVAIL):
		return "EADDRNOTAVAIL", true
	case syscall.Errno(windows.WSAEADDRINUSE):
		return "EADDRINUSE", true
	case syscall.Errno(windows.WSAECONNABORTED):
		return "ECONNABORTED", true
	case syscall.Errno(windows.WSAECONNREFUSED):
		return "ECONNREFUSED", true
	case syscall.Errno(windows.WSAECONNRESET):
		return "ECONNRESET", true
	case syscall.Errno(windows.WSAEHOSTUNREACH):
		return "EHOSTUNREACH", true
	case syscall.Errno(windows.WSAEINVAL):
		return "EINVAL", true
	case syscall.Errno(windows.WSAEINTR):
		return "EINTR", true
	case syscall.Errno(windows.WSAENETDOWN):
		return "ENETDOWN", true
	case syscall.Errno(windows.WSAENETUNREACH):
		return "ENETUNREACH", true
	case syscall.Errno(windows.WSAENOBUFS):
		return "ENOBUFS", true
	case syscall.Errno(windows.WSAENOTCONN):
		return "ENOTCONN", true
	case syscall.Errno(windows.WSAEPROTONOSUPPORT):
		return "EPROTONOSUPPORT", true
	case syscall.Errno(windows.WSAETIMEDOUT):
		return "ETIMEDOUT", true
	default:
		return "", false
	}
}
