// SPDX-License-Identifier: GPL-3.0-or-later

// Package errclass maps transport errors to short, stable labels for
// structured logging (spec.md §4.H). It is grounded on the teacher
// package's errclass/unix.go and errclass/windows.go constant tables,
// rewritten here as a cross-platform Classify entry point because the
// upstream github.com/bassosimone/errclass module's own Classify signature
// is not visible in the retrieval pack.
package errclass

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
)

// Classify returns a short label for err (e.g. "ECONNREFUSED",
// "ETIMEDOUT"), the empty string if err is nil, the errno's own message for
// an errno with no label, and "EGENERIC" for any other unrecognized error.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "ETIMEDOUT"
	}
	if errors.Is(err, context.Canceled) {
		return "ECANCELED"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "ETIMEDOUT"
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if label, ok := classifyErrno(errno); ok {
			return label
		}
		return errno.Error()
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return Classify(pathErr.Err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Classify(opErr.Err)
	}

	return "EGENERIC"
}
