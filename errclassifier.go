// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import "github.com/drivercore/mongoconn/errclass"

// ErrClassifier classifies errors into categorical strings for structured
// logging, used when a connect or ping operation fails so the log
// channel (spec.md §4.H) can report a short label (e.g. "ETIMEDOUT",
// "ECONNREFUSED") alongside the raw error.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to the [ErrClassifier] interface.
//
//	cfg.ErrClassifier = ErrClassifierFunc(errclass.Classify)
type ErrClassifierFunc func(error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// DefaultErrClassifier classifies connect/ping failures by the underlying
// OS syscall errno, via the errclass sub-package.
var DefaultErrClassifier = ErrClassifierFunc(errclass.Classify)
