// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 identifying one acquisition or discovery run,
// so every log line [LogFunc] emits for that run can be correlated.
//
// This function panics if the system random number generator fails, which
// should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
