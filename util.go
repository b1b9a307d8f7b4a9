// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import "strconv"

func itoa(n int) string {
	return strconv.Itoa(n)
}
