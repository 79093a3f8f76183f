package booking

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewReservationID generates a public reservation code of the form
// RES-<base36 millisecond timestamp>-<5 char base36 suffix>, uppercased.
// The suffix comes from crypto/rand. Uniqueness is timestamp+random with
// no retry loop; the reservations table carries a unique index as the
// actual guard.
func NewReservationID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to the timestamp alone rather than panic mid-request.
		return strings.ToUpper("RES-" + ts)
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return strings.ToUpper("RES-" + ts + "-" + string(buf))
}
