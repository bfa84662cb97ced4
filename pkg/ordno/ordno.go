// Package ordno generates order numbers: a "T" prefix, the current time in
// base36 milliseconds, and 8 random hex characters. The random suffix makes
// collisions negligible; a unique index on order_no catches the rest.
package ordno

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

func Generate() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to the nanosecond clock rather than panic mid-order.
		return "T" + strings.ToUpper(ts) + fallbackSuffix(time.Now().UnixNano())
	}

	return "T" + strings.ToUpper(ts) + strings.ToUpper(hex.EncodeToString(buf))
}

// fallbackSuffix keeps the 8-uppercase-hex suffix shape when randomness is
// unavailable.
func fallbackSuffix(nanos int64) string {
	return fmt.Sprintf("%08X", nanos&0xffffffff)
}
