// Package ids generates the short uppercase confirmation codes shown to
// visitors, backed by UUID randomness.
package ids

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Code lengths for the two confirmation kinds.
const (
	OrderNumberLen        = 9
	ConfirmationNumberLen = 8
)

// OrderNumber returns a 9-character order number.
func OrderNumber() string {
	return ShortCode(OrderNumberLen)
}

// ConfirmationNumber returns an 8-character reservation confirmation number.
func ConfirmationNumber() string {
	return ShortCode(ConfirmationNumberLen)
}

// ShortCode returns an n-character uppercase base36 code derived from a
// random UUID.
func ShortCode(n int) string {
	u := uuid.New()
	s := strings.ToUpper(strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36))
	for len(s) < n {
		s += strings.ToUpper(strconv.FormatUint(binary.BigEndian.Uint64(u[8:]), 36))
	}
	return s[:n]
}
