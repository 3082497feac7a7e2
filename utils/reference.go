package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewBookingReference builds the display reference for a booking, e.g.
// "BK-20250610-3F9A21C4". Uniqueness is enforced by the DB index; the
// caller retries on collision.
func NewBookingReference(now time.Time) string {
	return fmt.Sprintf("BK-%s-%s", now.Format("20060102"), randomSuffix(8))
}

// NewReceiptNumber builds the display number for a payment receipt.
func NewReceiptNumber(now time.Time) string {
	return fmt.Sprintf("RCPT-%s-%s", now.Format("20060102"), randomSuffix(8))
}

func randomSuffix(n int) string {
	s := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
