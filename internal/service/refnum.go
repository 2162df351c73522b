package service

import (
	"fmt"
	"math/rand"
	"time"
)

// newRefNumber builds a display reference such as TKT-1712345678901-417
// from wall-clock milliseconds plus a random 0-999 suffix. Two calls in
// the same millisecond can draw the same suffix, so the number is a
// display reference, not a key; rows are keyed by generated UUIDs.
func newRefNumber(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixMilli(), rand.Intn(1000))
}
