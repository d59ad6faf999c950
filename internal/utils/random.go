package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

func GenerateRandomBase36(length int) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(base36Chars)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = base36Chars[num.Int64()]
	}

	return string(result)
}

// GenerateBookingNumber builds a human-readable reference: prefix, base-36
// encoded millisecond timestamp, and a short random suffix, all upper-cased.
// Collisions are statistically negligible, not cryptographically impossible.
func GenerateBookingNumber() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := GenerateRandomBase36(BookingNumberRandomLength)
	return BookingNumberPrefix + strings.ToUpper(timestamp+suffix)
}

func SecureRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}
