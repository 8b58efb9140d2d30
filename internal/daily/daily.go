// Package daily derives the deterministic puzzle of the day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDateKey accepts a YYYY-MM-DD key; an empty key means today.
func ParseDateKey(s string, now time.Time) (string, error) {
	if s == "" {
		return DateKey(now), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", err
	}
	return DateKey(t), nil
}

// WordIndex returns a deterministic index for a date key using
// HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(dateKey, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dateKey))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
