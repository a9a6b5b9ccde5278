// Package ident produces short random identifiers for per-trial artifacts.
package ident

import (
	"crypto/rand"
	"fmt"
)

const (
	letters      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	alphanumeric = letters + "0123456789"
)

// Generate returns an identifier of exactly n characters. The first
// character is always a letter so the result stays usable where a leading
// digit is rejected (environment variable names, label keys). Bytes come
// from the platform CSPRNG; n <= 0 yields the empty string.
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	out := make([]byte, n)
	out[0] = letters[int(buf[0])%len(letters)]
	for i := 1; i < n; i++ {
		out[i] = alphanumeric[int(buf[i])%len(alphanumeric)]
	}
	return string(out), nil
}
