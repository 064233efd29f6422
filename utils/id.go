package utils

import (
	"crypto/rand"
	"strings"
)

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomID returns an n-character random identifier safe for use in file
// and URL paths.
func RandomID(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range buf {
		b.WriteByte(idCharset[int(c)%len(idCharset)])
	}
	return b.String(), nil
}
