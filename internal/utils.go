package internal

import (
	"crypto/md5"
	"encoding/hex"
)

// HashText returns the hex MD5 digest of a text, used as a stable
// cache key for translated strings.
func HashText(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}
