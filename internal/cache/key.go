package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyFromArgs derives a deterministic cache key from an ordered argument
// list. Same arguments in the same order always yield the same key;
// reordering changes it. The digest is for uniform key distribution, not
// security.
func KeyFromArgs(args ...string) string {
	h := sha256.New()
	for _, arg := range args {
		h.Write([]byte(arg))
	}
	return hex.EncodeToString(h.Sum(nil))
}
