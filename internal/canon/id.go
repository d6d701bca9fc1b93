package canon

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestSeed hashes the canonical form of an arbitrary seed string. Used for
// occurrence ids and note keys, which are positional identities rather than
// content identities.
func DigestSeed(seed string) string {
	sum := sha256.Sum256([]byte(Canonicalize(seed)))
	return hex.EncodeToString(sum[:])
}

// ContentID derives the 64-hex content identifier for a canonical key and
// returns it together with the exact string that was hashed.
func ContentID(key string) (id string, canonicalInput string) {
	canonicalInput = Canonicalize(key)
	sum := sha256.Sum256([]byte(canonicalInput))
	return hex.EncodeToString(sum[:]), canonicalInput
}
