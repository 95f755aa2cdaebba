// Package keys turns opaque viewing-key strings into reproducible 32-bit
// seeds. A key never decrypts anything in this demo; it only selects which
// synthetic wallet the sampler derives.
package keys

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"golang.org/x/crypto/blake2b"
)

// seedFunc maps an arbitrary string to a uint32. Total: every input,
// including the empty string, yields a valid seed.
type seedFunc func(key string) uint32

// The strategy is picked once at package init: BLAKE2b-256 when available,
// otherwise the labeled non-cryptographic FNV-1a fallback. It never changes
// per call, so repeated hashing of the same key is always consistent.
var hashSeed seedFunc = selectStrategy()

func selectStrategy() seedFunc {
	if _, err := blake2b.New256(nil); err != nil {
		return fnvSeed
	}
	return blake2bSeed
}

func blake2bSeed(key string) uint32 {
	sum := blake2b.Sum256([]byte(key))
	return binary.BigEndian.Uint32(sum[:4])
}

// fnvSeed is the deterministic non-cryptographic fallback. It is not
// collision resistant and is only acceptable because seeds gate synthetic
// demo data, never secrets.
func fnvSeed(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()
}

// SeedFromKey derives the stable 32-bit seed for a viewing key.
func SeedFromKey(key string) uint32 {
	return hashSeed(key)
}

// Fingerprint is the short hex form of a key's seed, safe to display and
// log in place of the key itself.
func Fingerprint(key string) string {
	return fmt.Sprintf("%08x", SeedFromKey(key))
}
