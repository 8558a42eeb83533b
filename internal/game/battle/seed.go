package battle

import (
	"encoding/binary"
	"math/rand/v2"

	"golang.org/x/crypto/blake2b"
)

// Seed derives a reproducible random source from a label and a sequence
// number. The same pair always yields the same stream; sweeps use n to
// give every battle its own stream under one label.
func Seed(label string, n uint64) *rand.Rand {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)

	h, _ := blake2b.New256(nil) // nil key never fails
	h.Write([]byte(label))
	h.Write(buf[:])

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return rand.New(rand.NewChaCha8(key))
}
