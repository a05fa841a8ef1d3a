//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package prng implements the correlated PRNG pair of spec section
// 4.1: each party holds two keystreams, seeded so that every adjacent
// pair of parties shares one seed. All "free" correlations — common
// masks, common γ, common truncation noise — are derived from these
// streams with no communication.
package prng

import (
	"crypto/cipher"
	"io"

	"golang.org/x/crypto/chacha20"

	"github.com/astra-mpc/astra/ring"
)

// SeedSize is the byte length of a PRNG seed, matching chacha20's
// 256-bit key size.
const SeedSize = chacha20.KeySize

// Seed is a 256-bit correlated-randomness seed.
type Seed [SeedSize]byte

// NewSeed samples a fresh random seed from rnd.
func NewSeed(rnd io.Reader) (Seed, error) {
	var s Seed
	_, err := io.ReadFull(rnd, s[:])
	return s, err
}

// Stream is a deterministic keystream derived from a seed, grounded
// on vole/prg.go's prgChaCha20: a zero-nonce ChaCha20 cipher XORed
// against a growing run of zero bytes. Calling Elem or Bytes advances
// the stream; two Streams built from the same seed, read in the same
// order, produce bit-identical output on every party (spec section
// 4.1 / 8 property 6, preprocessing determinism).
type Stream struct {
	cipher cipher.Stream
}

// NewStream creates a keystream from seed.
func NewStream(seed Seed) *Stream {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		// chacha20.NewUnauthenticatedCipher only errors on bad key/nonce
		// sizes, which SeedSize/NonceSize guarantee cannot happen.
		panic(err)
	}
	return &Stream{cipher: c}
}

// Bytes returns the next n keystream bytes.
func (s *Stream) Bytes(n int) []byte {
	out := make([]byte, n)
	s.cipher.XORKeyStream(out, out)
	return out
}

// Elem returns the next ring element drawn from the stream, reduced
// modulo 2^k.
func (s *Stream) Elem(r *ring.Ring) ring.Elem {
	return r.FromBytes(s.Bytes(r.ByteLen()))
}

// Bit returns the next pseudo-random boolean, consuming one byte of
// keystream (matching the engine's byte-granular tape/wire framing;
// no sub-byte PRNG state is carried between calls).
func (s *Stream) Bit() bool {
	return s.Bytes(1)[0]&1 == 1
}

// Pair holds one party's two correlated PRNGs, per spec section 4.1:
// Left is seeded with the seed received from the party to the left
// (my_num-1 mod 3); Right is seeded with this party's own freshly
// sampled seed, which is also sent to the party on the right. As a
// consequence, party i's Right stream is bit-identical to party i+1's
// Left stream.
type Pair struct {
	Left  *Stream
	Right *Stream
}

// NewPairFromSeeds builds a Pair directly from known seeds: left is
// the seed received from the party on this party's left (spec section
// 4.1 step 2), right is this party's own freshly sampled seed (step
// 1), also sent to the party on the right. The network exchange that
// produces these two seeds lives in package party (party.ExchangeSeeds),
// keeping prng free of any network dependency. Used by tests, which
// pass fixed seeds, and by the apps' bootstrap, which passes the seeds
// party.ExchangeSeeds returns.
func NewPairFromSeeds(left, right Seed) *Pair {
	return &Pair{Left: NewStream(left), Right: NewStream(right)}
}
