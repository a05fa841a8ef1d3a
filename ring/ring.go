//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package ring implements element arithmetic in ℤ/2ᵏ, the ring every
// Astra/Trio share lives in. A Ring is a modulus domain object: it
// carries the bit-width k and normalizes every result of Add/Sub/Neg/
// Mul/Rsh back into the canonical representative [0, 2^k).
//
// All widths, including k=64, go through math/big; k never exceeds
// 512 bits and these engines are not on a per-gate hot path the way
// a circuit evaluator is, so the extra allocation isn't worth a
// second uint64 code path to keep in sync.
package ring

import (
	"io"
	"math/big"
)

// SupportedBits lists the ring bit-widths the engine supports.
var SupportedBits = []int{64, 128, 192, 256, 384, 512}

// Ring is a modulus domain object for ℤ/2ᵏ.
type Ring struct {
	K    int
	mod  *big.Int // 2^K
	mask *big.Int // 2^K - 1
}

// NewRing creates the ring ℤ/2ᵏ. Panics if k is not one of
// SupportedBits, per spec section 3.
func NewRing(k int) *Ring {
	ok := false
	for _, b := range SupportedBits {
		if b == k {
			ok = true
			break
		}
	}
	if !ok {
		panic("ring: unsupported bit-width")
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(k))
	mask := new(big.Int).Sub(mod, big.NewInt(1))
	return &Ring{K: k, mod: mod, mask: mask}
}

// ByteLen returns the canonical limb byte length ⌈k/8⌉.
func (r *Ring) ByteLen() int {
	return (r.K + 7) / 8
}

// Elem is an element of ℤ/2ᵏ, always kept normalized to [0, 2^K).
type Elem struct {
	v *big.Int
}

// Zero returns the additive identity.
func (r *Ring) Zero() Elem {
	return Elem{v: new(big.Int)}
}

// FromInt64 lifts a signed int64 into the ring.
func (r *Ring) FromInt64(x int64) Elem {
	return r.reduce(big.NewInt(x))
}

// FromUint64 lifts an unsigned uint64 into the ring.
func (r *Ring) FromUint64(x uint64) Elem {
	return r.reduce(new(big.Int).SetUint64(x))
}

func (r *Ring) reduce(x *big.Int) Elem {
	v := new(big.Int).And(x, r.mask)
	if v.Sign() < 0 {
		v.Add(v, r.mod)
	}
	return Elem{v: v}
}

// Add returns a+b mod 2^K.
func (r *Ring) Add(a, b Elem) Elem {
	return r.reduce(new(big.Int).Add(a.v, b.v))
}

// Sub returns a-b mod 2^K.
func (r *Ring) Sub(a, b Elem) Elem {
	return r.reduce(new(big.Int).Sub(a.v, b.v))
}

// Neg returns -a mod 2^K.
func (r *Ring) Neg(a Elem) Elem {
	return r.reduce(new(big.Int).Neg(a.v))
}

// Mul returns a*b mod 2^K.
func (r *Ring) Mul(a, b Elem) Elem {
	return r.reduce(new(big.Int).Mul(a.v, b.v))
}

// Rsh returns the logical (unsigned) right shift of a by n bits
// within the k-bit representation.
func (r *Ring) Rsh(a Elem, n uint) Elem {
	return r.reduce(new(big.Int).Rsh(a.v, n))
}

// Bit returns bit i (0 = least significant) of a's canonical
// representative.
func (r *Ring) Bit(a Elem, i int) uint {
	return a.v.Bit(i)
}

// MSB returns the most significant (sign) bit, bit k-1.
func (r *Ring) MSB(a Elem) uint {
	return a.v.Bit(r.K - 1)
}

// Random draws a uniformly random element using rnd as the entropy
// source.
func (r *Ring) Random(rnd io.Reader) (Elem, error) {
	buf := make([]byte, r.ByteLen())
	if _, err := io.ReadFull(rnd, buf); err != nil {
		return Elem{}, err
	}
	return r.FromBytes(buf), nil
}

// Bytes serializes a into the canonical little-endian, fixed-length
// (⌈k/8⌉ byte) limb representation used by both the wire format and
// the preprocessing tape (spec section 6).
func (r *Ring) Bytes(a Elem) []byte {
	out := make([]byte, r.ByteLen())
	b := a.v.Bytes() // big-endian, no leading zeros
	for i := 0; i < len(b); i++ {
		out[i] = b[len(b)-1-i]
	}
	return out
}

// FromBytes deserializes a canonical little-endian limb.
func (r *Ring) FromBytes(b []byte) Elem {
	be := make([]byte, len(b))
	for i := 0; i < len(b); i++ {
		be[i] = b[len(b)-1-i]
	}
	return r.reduce(new(big.Int).SetBytes(be))
}

// Equal reports whether a and b are the same ring element.
func Equal(a, b Elem) bool {
	return a.v.Cmp(b.v) == 0
}

// Int64 returns a's signed two's-complement int64 interpretation.
// Only meaningful for callers that know the value fits; used by tests
// and human-readable debug output.
func (r *Ring) Int64(a Elem) int64 {
	v := new(big.Int).Set(a.v)
	half := new(big.Int).Rsh(r.mod, 1)
	if v.Cmp(half) >= 0 {
		v.Sub(v, r.mod)
	}
	return v.Int64()
}

// String renders a's unsigned decimal representative.
func (a Elem) String() string {
	return a.v.String()
}
