//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package trunc implements probabilistic truncation (spec section 4.7):
// dividing a secret-shared ring element by 2ᵐ with rounding that may
// err by ±1, split into a cheap "big gap" engine and a
// correction-based "small gap" engine per Mohassel-Zhang, chosen per
// tuple from the gap between the ring's bit-width and the value's
// declared bit-length bound (see Classify).
package trunc

import "github.com/astra-mpc/astra/ring"

// Gap classifies a truncation tuple by how much headroom the ring
// gives the shift before statistical leakage becomes a concern.
type Gap int

const (
	BigGap Gap = iota
	SmallGap
)

func (g Gap) String() string {
	if g == BigGap {
		return "big-gap"
	}
	return "small-gap"
}

// Tuple is one truncation's static parameters: shift the input right
// by M bits, where the input is declared to fit within K bits — a
// per-value bound asserted independent of the ring's own bit-width
// (Width; the ring can be, and often is, wider than any one value's
// declared range) — with Kappa bits of statistical security.
// Grounded on Processor/TruncPrTuple.h, whose constructor parses k and
// m per instruction (asserting m < k) separately from T::n_bits(), the
// MPC type's own fixed ring width.
type Tuple struct {
	Width, K, M, Kappa int
}

// Classify implements TruncPrTupleWithGap's big_gap_ test exactly:
// width - k >= kappa is a big gap (the value's declared bound leaves
// enough unused ring headroom that a one-round shift-and-correct
// protocol leaks nothing statistically); otherwise small gap,
// requiring the Mohassel-Zhang MSB correction. Note the test has no m
// term: it compares the value's bit-length bound against the ring's
// width, not against the shift amount.
func Classify(width, k, kappa int) Gap {
	if width-k >= kappa {
		return BigGap
	}
	return SmallGap
}

// Gap reports this tuple's classification.
func (t Tuple) Gap() Gap {
	return Classify(t.Width, t.K, t.Kappa)
}

// addBefore is TruncPrTuple::add_before: 2^(k-1), the bias added
// before a logical shift to emulate an arithmetic (sign-preserving)
// one.
func addBefore(r *ring.Ring, k int) ring.Elem {
	return shiftedOne(r, k-1)
}

// subtractAfter is TruncPrTuple::subtract_after: 2^(k-m-1), the bias
// removed after the logical shift to undo addBefore's effect at the
// shifted bit-width.
func subtractAfter(r *ring.Ring, k, m int) ring.Elem {
	return shiftedOne(r, k-m-1)
}

// shiftedOne returns 2^n mod 2^k, built by repeated doubling since
// Ring exposes no left-shift primitive of its own.
func shiftedOne(r *ring.Ring, n int) ring.Elem {
	v := r.FromInt64(1)
	for i := 0; i < n; i++ {
		v = r.Add(v, v)
	}
	return v
}

// ArithRsh is Z2k's signed_rshift, expressed with Ring's logical Rsh
// via the add_before/subtract_after bias trick of TruncPrTuple: add
// 2^(k-1) to shift the two's-complement range into the logical one,
// shift, then subtract 2^(k-1-m) to undo the bias at the new
// bit-width. Equivalent to floor(x / 2^m) over x's signed
// representative.
func ArithRsh(r *ring.Ring, x ring.Elem, k, m int) ring.Elem {
	biased := r.Add(x, addBefore(r, k))
	shifted := r.Rsh(biased, uint(m))
	return r.Sub(shifted, subtractAfter(r, k, m))
}
