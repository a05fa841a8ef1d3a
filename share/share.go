//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package share implements the additive two-party-masked sharing
// algebra common to both Astra and Trio (spec section 3 / 4.2): a
// value x is represented as m = x + λx, with the mask λx split into
// λx⁽¹⁾ held by party 1 and λx⁽²⁾ held by party 2. The online parties
// each hold (m, −λ own-share); the helper holds both mask shares and
// never sees m.
//
// Share holds one online party's view of a sharing: the masked value
// m (known once the online round has reconstructed it) and this
// party's own negated mask share. PrepShare holds the helper's view:
// both mask shares, never reduced to a single m.
//
// The protocol-specific local multiplication summands
// (LocalMulP0/P1/P2Astra, LocalMulP0/P1/P2Trio) live in astra.go and
// trio.go: the two families disagree on exactly how the cross terms
// are split across the three parties (spec section 4.2 table). Astra's
// three summands add up to x*y exactly; Trio's do not, and its online
// combine folds in the tape-correlated r01 and mask terms instead.
package share

import "github.com/astra-mpc/astra/ring"

// Share is one online party's share of a value: m = x + λx, and this
// party's own −λx share. A Share never carries the other party's mask
// share; that only exists inside PrepShare on the helper.
type Share struct {
	M         ring.Elem
	NegLambda ring.Elem
}

// Lambda returns this party's own mask share, λx = −(−λx).
func (s Share) Lambda(r *ring.Ring) ring.Elem {
	return r.Neg(s.NegLambda)
}

// Constant embeds a clear constant c as a sharing with m = c and
// λ = 0: every party's local state already equals (c, 0), so no
// preprocessing or exchange is required (spec section 3 invariant,
// "Open(constant(c)) == c").
func Constant(c ring.Elem, r *ring.Ring) Share {
	return Share{M: c, NegLambda: r.Zero()}
}

// Add returns the sharing of x+y, computed entirely locally: linear
// operations never touch the network or the preprocessing tape.
func Add(r *ring.Ring, a, b Share) Share {
	return Share{M: r.Add(a.M, b.M), NegLambda: r.Add(a.NegLambda, b.NegLambda)}
}

// Sub returns the sharing of x-y.
func Sub(r *ring.Ring, a, b Share) Share {
	return Share{M: r.Sub(a.M, b.M), NegLambda: r.Sub(a.NegLambda, b.NegLambda)}
}

// Neg returns the sharing of -x.
func Neg(r *ring.Ring, a Share) Share {
	return Share{M: r.Neg(a.M), NegLambda: r.Neg(a.NegLambda)}
}

// ScaleConst returns the sharing of c*x for a public constant c.
func ScaleConst(r *ring.Ring, a Share, c ring.Elem) Share {
	return Share{M: r.Mul(a.M, c), NegLambda: r.Mul(a.NegLambda, c)}
}

// AddConst returns the sharing of x+c for a public constant c: only
// the masked value shifts, the mask itself is untouched.
func AddConst(r *ring.Ring, a Share, c ring.Elem) Share {
	return Share{M: r.Add(a.M, c), NegLambda: a.NegLambda}
}

// PrepShare is the helper's bookkeeping pair for one value's mask,
// λx⁽¹⁾ and λx⁽²⁾, before it is handed out (one share per online
// party, via the preprocessing tape).
type PrepShare struct {
	Lambda1 ring.Elem
	Lambda2 ring.Elem
}

// Sum returns λx⁽¹⁾+λx⁽²⁾, the full mask λx as the helper alone can
// compute it.
func (p PrepShare) Sum(r *ring.Ring) ring.Elem {
	return r.Add(p.Lambda1, p.Lambda2)
}

// AddPrep returns the helper's sharing of λ(x+y) = λx+λy.
func AddPrep(r *ring.Ring, a, b PrepShare) PrepShare {
	return PrepShare{Lambda1: r.Add(a.Lambda1, b.Lambda1), Lambda2: r.Add(a.Lambda2, b.Lambda2)}
}
