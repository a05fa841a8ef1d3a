//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package share

import "github.com/astra-mpc/astra/ring"

// LocalMulP0Trio is the helper's local summand for a Trio
// multiplication tuple, grounded on TrioPrepShare::local_mul_P0:
// λx⁽²⁾*λy⁽²⁾ - (λx⁽¹⁾-λx⁽²⁾)*(λy⁽¹⁾-λy⁽²⁾). Unlike Astra, the helper's
// summand folds in the product of the mask-share differences; of the
// online parties, party 1 carries the m·λ cross terms and party 2
// none.
func LocalMulP0Trio(r *ring.Ring, x, y PrepShare) ring.Elem {
	t1 := r.Mul(x.Lambda2, y.Lambda2)
	dx := r.Sub(x.Lambda1, x.Lambda2)
	dy := r.Sub(y.Lambda1, y.Lambda2)
	return r.Sub(t1, r.Mul(dx, dy))
}

// LocalMulP1Trio is party 1's local summand, grounded on
// TrioShare::local_mul_P1 ("m(1)*other.lambda(1) + other.m(1)*this->lambda(1)").
// Note this uses λ directly, not −λ as Astra's equivalent does.
func LocalMulP1Trio(r *ring.Ring, x, y Share) ring.Elem {
	lx, ly := x.Lambda(r), y.Lambda(r)
	return r.Add(r.Mul(x.M, ly), r.Mul(y.M, lx))
}

// LocalMulP2Trio is party 2's local summand, grounded on
// TrioShare::local_mul_P2 ("m(2)*other.m(2)"): unlike Astra, party 2
// carries no cross term at all in Trio.
func LocalMulP2Trio(r *ring.Ring, x, y Share) ring.Elem {
	return r.Mul(x.M, y.M)
}

// TrioCommonM recovers the single public value Astra's M field already
// is, from a Trio share whose M is only ever common across the two
// online parties after the online Input round — not after a
// multiplication, per TrioOnline's asymmetric combine. Grounded on
// TrioShare::common_m ("m(-1) - neg_lambda(-1)"): both online parties
// apply this same local subtraction, with no exchange, and land on the
// identical result x + λ(x), the same quantity Astra's M already holds
// directly (AstraShare::common_m is the identity m(-1)). Any consumer
// written against a common M — trunc's ArithRsh/MSB extraction, most
// directly — needs a Trio multiplication's output passed through this
// first; a raw Input share, or anything built from one by Add/Sub/
// ScaleConst/AddConst alone, is already common and needs no conversion
// (those are the only Trio shares this engine's truncation scenarios
// ever hand to TruncBatch).
func TrioCommonM(r *ring.Ring, s Share) Share {
	return Share{M: r.Sub(s.M, s.NegLambda), NegLambda: s.NegLambda}
}
