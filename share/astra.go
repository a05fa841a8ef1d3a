//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package share

import "github.com/astra-mpc/astra/ring"

// astraCross computes the symmetric cross term shared by both of
// Astra's online local-mul summands: m(x)*l(y) + m(y)*l(x), where
// l(·) denotes the −λ share stored directly in NegLambda.
func astraCross(r *ring.Ring, x, y Share) ring.Elem {
	return r.Add(r.Mul(x.M, y.NegLambda), r.Mul(y.M, x.NegLambda))
}

// LocalMulP0Astra is the helper's local summand for an Astra
// multiplication tuple: the product of the two full masks, λx*λy,
// grounded on AstraPrepShare::local_mul_P0 ("this->sum() * other.sum()").
func LocalMulP0Astra(r *ring.Ring, x, y PrepShare) ring.Elem {
	return r.Mul(x.Sum(r), y.Sum(r))
}

// LocalMulP1Astra is party 1's local summand, grounded on
// AstraShare::local_mul_P1.
func LocalMulP1Astra(r *ring.Ring, x, y Share) ring.Elem {
	return astraCross(r, x, y)
}

// LocalMulP2Astra is party 2's local summand, grounded on
// AstraShare::local_mul_P2 ("m(2)*other.m(2) + local_mul_P1(other)"):
// party 2 additionally knows both m values, so it also contributes
// the mm term.
func LocalMulP2Astra(r *ring.Ring, x, y Share) ring.Elem {
	return r.Add(r.Mul(x.M, y.M), astraCross(r, x, y))
}
