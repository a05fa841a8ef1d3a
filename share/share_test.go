//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package share

import (
	"testing"

	"github.com/astra-mpc/astra/ring"
)

// splitShares builds the three parties' views of a sharing of x with
// an arbitrary mask split lambda1+lambda2, the way the helper would
// hand them out during preprocessing.
func splitShares(r *ring.Ring, x, lambda1, lambda2 ring.Elem) (prep PrepShare, p1, p2 Share) {
	prep = PrepShare{Lambda1: lambda1, Lambda2: lambda2}
	m := r.Add(x, prep.Sum(r))
	return prep, Share{M: m, NegLambda: r.Neg(lambda1)}, Share{M: m, NegLambda: r.Neg(lambda2)}
}

func TestAstraLocalMulReconstructsProduct(t *testing.T) {
	r := ring.NewRing(64)
	x, y := r.FromInt64(7), r.FromInt64(-4)
	lx1, lx2 := r.FromInt64(11), r.FromInt64(-19)
	ly1, ly2 := r.FromInt64(5), r.FromInt64(23)

	prepX, x1, x2 := splitShares(r, x, lx1, lx2)
	prepY, y1, y2 := splitShares(r, y, ly1, ly2)

	p0 := LocalMulP0Astra(r, prepX, prepY)
	p1 := LocalMulP1Astra(r, x1, y1)
	p2 := LocalMulP2Astra(r, x2, y2)

	got := r.Add(p0, r.Add(p1, p2))
	want := r.Mul(x, y)
	if !ring.Equal(got, want) {
		t.Fatalf("astra local-mul sum = %s, want %s", got, want)
	}
}

// Trio's local-mul summands do not sum to x*y in closed form the way
// Astra's do: the online combination in Trio.hpp folds in the
// per-party tape-correlated r01/neg_lambda terms asymmetrically
// (party 1 computes received-local, party 2 computes local-received),
// so no closed-form identity over all three summands is checked here,
// and online/trio_test.go checks only the combine formula. This test
// checks the helper's summand against its closed form.
func TestTrioLocalMulP0MatchesClosedForm(t *testing.T) {
	r := ring.NewRing(64)
	lx1, lx2 := r.FromInt64(3), r.FromInt64(-9)
	ly1, ly2 := r.FromInt64(17), r.FromInt64(2)
	px := PrepShare{Lambda1: lx1, Lambda2: lx2}
	py := PrepShare{Lambda1: ly1, Lambda2: ly2}

	got := LocalMulP0Trio(r, px, py)
	want := r.Sub(r.Mul(lx2, ly2), r.Mul(r.Sub(lx1, lx2), r.Sub(ly1, ly2)))
	if !ring.Equal(got, want) {
		t.Fatalf("LocalMulP0Trio = %s, want %s", got, want)
	}
}

func TestLinearOpsStayConsistent(t *testing.T) {
	r := ring.NewRing(64)
	x, y := r.FromInt64(10), r.FromInt64(3)
	lx1, lx2 := r.FromInt64(1), r.FromInt64(2)
	ly1, ly2 := r.FromInt64(4), r.FromInt64(5)

	_, x1, x2 := splitShares(r, x, lx1, lx2)
	_, y1, y2 := splitShares(r, y, ly1, ly2)

	sum1 := Add(r, x1, y1)
	sum2 := Add(r, x2, y2)
	if !ring.Equal(sum1.M, sum2.M) {
		t.Fatalf("both parties must agree on the masked value of a sum")
	}
	reconstructedLambda := r.Add(r.Neg(sum1.NegLambda), r.Neg(sum2.NegLambda))
	want := r.Add(x, y)
	got := r.Sub(sum1.M, reconstructedLambda)
	if !ring.Equal(got, want) {
		t.Fatalf("sum reconstructs to %s, want %s", got, want)
	}
}

func TestConstantOpensToItself(t *testing.T) {
	r := ring.NewRing(128)
	c := r.FromInt64(-42)
	s := Constant(c, r)
	if !ring.Equal(s.M, c) {
		t.Fatalf("constant m = %s, want %s", s.M, c)
	}
	if !ring.Equal(s.Lambda(r), r.Zero()) {
		t.Fatalf("constant lambda must be zero")
	}
}
