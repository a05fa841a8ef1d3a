//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package ring

import (
	"crypto/rand"
	"testing"
)

func TestAddSubNeg(t *testing.T) {
	for _, k := range SupportedBits {
		r := NewRing(k)
		a := r.FromInt64(3)
		b := r.FromInt64(5)

		sum := r.Add(a, b)
		if r.Int64(sum) != 8 {
			t.Fatalf("k=%d: 3+5 = %v, want 8", k, sum)
		}

		diff := r.Sub(a, b)
		if r.Int64(diff) != -2 {
			t.Fatalf("k=%d: 3-5 = %v, want -2", k, diff)
		}

		neg := r.Neg(a)
		if !Equal(r.Add(a, neg), r.Zero()) {
			t.Fatalf("k=%d: a + (-a) != 0", k)
		}
	}
}

func TestMulSignedNegative(t *testing.T) {
	r := NewRing(64)
	x := r.FromInt64(-4)
	y := r.FromInt64(7)
	got := r.Mul(x, y)
	if r.Int64(got) != -28 {
		t.Fatalf("(-4)*7 = %v, want -28", got)
	}
}

func TestRsh(t *testing.T) {
	r := NewRing(64)
	x := r.FromUint64(1024)
	got := r.Rsh(x, 10)
	if r.Int64(got) != 1 {
		t.Fatalf("1024>>10 = %v, want 1", got)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	for _, k := range SupportedBits {
		r := NewRing(k)
		x, err := r.Random(rand.Reader)
		if err != nil {
			t.Fatalf("k=%d: Random: %v", k, err)
		}
		b := r.Bytes(x)
		if len(b) != r.ByteLen() {
			t.Fatalf("k=%d: Bytes len = %d, want %d", k, len(b), r.ByteLen())
		}
		y := r.FromBytes(b)
		if !Equal(x, y) {
			t.Fatalf("k=%d: FromBytes(Bytes(x)) != x", k)
		}
	}
}

func TestMSB(t *testing.T) {
	r := NewRing(64)
	x := r.FromInt64(-1)
	if r.MSB(x) != 1 {
		t.Fatalf("MSB(-1) = 0, want 1")
	}
	y := r.FromInt64(1)
	if r.MSB(y) != 0 {
		t.Fatalf("MSB(1) = 1, want 0")
	}
}
