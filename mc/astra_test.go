//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package mc

import (
	"sync"
	"testing"

	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
)

// TestAstraMCOpensSharedValue builds a fresh Astra sharing of a known
// value by hand (no preprocessing machinery needed — Open doesn't
// touch the helper) and checks both parties recover it.
func TestAstraMCOpensSharedValue(t *testing.T) {
	r := ring.NewRing(64)
	c1, c2 := party.Pipe()

	x := r.FromInt64(123)
	lambda1 := r.FromInt64(-9)
	lambda2 := r.FromInt64(40)
	m := r.Add(x, r.Add(lambda1, lambda2))

	s1 := share.Share{M: m, NegLambda: r.Neg(lambda1)}
	s2 := share.Share{M: m, NegLambda: r.Neg(lambda2)}

	cfg1 := &astraconfig.Config{K: 64, Role: astraconfig.Party1}
	cfg2 := &astraconfig.Config{K: 64, Role: astraconfig.Party2}
	o1 := NewAstraMC(cfg1, r, c1)
	o2 := NewAstraMC(cfg2, r, c2)

	var wg sync.WaitGroup
	var got1, got2 []ring.Elem
	var err1, err2 error
	wg.Add(2)
	go func() {
		defer wg.Done()
		got1, err1 = o1.OpenBatch([]share.Share{s1})
	}()
	go func() {
		defer wg.Done()
		got2, err2 = o2.OpenBatch([]share.Share{s2})
	}()
	wg.Wait()

	if err1 != nil {
		t.Fatalf("party 1: %v", err1)
	}
	if err2 != nil {
		t.Fatalf("party 2: %v", err2)
	}
	if !ring.Equal(got1[0], x) {
		t.Fatalf("party 1 opened %s, want %s", got1[0], x)
	}
	if !ring.Equal(got2[0], x) {
		t.Fatalf("party 2 opened %s, want %s", got2[0], x)
	}
}
