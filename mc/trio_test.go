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

// TestTrioMCSumsOwnFields checks that TrioMC reproduces
// TrioMC::prepare_summand's exact reduction — party 1 contributes its
// raw M, party 2 its raw NegLambda, summed with no further
// adjustment. As with online/trio_test.go, this checks the Go
// translation is faithful to that formula; see TrioMC's doc comment
// for why a general "opens to the original plaintext" claim isn't
// made here.
func TestTrioMCSumsOwnFields(t *testing.T) {
	r := ring.NewRing(64)
	c1, c2 := party.Pipe()

	s1 := share.Share{M: r.FromInt64(77), NegLambda: r.FromInt64(-5)}
	s2 := share.Share{M: r.FromInt64(-30), NegLambda: r.FromInt64(12)}

	cfg1 := &astraconfig.Config{K: 64, Role: astraconfig.Party1}
	cfg2 := &astraconfig.Config{K: 64, Role: astraconfig.Party2}
	o1 := NewTrioMC(cfg1, r, c1)
	o2 := NewTrioMC(cfg2, r, c2)

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

	want := r.Add(s1.M, s2.NegLambda)
	if !ring.Equal(got1[0], want) {
		t.Fatalf("party 1 opened %s, want %s", got1[0], want)
	}
	if !ring.Equal(got2[0], want) {
		t.Fatalf("party 2 opened %s, want %s", got2[0], want)
	}
}
