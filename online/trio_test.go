//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package online

import (
	"sync"
	"testing"

	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/wire"
)

// TestTrioCombineMatchesExchangeFormula checks that the combine step
// reproduces Trio<T>::exchange()'s exact post-pass_around arithmetic:
//
//	S1 = ownV1 + negLambda1   (sent by party 1)
//	S2 = ownV2 − negLambda2   (sent by party 2)
//	m(1) = S2 − ownV1
//	m(2) = ownV2 − S1
//
// This only checks the Go translation is faithful to that control
// flow — see TrioOnline's doc comment for why a full "opens to x*y"
// claim isn't asserted here.
func TestTrioCombineMatchesExchangeFormula(t *testing.T) {
	r := ring.NewRing(64)
	c1, c2 := party.Pipe()

	ownV1 := r.FromInt64(123)
	negLambda1 := r.FromInt64(-17)
	ownV2 := r.FromInt64(-45)
	negLambda2 := r.FromInt64(9)

	cfg1 := &astraconfig.Config{K: 64, Role: astraconfig.Party1}
	cfg2 := &astraconfig.Config{K: 64, Role: astraconfig.Party2}
	o1 := NewTrioOnline(cfg1, r, c1, nil)
	o2 := NewTrioOnline(cfg2, r, c2, nil)

	var wg sync.WaitGroup
	var res1, res2 ring.Elem
	var err1, err2 error
	wg.Add(2)
	go func() {
		defer wg.Done()
		buf := wire.NewBuffer()
		o1.storeOutgoing(buf, ownV1, negLambda1)
		results, e := o1.combine(buf, []ring.Elem{ownV1}, []ring.Elem{negLambda1})
		if e != nil {
			err1 = e
			return
		}
		res1 = results[0].M
	}()
	go func() {
		defer wg.Done()
		buf := wire.NewBuffer()
		o2.storeOutgoing(buf, ownV2, negLambda2)
		results, e := o2.combine(buf, []ring.Elem{ownV2}, []ring.Elem{negLambda2})
		if e != nil {
			err2 = e
			return
		}
		res2 = results[0].M
	}()
	wg.Wait()

	if err1 != nil {
		t.Fatalf("party 1: %v", err1)
	}
	if err2 != nil {
		t.Fatalf("party 2: %v", err2)
	}

	s1 := r.Add(ownV1, negLambda1)
	s2 := r.Sub(ownV2, negLambda2)
	wantM1 := r.Sub(s2, ownV1)
	wantM2 := r.Sub(ownV2, s1)

	if !ring.Equal(res1, wantM1) {
		t.Fatalf("party 1 m = %s, want %s", res1, wantM1)
	}
	if !ring.Equal(res2, wantM2) {
		t.Fatalf("party 2 m = %s, want %s", res2, wantM2)
	}
}
