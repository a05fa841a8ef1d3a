//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package online

import (
	"crypto/rand"
	"path/filepath"
	"sync"
	"testing"

	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/prep"
	"github.com/astra-mpc/astra/prng"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
	"github.com/astra-mpc/astra/tape"
)

// setupRing builds the 3-party in-memory ring and every party's
// correlated PRNG pair, exactly as a real deployment's startup
// exchange would (spec section 4.1).
func setupRing(t *testing.T) ([3][3]*party.Conn, [3]*prng.Pair) {
	t.Helper()
	conns := party.Ring3()
	var pairs [3]*prng.Pair
	var wg sync.WaitGroup
	var errOnce [3]error
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			left, mine, err := party.ExchangeSeeds(rand.Reader, conns[i][(i+1)%3], conns[i][(i+2)%3])
			if err != nil {
				errOnce[i] = err
				return
			}
			pairs[i] = prng.NewPairFromSeeds(left, mine)
		}(i)
	}
	wg.Wait()
	for i, err := range errOnce {
		if err != nil {
			t.Fatalf("party %d seed exchange: %v", i, err)
		}
	}
	return conns, pairs
}

// TestAstraOnlineMultiplicationReconstructs drives the full
// preprocessing-then-online pipeline for one multiplication across
// three simulated parties and checks the resulting masked value opens
// to the expected product (spec section 8 scenario: signed
// multiplication).
func TestAstraOnlineMultiplicationReconstructs(t *testing.T) {
	r := ring.NewRing(64)
	conns, pairs := setupRing(t)
	dir := t.TempDir()

	x, y := r.FromInt64(-4), r.FromInt64(7)
	lx1, lx2 := r.FromInt64(11), r.FromInt64(-3)
	ly1, ly2 := r.FromInt64(5), r.FromInt64(9)
	mx := r.Add(x, r.Add(lx1, lx2))
	my := r.Add(y, r.Add(ly1, ly2))

	pairX := share.PrepShare{Lambda1: lx1, Lambda2: lx2}
	pairY := share.PrepShare{Lambda1: ly1, Lambda2: ly2}

	x1 := share.Share{M: mx, NegLambda: r.Neg(lx1)}
	x2 := share.Share{M: mx, NegLambda: r.Neg(lx2)}
	y1 := share.Share{M: my, NegLambda: r.Neg(ly1)}
	y2 := share.Share{M: my, NegLambda: r.Neg(ly2)}

	var wg sync.WaitGroup
	var outMask share.PrepShare
	var result1, result2 share.Share
	var err0, err1, err2 error

	wg.Add(3)
	go func() {
		defer wg.Done()
		cfg := &astraconfig.Config{K: 64, Role: astraconfig.Helper}
		p := prep.NewAstraPrepProtocol(cfg, r, pairs[0], conns[0][2], nil)
		masks, err := p.PrepareMulBatch([]prep.MulOperands{{X: pairX, Y: pairY}})
		if err != nil {
			err0 = err
			return
		}
		outMask = masks[0]
	}()
	go func() {
		defer wg.Done()
		cfg := &astraconfig.Config{K: 64, Role: astraconfig.Party1}
		w, e := tape.Create(filepath.Join(dir, "p1.tape"), 1)
		if e != nil {
			err1 = e
			return
		}
		pp := prep.NewAstraPrepProtocol(cfg, r, pairs[1], nil, w)
		if _, e := pp.PrepareMulBatch([]prep.MulOperands{{}}); e != nil {
			err1 = e
			return
		}
		if e := w.Close(); e != nil {
			err1 = e
			return
		}
		rd, e := tape.Open(filepath.Join(dir, "p1.tape"), 1)
		if e != nil {
			err1 = e
			return
		}
		defer rd.Close()
		onl := NewAstraOnline(cfg, r, conns[1][2], rd)
		results, e := onl.MulBatch([][2]share.Share{{x1, y1}})
		if e != nil {
			err1 = e
			return
		}
		result1 = results[0]
	}()
	go func() {
		defer wg.Done()
		cfg := &astraconfig.Config{K: 64, Role: astraconfig.Party2}
		w, e := tape.Create(filepath.Join(dir, "p2.tape"), 2)
		if e != nil {
			err2 = e
			return
		}
		pp := prep.NewAstraPrepProtocol(cfg, r, pairs[2], conns[2][0], w)
		if _, e := pp.PrepareMulBatch([]prep.MulOperands{{}}); e != nil {
			err2 = e
			return
		}
		if e := w.Close(); e != nil {
			err2 = e
			return
		}
		rd, e := tape.Open(filepath.Join(dir, "p2.tape"), 2)
		if e != nil {
			err2 = e
			return
		}
		defer rd.Close()
		onl := NewAstraOnline(cfg, r, conns[2][1], rd)
		results, e := onl.MulBatch([][2]share.Share{{x2, y2}})
		if e != nil {
			err2 = e
			return
		}
		result2 = results[0]
	}()
	wg.Wait()

	for i, err := range []error{err0, err1, err2} {
		if err != nil {
			t.Fatalf("party %d: %v", i, err)
		}
	}

	if !ring.Equal(result1.M, result2.M) {
		t.Fatalf("party 1 and party 2 disagree on m(xy): %s vs %s", result1.M, result2.M)
	}
	lambdaTotal := outMask.Sum(r)
	got := r.Sub(result1.M, lambdaTotal)
	want := r.Mul(x, y)
	if !ring.Equal(got, want) {
		t.Fatalf("reconstructed product = %s, want %s", got, want)
	}
}
