//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package unsplit

import (
	"crypto/rand"
	"path/filepath"
	"sync"
	"testing"

	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/mc"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/prng"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
	"github.com/astra-mpc/astra/tape"
)

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

// TestUnsplitThenAdd exercises spec.md section 8's named scenario:
// b=0b101 bit-shared, add 3, opens to 8. Each of the three bits is
// lifted independently, recombined with place-value weights, then a
// public constant is added before opening.
func TestUnsplitThenAdd(t *testing.T) {
	r := ring.NewRing(64)
	conns, pairs := setupRing(t)
	dir := t.TempDir()

	bits := []int64{1, 0, 1} // value 5, LSB first
	weights := []int64{1, 2, 4}

	var wg sync.WaitGroup
	var result1, result2 ring.Elem
	var err0, err1, err2 error

	wg.Add(3)
	go func() {
		defer wg.Done()
		cfg := &astraconfig.Config{K: 64, Role: astraconfig.Helper}
		p := NewPrep(cfg, r, pairs[0], conns[0][2], nil)
		if _, e := p.PrepareBatch(len(bits)); e != nil {
			err0 = e
		}
	}()
	go func() {
		defer wg.Done()
		cfg := &astraconfig.Config{K: 64, Role: astraconfig.Party1}
		w, e := tape.Create(filepath.Join(dir, "p1.tape"), 1)
		if e != nil {
			err1 = e
			return
		}
		pp := NewPrep(cfg, r, pairs[1], nil, w)
		if _, e := pp.PrepareBatch(len(bits)); e != nil {
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
		onl := NewOnline(cfg, r, conns[1][2], rd)
		bitElems := make([]ring.Elem, len(bits))
		for i, b := range bits {
			bitElems[i] = r.FromInt64(b)
		}
		lifted, e := onl.UnsplitBatch(bitElems)
		if e != nil {
			err1 = e
			return
		}
		total := share.Constant(r.Zero(), r)
		for i, s := range lifted {
			total = share.Add(r, total, share.ScaleConst(r, s, r.FromInt64(weights[i])))
		}
		total = share.AddConst(r, total, r.FromInt64(3))
		opened, e := mc.NewAstraMC(cfg, r, conns[1][2]).OpenBatch([]share.Share{total})
		if e != nil {
			err1 = e
			return
		}
		result1 = opened[0]
	}()
	go func() {
		defer wg.Done()
		cfg := &astraconfig.Config{K: 64, Role: astraconfig.Party2}
		w, e := tape.Create(filepath.Join(dir, "p2.tape"), 2)
		if e != nil {
			err2 = e
			return
		}
		pp := NewPrep(cfg, r, pairs[2], conns[2][0], w)
		if _, e := pp.PrepareBatch(len(bits)); e != nil {
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
		onl := NewOnline(cfg, r, conns[2][1], rd)
		bitElems := make([]ring.Elem, len(bits))
		for i, b := range bits {
			bitElems[i] = r.FromInt64(b)
		}
		lifted, e := onl.UnsplitBatch(bitElems)
		if e != nil {
			err2 = e
			return
		}
		total := share.Constant(r.Zero(), r)
		for i, s := range lifted {
			total = share.Add(r, total, share.ScaleConst(r, s, r.FromInt64(weights[i])))
		}
		total = share.AddConst(r, total, r.FromInt64(3))
		opened, e := mc.NewAstraMC(cfg, r, conns[2][1]).OpenBatch([]share.Share{total})
		if e != nil {
			err2 = e
			return
		}
		result2 = opened[0]
	}()
	wg.Wait()

	for i, err := range []error{err0, err1, err2} {
		if err != nil {
			t.Fatalf("party %d: %v", i, err)
		}
	}

	want := r.FromInt64(8)
	if !ring.Equal(result1, want) {
		t.Fatalf("party 1 opened %s, want %s", result1, want)
	}
	if !ring.Equal(result2, want) {
		t.Fatalf("party 2 opened %s, want %s", result2, want)
	}
}
