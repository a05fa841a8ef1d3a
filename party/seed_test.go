//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package party

import (
	"crypto/rand"
	"testing"

	"github.com/astra-mpc/astra/prng"
)

func TestExchangeSeedsRing(t *testing.T) {
	conns := Ring3()

	type res struct {
		left, mine prng.Seed
		err        error
	}

	results := make([]res, 3)
	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		go func(i int) {
			left, mine, err := ExchangeSeeds(rand.Reader, conns[i][(i+1)%3], conns[i][(i+2)%3])
			results[i] = res{left, mine, err}
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 3; i++ {
		<-done
	}

	for i := 0; i < 3; i++ {
		if results[i].err != nil {
			t.Fatalf("party %d: %v", i, results[i].err)
		}
	}

	for i := 0; i < 3; i++ {
		right := (i + 1) % 3
		if results[i].mine != results[right].left {
			t.Fatalf("party %d's Right seed != party %d's Left seed", i, right)
		}
	}
}
