//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package party

import (
	"io"

	"github.com/astra-mpc/astra/errs"
	"github.com/astra-mpc/astra/prng"
	"github.com/astra-mpc/astra/wire"
)

// ExchangeSeeds performs the spec section 4.1 startup exchange: this
// party samples a fresh seed and sends it over toRight (becoming that
// neighbor's "received" left seed), then receives the seed the left
// neighbor sampled for us over fromLeft. It returns the two seeds
// ready for prng.NewPairFromSeeds(leftSeed, mySeed).
func ExchangeSeeds(rnd io.Reader, toRight, fromLeft *Conn) (leftSeed, mySeed prng.Seed, err error) {
	mySeed, err = prng.NewSeed(rnd)
	if err != nil {
		return prng.Seed{}, prng.Seed{}, err
	}

	type sendResult struct{ err error }
	done := make(chan sendResult, 1)
	go func() {
		out := wire.NewBuffer()
		out.StoreBytes(mySeed[:])
		done <- sendResult{toRight.Send(out)}
	}()

	in, err := fromLeft.Receive()
	if err != nil {
		return prng.Seed{}, prng.Seed{}, err
	}
	raw, err := in.GetBytes(prng.SeedSize)
	if err != nil {
		return prng.Seed{}, prng.Seed{}, errs.Wrap(errs.Framing, fromLeft.partyNum, err, "seed exchange")
	}
	copy(leftSeed[:], raw)

	if res := <-done; res.err != nil {
		return prng.Seed{}, prng.Seed{}, res.err
	}
	return leftSeed, mySeed, nil
}
