//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package mc

import (
	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
)

// AstraMC opens a batch of Astra shares. Grounded on
// AstraMC<T>::prepare_summand: party 1 contributes m(1)−λ(1), party 2
// contributes −λ(2); since Share.NegLambda already stores −λ directly
// (not λ), that's M+NegLambda for party 1 and NegLambda for party 2.
type AstraMC struct {
	cfg  *astraconfig.Config
	r    *ring.Ring
	peer *party.Conn
}

// NewAstraMC constructs an opener for this online party. peer
// connects to the other online party.
func NewAstraMC(cfg *astraconfig.Config, r *ring.Ring, peer *party.Conn) *AstraMC {
	return &AstraMC{cfg: cfg, r: r, peer: peer}
}

// OpenBatch reconstructs the plaintext value behind each share.
func (o *AstraMC) OpenBatch(shares []share.Share) ([]ring.Elem, error) {
	mine := make([]ring.Elem, len(shares))
	for i, s := range shares {
		if o.cfg.Role == astraconfig.Party1 {
			mine[i] = o.r.Add(s.M, s.NegLambda)
		} else {
			mine[i] = s.NegLambda
		}
	}
	return openBatch(o.r, o.peer, o.cfg.Role, mine)
}
