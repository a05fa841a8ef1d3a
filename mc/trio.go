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

// TrioMC opens a batch of Trio shares. Grounded on
// TrioMC::prepare_summand(secret, my_num) = secret[my_num-1]: party 1
// contributes its own M field directly, party 2 contributes its own
// NegLambda field directly — no subtraction at all, unlike AstraMC.
// This mirrors online/trio.go's documented asymmetry: the two online
// parties' Share.M values after a Trio multiplication are not the
// same public value the way Astra's are, and TrioMC's opening formula
// is built to read exactly the two fields that cancel correctly in
// that scheme.
type TrioMC struct {
	cfg  *astraconfig.Config
	r    *ring.Ring
	peer *party.Conn
}

// NewTrioMC constructs an opener for this online party.
func NewTrioMC(cfg *astraconfig.Config, r *ring.Ring, peer *party.Conn) *TrioMC {
	return &TrioMC{cfg: cfg, r: r, peer: peer}
}

// OpenBatch reconstructs the plaintext value behind each share.
func (o *TrioMC) OpenBatch(shares []share.Share) ([]ring.Elem, error) {
	mine := make([]ring.Elem, len(shares))
	for i, s := range shares {
		if o.cfg.Role == astraconfig.Party1 {
			mine[i] = s.M
		} else {
			mine[i] = s.NegLambda
		}
	}
	return openBatch(o.r, o.peer, o.cfg.Role, mine)
}
