//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package online

import (
	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/errs"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
	"github.com/astra-mpc/astra/tape"
	"github.com/astra-mpc/astra/wire"
)

// InputSlot names one value to be shared: Owner says which online
// party supplies it, Value carries the plaintext and is only
// meaningful when Owner equals the calling party's own role — the
// other party passes a zero Value, which InputOnline ignores.
type InputSlot struct {
	Owner astraconfig.Role
	Value ring.Elem
}

// InputOnline runs the online phase of Input for one of the two
// online parties (spec section 4.5): the owner of each slot folds in
// its own and its partner's mask half to compute m = x + λ(x)
// (subtracting both stored −λ halves from x), and
// sends it once, batched, to the non-owner; the non-owner takes the
// received value as-is. Both parties then hold a Share with identical
// M and their own NegLambda half, matching the invariant every other
// Share in the system satisfies.
//
// Serves both Astra and Trio identically: neither protocol's Input
// differs from the other's beyond internal offset bookkeeping that
// this implementation doesn't need (TrioInput only overrides that
// bookkeeping in the original, not the mask structure).
type InputOnline struct {
	cfg  *astraconfig.Config
	r    *ring.Ring
	peer *party.Conn
	prep *tape.Reader
}

// NewInputOnline constructs the online Input role object for this
// party. peer connects to the other online party.
func NewInputOnline(cfg *astraconfig.Config, r *ring.Ring, peer *party.Conn, prep *tape.Reader) *InputOnline {
	return &InputOnline{cfg: cfg, r: r, peer: peer, prep: prep}
}

// InputBatch shares every slot in the batch in one round: one
// outgoing message carrying every slot this party owns, one incoming
// message carrying every slot the other party owns.
func (o *InputOnline) InputBatch(slots []InputSlot) ([]share.Share, error) {
	n := len(slots)
	outBuf := wire.NewBuffer()
	ownHalves := make([]ring.Elem, n)
	mine := make([]ring.Elem, n)
	for i, s := range slots {
		ownHalf, err := o.prep.GetElem(o.r)
		if err != nil {
			return nil, err
		}
		ownHalves[i] = ownHalf
		if s.Owner != o.cfg.Role {
			continue
		}
		partnerHalf, err := o.prep.GetElem(o.r)
		if err != nil {
			return nil, err
		}
		m := o.r.Sub(o.r.Sub(s.Value, ownHalf), partnerHalf)
		mine[i] = m
		outBuf.StoreBytes(o.r.Bytes(m))
	}

	recvBuf, err := o.peer.Exchange(outBuf)
	if err != nil {
		return nil, err
	}

	results := make([]share.Share, n)
	for i, s := range slots {
		var m ring.Elem
		if s.Owner == o.cfg.Role {
			m = mine[i]
		} else {
			b, err := recvBuf.GetBytes(o.r.ByteLen())
			if err != nil {
				return nil, errs.Wrap(errs.IO, int(o.cfg.Role), err, "input online: reading peer's share for slot %d", i)
			}
			m = o.r.FromBytes(b)
		}
		results[i] = share.Share{M: m, NegLambda: ownHalves[i]}
	}
	return results, nil
}
