//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package prep

import (
	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/errs"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/prng"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
	"github.com/astra-mpc/astra/tape"
)

// InputPrepProtocol runs the preprocessing role for Input (spec section
// 4.5): for every slot in a batch, the two online parties need their
// own half of a fresh output mask λ(x) = λ(x)⁽¹⁾+λ(x)⁽²⁾, and whichever
// of the two owns this particular input additionally needs the other
// half, so it can blind its plaintext value without a second network
// round in the online phase.
//
// This one type serves both Astra and Trio: TrioInput is a thin
// subclass of AstraInput in the original that overrides only its
// offset bookkeeping, not the mask structure itself, so no
// protocol-specific Input variant exists here either.
type InputPrepProtocol struct {
	cfg   *astraconfig.Config
	r     *ring.Ring
	prngs *prng.Pair

	// linkParty1, linkParty2: the helper's links to each online party,
	// used to relay the one value an owner cannot derive from its own
	// PRNG state (the partner's half of this input's mask). Set only
	// on the helper.
	linkParty1 *party.Conn
	linkParty2 *party.Conn

	// helperLink: an online party's link back to the helper, used to
	// receive that same relay. Set only on Party1/Party2.
	helperLink *party.Conn

	tape *tape.Writer
}

// NewInputPrepProtocol constructs the preprocessing role object for
// this party.
func NewInputPrepProtocol(cfg *astraconfig.Config, r *ring.Ring, prngs *prng.Pair, linkParty1, linkParty2, helperLink *party.Conn, w *tape.Writer) *InputPrepProtocol {
	return &InputPrepProtocol{
		cfg:        cfg,
		r:          r,
		prngs:      prngs,
		linkParty1: linkParty1,
		linkParty2: linkParty2,
		helperLink: helperLink,
		tape:       w,
	}
}

// PrepareInputBatch generates the tape entries for one batch of input
// slots. owners names, for each slot in order, which online party will
// supply the plaintext value during the online phase; it must be
// identical across all three parties' calls for a given batch, the
// same way a circuit's wiring is public.
//
// On the helper it also returns the fresh mask split for each slot,
// needed only if that input later becomes an operand of a
// multiplication.
func (p *InputPrepProtocol) PrepareInputBatch(owners []astraconfig.Role) ([]share.PrepShare, error) {
	switch p.cfg.Role {
	case astraconfig.Helper:
		return p.prepHelper(owners)
	case astraconfig.Party1:
		return nil, p.prepOnline(owners, astraconfig.Party1, p.prngs.Left)
	case astraconfig.Party2:
		return nil, p.prepOnline(owners, astraconfig.Party2, p.prngs.Right)
	default:
		return nil, errs.New(errs.Configuration, int(p.cfg.Role), "input prep: unknown role")
	}
}

// prepHelper draws both online parties' mask halves from the stream
// it shares with each (mirroring prepHelper's −λ(xy) draws in
// PrepareMulBatch), then relays to whichever party owns a given slot
// the one half it cannot derive itself: the other party's half.
func (p *InputPrepProtocol) prepHelper(owners []astraconfig.Role) ([]share.PrepShare, error) {
	masks := make([]share.PrepShare, len(owners))
	var relayToParty1, relayToParty2 []ring.Elem
	for i, owner := range owners {
		negLambda1 := p.prngs.Right.Elem(p.r)
		negLambda2 := p.prngs.Left.Elem(p.r)
		masks[i] = share.PrepShare{Lambda1: p.r.Neg(negLambda1), Lambda2: p.r.Neg(negLambda2)}
		switch owner {
		case astraconfig.Party1:
			relayToParty1 = append(relayToParty1, negLambda2)
		case astraconfig.Party2:
			relayToParty2 = append(relayToParty2, negLambda1)
		default:
			return nil, errs.New(errs.Configuration, int(p.cfg.Role), "input prep: slot %d owner must be an online party", i)
		}
	}
	if err := sendElems(p.linkParty1, p.r, relayToParty1); err != nil {
		return nil, err
	}
	if err := sendElems(p.linkParty2, p.r, relayToParty2); err != nil {
		return nil, err
	}
	return masks, nil
}

// prepOnline derives this party's own mask half for every slot in
// lockstep with the helper, receives the relayed partner half for each
// slot it owns, and writes one tape entry per slot: just the own half
// for slots it doesn't own, or (own half, partner half) for slots it
// does — the second value is what lets the online phase compute
// m = x + λ_total with no further communication.
func (p *InputPrepProtocol) prepOnline(owners []astraconfig.Role, me astraconfig.Role, edge *prng.Stream) error {
	ownHalves := make([]ring.Elem, len(owners))
	var owned []int
	for i, owner := range owners {
		ownHalves[i] = edge.Elem(p.r)
		if owner == me {
			owned = append(owned, i)
		}
	}
	relayed, err := recvElems(p.helperLink, p.r, len(owned))
	if err != nil {
		return err
	}
	relayedAt := make(map[int]ring.Elem, len(owned))
	for j, idx := range owned {
		relayedAt[idx] = relayed[j]
	}
	for i, owner := range owners {
		p.tape.PutElem(p.r, ownHalves[i])
		if owner == me {
			p.tape.PutElem(p.r, relayedAt[i])
		}
	}
	return p.tape.FlushBatch()
}
