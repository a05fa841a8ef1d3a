//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package prep implements the preprocessing-phase protocols for both
// Astra and Trio (spec section 4.3): the helper (party 0) combines
// its two correlated PRNG streams with the online parties' own copies
// of those streams to produce, for every multiplication/truncation/
// unsplit operation that the online phase will later need, a tape
// entry on each of the two online parties — with no further
// communication for the "free" half and exactly one message from the
// helper to party 2 for the half that can't be derived from PRNG
// state alone.
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

// MulOperands names the two PrepShares a preprocessed multiplication
// tuple consumes, as tracked by the helper (who alone holds both mask
// shares of every wire value).
type MulOperands struct {
	X, Y share.PrepShare
}

// AstraPrepProtocol runs the Astra preprocessing role for exactly one
// of the three parties, selected by cfg.Role (spec section 9's "role
// dispatch" design note: one type, branching internally, rather than
// three near-duplicate types). helperLink is the helper-to-party-2
// connection: set on the helper (as the sender) and on party 2 (as
// the receiver); nil on party 1, which needs no network at all during
// preprocessing.
type AstraPrepProtocol struct {
	cfg        *astraconfig.Config
	r          *ring.Ring
	prngs      *prng.Pair
	helperLink *party.Conn
	tape       *tape.Writer
}

// NewAstraPrepProtocol constructs the preprocessing role object for
// this party.
func NewAstraPrepProtocol(cfg *astraconfig.Config, r *ring.Ring, prngs *prng.Pair, helperLink *party.Conn, w *tape.Writer) *AstraPrepProtocol {
	return &AstraPrepProtocol{cfg: cfg, r: r, prngs: prngs, helperLink: helperLink, tape: w}
}

// PrepareMulBatch generates the tape entries for one batch of
// multiplication tuples, one per operand pair, per spec section 4.3
// "Per multiplication". The same machinery serves "reduced
// multiplication" (one operand a bit): a bit is just a ring element
// with the constraint enforced by the caller, not by this protocol.
//
// On the helper, it also returns the freshly generated output mask
// split for each product — needed only if that product later becomes
// an operand of a further multiplication, since only the helper ever
// assembles a share.PrepShare. Online parties get nil; their half of
// each output mask already went to their own tape entry above.
func (p *AstraPrepProtocol) PrepareMulBatch(pairs []MulOperands) ([]share.PrepShare, error) {
	switch p.cfg.Role {
	case astraconfig.Helper:
		return p.prepHelper(pairs)
	case astraconfig.Party1:
		return nil, p.prepParty1(len(pairs))
	case astraconfig.Party2:
		return nil, p.prepParty2(len(pairs))
	default:
		return nil, errs.New(errs.Configuration, int(p.cfg.Role), "astra prep: unknown role")
	}
}

// prepHelper implements spec 4.3 step 1: derive the fresh output mask
// λ(xy) split (−λ⁽¹⁾ from the stream shared with party 1, −λ⁽²⁾ from
// the one shared with party 2 — both drawn as raw PRNG values that
// serve directly as each online party's neg_lambda, per
// AstraPrepProtocol::pre_element/post in the original), derive γ from
// the stream shared with party 1, and send party 2 the one value it
// cannot derive alone: local_mul_P0(x,y) − γ.
func (p *AstraPrepProtocol) prepHelper(pairs []MulOperands) ([]share.PrepShare, error) {
	out := make([]ring.Elem, len(pairs))
	masks := make([]share.PrepShare, len(pairs))
	for i, op := range pairs {
		gamma := p.prngs.Right.Elem(p.r)
		negLambda1 := p.prngs.Right.Elem(p.r)
		negLambda2 := p.prngs.Left.Elem(p.r)
		p0 := share.LocalMulP0Astra(p.r, op.X, op.Y)
		out[i] = p.r.Sub(p0, gamma)
		masks[i] = share.PrepShare{Lambda1: p.r.Neg(negLambda1), Lambda2: p.r.Neg(negLambda2)}
	}
	if err := sendElems(p.helperLink, p.r, out); err != nil {
		return nil, err
	}
	return masks, nil
}

// prepParty1 implements spec 4.3 step 2: derives γ and its own raw
// −λ(xy)⁽¹⁾ in lockstep with the helper, and writes the pair
// (γ, −λ(xy)⁽¹⁾) to its tape for the online phase to consume.
func (p *AstraPrepProtocol) prepParty1(n int) error {
	for i := 0; i < n; i++ {
		gamma := p.prngs.Left.Elem(p.r)
		negLambda1 := p.prngs.Left.Elem(p.r)
		p.tape.PutElem(p.r, gamma)
		p.tape.PutElem(p.r, negLambda1)
	}
	return p.tape.FlushBatch()
}

// prepParty2 implements spec 4.3 step 3: receives the helper's
// correction, derives its own raw −λ(xy)⁽²⁾ in lockstep with the
// helper, and writes (correction, −λ(xy)⁽²⁾) to its tape.
func (p *AstraPrepProtocol) prepParty2(n int) error {
	recv, err := recvElems(p.helperLink, p.r, n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		negLambda2 := p.prngs.Right.Elem(p.r)
		p.tape.PutElem(p.r, recv[i])
		p.tape.PutElem(p.r, negLambda2)
	}
	return p.tape.FlushBatch()
}
