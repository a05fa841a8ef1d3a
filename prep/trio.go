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

// TrioPrepProtocol is Trio's preprocessing role object, structured
// identically to AstraPrepProtocol. It differs from Astra in which
// local-mul formula the helper evaluates, in the name of the
// helper/party-1 correlated value (r01 rather than γ), and in its sign:
// the helper sends p0 + r01 to party 2, where Astra's sends p0 − γ.
// Grounded on TrioPrepProtocol::exchange in Trio.hpp.
type TrioPrepProtocol struct {
	cfg        *astraconfig.Config
	r          *ring.Ring
	prngs      *prng.Pair
	helperLink *party.Conn
	tape       *tape.Writer
}

// NewTrioPrepProtocol constructs the preprocessing role object for
// this party.
func NewTrioPrepProtocol(cfg *astraconfig.Config, r *ring.Ring, prngs *prng.Pair, helperLink *party.Conn, w *tape.Writer) *TrioPrepProtocol {
	return &TrioPrepProtocol{cfg: cfg, r: r, prngs: prngs, helperLink: helperLink, tape: w}
}

// PrepareMulBatch generates the tape entries for one batch of Trio
// multiplication tuples. See AstraPrepProtocol.PrepareMulBatch for the
// chaining rationale of the returned masks.
func (p *TrioPrepProtocol) PrepareMulBatch(pairs []MulOperands) ([]share.PrepShare, error) {
	switch p.cfg.Role {
	case astraconfig.Helper:
		return p.prepHelper(pairs)
	case astraconfig.Party1:
		return nil, p.prepParty1(len(pairs))
	case astraconfig.Party2:
		return nil, p.prepParty2(len(pairs))
	default:
		return nil, errs.New(errs.Configuration, int(p.cfg.Role), "trio prep: unknown role")
	}
}

func (p *TrioPrepProtocol) prepHelper(pairs []MulOperands) ([]share.PrepShare, error) {
	out := make([]ring.Elem, len(pairs))
	masks := make([]share.PrepShare, len(pairs))
	for i, op := range pairs {
		r01 := p.prngs.Right.Elem(p.r)
		negLambda1 := p.prngs.Right.Elem(p.r)
		negLambda2 := p.prngs.Left.Elem(p.r)
		p0 := share.LocalMulP0Trio(p.r, op.X, op.Y)
		out[i] = p.r.Add(p0, r01)
		masks[i] = share.PrepShare{Lambda1: p.r.Neg(negLambda1), Lambda2: p.r.Neg(negLambda2)}
	}
	if err := sendElems(p.helperLink, p.r, out); err != nil {
		return nil, err
	}
	return masks, nil
}

func (p *TrioPrepProtocol) prepParty1(n int) error {
	for i := 0; i < n; i++ {
		r01 := p.prngs.Left.Elem(p.r)
		negLambda1 := p.prngs.Left.Elem(p.r)
		p.tape.PutElem(p.r, r01)
		p.tape.PutElem(p.r, negLambda1)
	}
	return p.tape.FlushBatch()
}

func (p *TrioPrepProtocol) prepParty2(n int) error {
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
