//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package trunc

import (
	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/errs"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/prng"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
	"github.com/astra-mpc/astra/tape"
)

// BigGapOperand is one big-gap truncation tuple as the helper tracks
// it: the input's mask sum and the tuple's (k, m) shift parameters.
type BigGapOperand struct {
	LambdaTotal ring.Elem
	K, M        int
}

// BigGapPrep runs the preprocessing role for big-gap truncation (spec
// section 4.3/4.7): "the helper generates a random r, computes
// (x.sum_of_λ >> m) − r, ships it to the computing party; ... the
// absent party consumes its own PRNG-derived r." By this codebase's
// now-established convention (party 1 always the PRNG-only role,
// party 2 always the one network relay per batch — see
// prep/astra.go), party 2 plays "computing", party 1 plays "absent".
// Since the shift target (the input's common m value) is already
// public to both online parties, the resulting shift is purely local
// at online time; the only network traffic this protocol needs is
// this one prep-time helper-to-party-2 relay, which is also this
// truncation batch's one communication round (spec section 4.6:
// "one pass-around round per truncation batch").
type BigGapPrep struct {
	cfg        *astraconfig.Config
	r          *ring.Ring
	prngs      *prng.Pair
	helperLink *party.Conn
	tape       *tape.Writer
}

// NewBigGapPrep constructs the preprocessing role object for this
// party. helperLink is the helper-to-party-2 connection, as in
// AstraPrepProtocol.
func NewBigGapPrep(cfg *astraconfig.Config, r *ring.Ring, prngs *prng.Pair, helperLink *party.Conn, w *tape.Writer) *BigGapPrep {
	return &BigGapPrep{cfg: cfg, r: r, prngs: prngs, helperLink: helperLink, tape: w}
}

// PrepareBatch generates the tape entries for one batch of big-gap
// truncation tuples. On the helper, it also returns the output mask
// split for each tuple, needed if a truncated value later becomes an
// operand of a further multiplication.
func (p *BigGapPrep) PrepareBatch(ops []BigGapOperand) ([]share.PrepShare, error) {
	switch p.cfg.Role {
	case astraconfig.Helper:
		return p.prepHelper(ops)
	case astraconfig.Party1:
		return nil, p.prepParty1(len(ops))
	case astraconfig.Party2:
		return nil, p.prepParty2(len(ops))
	default:
		return nil, errs.New(errs.Configuration, int(p.cfg.Role), "trunc big-gap prep: unknown role")
	}
}

func (p *BigGapPrep) prepHelper(ops []BigGapOperand) ([]share.PrepShare, error) {
	masks := make([]share.PrepShare, len(ops))
	corrections := make([]ring.Elem, len(ops))
	for i, op := range ops {
		r1 := p.prngs.Right.Elem(p.r) // party 1's own raw draw, the absent party
		lambdaTrunc := ArithRsh(p.r, op.LambdaTotal, op.K, op.M)
		corrections[i] = p.r.Sub(p.r.Neg(lambdaTrunc), r1)
		masks[i] = share.PrepShare{Lambda1: p.r.Neg(r1), Lambda2: p.r.Add(lambdaTrunc, r1)}
	}
	if err := sendElems(p.helperLink, p.r, corrections); err != nil {
		return nil, err
	}
	return masks, nil
}

func (p *BigGapPrep) prepParty1(n int) error {
	for i := 0; i < n; i++ {
		r1 := p.prngs.Left.Elem(p.r)
		p.tape.PutElem(p.r, r1)
	}
	return p.tape.FlushBatch()
}

func (p *BigGapPrep) prepParty2(n int) error {
	recv, err := recvElems(p.helperLink, p.r, n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		p.tape.PutElem(p.r, recv[i])
	}
	return p.tape.FlushBatch()
}

// BigGapOnline runs the online phase, which needs no network at all:
// the input's common m value is already public, so both online
// parties independently shift it the same way.
type BigGapOnline struct {
	r    *ring.Ring
	prep *tape.Reader
}

// NewBigGapOnline constructs the online role object for this party.
func NewBigGapOnline(r *ring.Ring, prep *tape.Reader) *BigGapOnline {
	return &BigGapOnline{r: r, prep: prep}
}

// TruncBatch truncates every input share in the batch by the same
// (k, m). Like the rest of this package, it is family-agnostic: it
// only ever reads in.M, so it serves Astra and Trio equally, as long
// as in.M is already the common value both online parties agree on.
// That holds automatically for a raw Input share or anything built
// from one with Add/Sub/ScaleConst/AddConst alone; a share fresh out
// of TrioOnline.MulBatch/DotBatch is not common and needs
// share.TrioCommonM applied first (Astra's multiplication output needs
// no such conversion — its M is already common, per
// AstraShare::common_m being a plain identity).
func (o *BigGapOnline) TruncBatch(inputs []share.Share, k, m int) ([]share.Share, error) {
	out := make([]share.Share, len(inputs))
	for i, in := range inputs {
		negLambda, err := o.prep.GetElem(o.r)
		if err != nil {
			return nil, err
		}
		out[i] = share.Share{M: ArithRsh(o.r, in.M, k, m), NegLambda: negLambda}
	}
	return out, nil
}
