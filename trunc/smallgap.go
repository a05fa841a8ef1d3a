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

// SmallGapPrep runs the preprocessing role for small-gap truncation
// (spec section 4.7's Mohassel-Zhang correction), layered on top of
// BigGapPrep's base shift. Where the big gap leaves k-m bits of
// headroom, the plain arithmetic shift of the mask is exact; a small
// gap does not, so the helper additionally shares a fresh secret r
// (unknown to either online party on its own, hence drawn from
// Config.GetRandom rather than a PRNG edge) and splits its shifted
// value and most-significant bit, which the online phase folds into a
// correction using the truncation target's already-public value.
type SmallGapPrep struct {
	cfg        *astraconfig.Config
	r          *ring.Ring
	prngs      *prng.Pair
	helperLink *party.Conn
	tape       *tape.Writer
	base       *BigGapPrep
}

// NewSmallGapPrep constructs the preprocessing role object for this
// party.
func NewSmallGapPrep(cfg *astraconfig.Config, r *ring.Ring, prngs *prng.Pair, helperLink *party.Conn, w *tape.Writer) *SmallGapPrep {
	return &SmallGapPrep{
		cfg: cfg, r: r, prngs: prngs, helperLink: helperLink, tape: w,
		base: NewBigGapPrep(cfg, r, prngs, helperLink, w),
	}
}

// PrepareBatch generates the tape entries for one batch of small-gap
// truncation tuples: the big-gap base shift, then the correction
// shares. The returned PrepShare batch (helper only) covers the base
// shift alone — the correction depends on the online input's MSB,
// which the offline-only helper never observes, so a small-gap
// truncation's exact output mask cannot be precomputed for chaining
// into a further multiplication without an additional online step.
func (p *SmallGapPrep) PrepareBatch(ops []BigGapOperand) ([]share.PrepShare, error) {
	masks, err := p.base.PrepareBatch(ops)
	if err != nil {
		return nil, err
	}
	switch p.cfg.Role {
	case astraconfig.Helper:
		return masks, p.prepHelper(ops)
	case astraconfig.Party1:
		return nil, p.prepParty1(len(ops))
	case astraconfig.Party2:
		return nil, p.prepParty2(len(ops))
	default:
		return nil, errs.New(errs.Configuration, int(p.cfg.Role), "trunc small-gap prep: unknown role")
	}
}

func (p *SmallGapPrep) prepHelper(ops []BigGapOperand) error {
	shiftedCorrections := make([]ring.Elem, len(ops))
	msbCorrections := make([]ring.Elem, len(ops))
	for i, op := range ops {
		rFull, err := p.r.Random(p.cfg.GetRandom())
		if err != nil {
			return errs.Wrap(errs.IO, int(p.cfg.Role), err, "trunc small-gap prep: draw r")
		}
		rShifted := ArithRsh(p.r, rFull, op.K, op.M)
		rMsb := p.r.FromUint64(uint64(p.r.MSB(rFull)))

		shiftedShare1 := p.prngs.Right.Elem(p.r)
		msbShare1 := p.prngs.Right.Elem(p.r)

		shiftedCorrections[i] = p.r.Sub(rShifted, shiftedShare1)
		msbCorrections[i] = p.r.Sub(rMsb, msbShare1)
	}
	relay := append(append([]ring.Elem{}, shiftedCorrections...), msbCorrections...)
	return sendElems(p.helperLink, p.r, relay)
}

func (p *SmallGapPrep) prepParty1(n int) error {
	for i := 0; i < n; i++ {
		shiftedShare1 := p.prngs.Left.Elem(p.r)
		msbShare1 := p.prngs.Left.Elem(p.r)
		p.tape.PutElem(p.r, shiftedShare1)
		p.tape.PutElem(p.r, msbShare1)
	}
	return p.tape.FlushBatch()
}

func (p *SmallGapPrep) prepParty2(n int) error {
	recv, err := recvElems(p.helperLink, p.r, 2*n)
	if err != nil {
		return err
	}
	shiftedShares2, msbShares2 := recv[:n], recv[n:]
	for i := 0; i < n; i++ {
		p.tape.PutElem(p.r, shiftedShares2[i])
		p.tape.PutElem(p.r, msbShares2[i])
	}
	return p.tape.FlushBatch()
}

// SmallGapOnline runs the online phase. It stays fully local for the
// same reason BigGapOnline does: the truncation target's M is already
// public, so the MSB correction's public scalar (the target's own
// MSB) needs no exchange, only the pair of masked shares the
// preprocessing phase already delivered.
type SmallGapOnline struct {
	cfg  *astraconfig.Config
	r    *ring.Ring
	prep *tape.Reader
	base *BigGapOnline
}

// NewSmallGapOnline constructs the online role object for this party.
func NewSmallGapOnline(cfg *astraconfig.Config, r *ring.Ring, prep *tape.Reader) *SmallGapOnline {
	return &SmallGapOnline{cfg: cfg, r: r, prep: prep, base: NewBigGapOnline(r, prep)}
}

// TruncBatch truncates every input share in the batch, applying the
// Mohassel-Zhang correction on top of the shared base shift:
// correction = r_shifted - r_msb - c_msb + 2*r_msb*c_msb, where c_msb
// is the public MSB of the (already common) input.M and r_shifted/
// r_msb are this party's additive shares of the helper's fresh
// secret. The public term -c_msb is applied by party 1 only, so it is
// not double-counted once the two parties' correction shares sum.
// Family-agnostic exactly as BigGapOnline.TruncBatch is — see its doc
// comment for the common-M precondition Trio callers must satisfy.
func (o *SmallGapOnline) TruncBatch(inputs []share.Share, k, m int) ([]share.Share, error) {
	base, err := o.base.TruncBatch(inputs, k, m)
	if err != nil {
		return nil, err
	}
	out := make([]share.Share, len(inputs))
	for i, in := range inputs {
		shiftedShare, err := o.prep.GetElem(o.r)
		if err != nil {
			return nil, err
		}
		msbShare, err := o.prep.GetElem(o.r)
		if err != nil {
			return nil, err
		}

		cMsb := o.r.FromUint64(uint64(o.r.MSB(in.M)))
		correction := o.r.Sub(shiftedShare, msbShare)
		twoCMsb := o.r.Add(cMsb, cMsb)
		correction = o.r.Add(correction, o.r.Mul(twoCMsb, msbShare))
		if o.cfg.Role == astraconfig.Party1 {
			correction = o.r.Sub(correction, cMsb)
		}

		out[i] = share.Share{M: base[i].M, NegLambda: o.r.Sub(base[i].NegLambda, correction)}
	}
	return out, nil
}
