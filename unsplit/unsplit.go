//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package unsplit implements bit-to-arithmetic lifting (spec section
// 4.3/4.7's "unsplit"): given a bit's clear value, produce a freshly
// and independently masked arithmetic sharing of that same bit, using
// the identity a+b-2ab for a fresh random bit a and the target bit b.
//
// This engine does not implement a general boolean/XOR secret-sharing
// layer (garbled circuits and general GF(2ⁿ) protocols are out of
// scope); by the time a bit reaches this package its value is already
// a public constant, common to both online parties the way every
// Constant is. Only the output mask is freshly randomized, matching
// AstraShare::pre_reduced_mul's own degenerate operands: a fresh blind
// with m fixed at zero, and the target bit as a bare public constant.
//
// Both families plug in the same a+b-2ab arithmetic: the underlying
// a·b product is computed by whichever multiplication protocol the
// caller wires in (AstraPrepProtocol/AstraOnline or
// TrioPrepProtocol/TrioOnline), since every step here — Constant,
// Add, Sub, ScaleConst — is linear and so preserves whichever family's
// opening invariant the product already satisfies; unlike truncation,
// nothing here needs the product's M to be common across parties
// first (see share.TrioCommonM's doc for where that distinction
// matters).
package unsplit

import (
	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/errs"
	"github.com/astra-mpc/astra/online"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/prep"
	"github.com/astra-mpc/astra/prng"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
	"github.com/astra-mpc/astra/tape"
)

// mulPrep is the preprocessing half of whichever multiplication
// protocol a Prep is wired to — AstraPrepProtocol or TrioPrepProtocol,
// both already shaped this way (prep/astra.go, prep/trio.go).
type mulPrep interface {
	PrepareMulBatch(pairs []prep.MulOperands) ([]share.PrepShare, error)
}

// mulOnline is the online half — AstraOnline or TrioOnline
// (online/astra.go, online/trio.go).
type mulOnline interface {
	MulBatch(pairs [][2]share.Share) ([]share.Share, error)
}

// Prep runs the preprocessing role for one batch of unsplit bits. It
// draws a fresh blinding share per bit (m fixed at zero, λ
// independently random and needing no relay at all since it is
// uncorrelated with anything else) and reuses the wired-in
// multiplication protocol's existing machinery for the a·b tuple, with
// b's mask fixed at zero since the bit being lifted is already public.
type Prep struct {
	cfg        *astraconfig.Config
	r          *ring.Ring
	prngs      *prng.Pair
	helperLink *party.Conn
	tape       *tape.Writer
	mul        mulPrep
}

// NewPrep constructs the Astra-family preprocessing role object for
// this party.
func NewPrep(cfg *astraconfig.Config, r *ring.Ring, prngs *prng.Pair, helperLink *party.Conn, w *tape.Writer) *Prep {
	return &Prep{
		cfg: cfg, r: r, prngs: prngs, helperLink: helperLink, tape: w,
		mul: prep.NewAstraPrepProtocol(cfg, r, prngs, helperLink, w),
	}
}

// NewTrioPrep constructs the Trio-family preprocessing role object for
// this party. Grounded on Trio.h's TrioPrepProtocol inheriting
// AstraPrepProtocol's unsplit1 unchanged — the only thing Trio varies
// is which multiplication protocol produces the a·b tuple.
func NewTrioPrep(cfg *astraconfig.Config, r *ring.Ring, prngs *prng.Pair, helperLink *party.Conn, w *tape.Writer) *Prep {
	return &Prep{
		cfg: cfg, r: r, prngs: prngs, helperLink: helperLink, tape: w,
		mul: prep.NewTrioPrepProtocol(cfg, r, prngs, helperLink, w),
	}
}

// PrepareBatch generates the tape entries for n unsplit bits. On the
// helper, it also returns each destination's output mask split, needed
// if the lifted bit later becomes an operand of a further operation.
func (p *Prep) PrepareBatch(n int) ([]share.PrepShare, error) {
	switch p.cfg.Role {
	case astraconfig.Helper:
		return p.prepHelper(n)
	case astraconfig.Party1:
		return nil, p.prepParty1(n)
	case astraconfig.Party2:
		return nil, p.prepParty2(n)
	default:
		return nil, errs.New(errs.Configuration, int(p.cfg.Role), "unsplit prep: unknown role")
	}
}

func (p *Prep) prepHelper(n int) ([]share.PrepShare, error) {
	aMasks := make([]share.PrepShare, n)
	for i := 0; i < n; i++ {
		negA1 := p.prngs.Right.Elem(p.r)
		negA2 := p.prngs.Left.Elem(p.r)
		aMasks[i] = share.PrepShare{Lambda1: p.r.Neg(negA1), Lambda2: p.r.Neg(negA2)}
	}

	zero := share.PrepShare{Lambda1: p.r.Zero(), Lambda2: p.r.Zero()}
	pairs := make([]prep.MulOperands, n)
	for i := range pairs {
		pairs[i] = prep.MulOperands{X: aMasks[i], Y: zero}
	}
	cMasks, err := p.mul.PrepareMulBatch(pairs)
	if err != nil {
		return nil, err
	}

	two := p.r.FromInt64(2)
	dest := make([]share.PrepShare, n)
	for i := range dest {
		dest[i] = share.PrepShare{
			Lambda1: p.r.Sub(aMasks[i].Lambda1, p.r.Mul(two, cMasks[i].Lambda1)),
			Lambda2: p.r.Sub(aMasks[i].Lambda2, p.r.Mul(two, cMasks[i].Lambda2)),
		}
	}
	return dest, nil
}

func (p *Prep) prepParty1(n int) error {
	for i := 0; i < n; i++ {
		negA1 := p.prngs.Left.Elem(p.r)
		p.tape.PutElem(p.r, negA1)
	}
	if err := p.tape.FlushBatch(); err != nil {
		return err
	}
	_, err := p.mul.PrepareMulBatch(make([]prep.MulOperands, n))
	return err
}

func (p *Prep) prepParty2(n int) error {
	for i := 0; i < n; i++ {
		negA2 := p.prngs.Right.Elem(p.r)
		p.tape.PutElem(p.r, negA2)
	}
	if err := p.tape.FlushBatch(); err != nil {
		return err
	}
	_, err := p.mul.PrepareMulBatch(make([]prep.MulOperands, n))
	return err
}

// Online runs the online phase for one batch of unsplit bits.
type Online struct {
	cfg  *astraconfig.Config
	r    *ring.Ring
	prep *tape.Reader
	mul  mulOnline
}

// NewOnline constructs the Astra-family online role object for this
// party. peer connects to the other online party, exactly as
// AstraOnline needs for the underlying multiplication's one exchange
// round.
func NewOnline(cfg *astraconfig.Config, r *ring.Ring, peer *party.Conn, prepReader *tape.Reader) *Online {
	return &Online{cfg: cfg, r: r, prep: prepReader, mul: online.NewAstraOnline(cfg, r, peer, prepReader)}
}

// NewTrioOnline constructs the Trio-family online role object for
// this party. The a+b-2ab combine below stays the same linear
// arithmetic either way; only the product's own multiplication
// protocol differs.
func NewTrioOnline(cfg *astraconfig.Config, r *ring.Ring, peer *party.Conn, prepReader *tape.Reader) *Online {
	return &Online{cfg: cfg, r: r, prep: prepReader, mul: online.NewTrioOnline(cfg, r, peer, prepReader)}
}

// UnsplitBatch lifts each already-public bit (0 or 1, common to both
// online parties, like every other wire's M) into a freshly and
// independently masked arithmetic sharing of the same value:
// a + b - 2ab for a fresh blind a (m=0) and the target bit b as a
// public constant.
func (o *Online) UnsplitBatch(bits []ring.Elem) ([]share.Share, error) {
	n := len(bits)
	aShares := make([]share.Share, n)
	for i := 0; i < n; i++ {
		negA, err := o.prep.GetElem(o.r)
		if err != nil {
			return nil, err
		}
		aShares[i] = share.Share{M: o.r.Zero(), NegLambda: negA}
	}

	bShares := make([]share.Share, n)
	pairs := make([][2]share.Share, n)
	for i, bit := range bits {
		bShares[i] = share.Constant(bit, o.r)
		pairs[i] = [2]share.Share{aShares[i], bShares[i]}
	}

	products, err := o.mul.MulBatch(pairs)
	if err != nil {
		return nil, err
	}

	two := o.r.FromInt64(2)
	out := make([]share.Share, n)
	for i := range bits {
		sum := share.Add(o.r, aShares[i], bShares[i])
		twoC := share.ScaleConst(o.r, products[i], two)
		out[i] = share.Sub(o.r, sum, twoC)
	}
	return out, nil
}
