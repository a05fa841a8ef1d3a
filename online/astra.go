//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package online implements the online-phase multiplication protocols
// for Astra and Trio (spec section 4.4): given shares already held by
// party 1 and party 2, and the preprocessing tape each wrote during
// the offline phase, compute the shares of one or more products with
// exactly one pass-around round per batch.
//
// The helper (party 0) plays no part here — it is "typically absent
// during online evaluation" (spec section 2); AstraOnline/TrioOnline
// are only ever constructed with cfg.Role == Party1 or Party2.
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

// AstraOnline runs the Astra online multiplication protocol for one
// of the two online parties. Grounded on AstraBase<T>/Astra<T> in
// Astra.h/Astra.hpp.
type AstraOnline struct {
	cfg  *astraconfig.Config
	r    *ring.Ring
	peer *party.Conn // the other online party
	prep *tape.Reader
}

// NewAstraOnline constructs the online protocol object. peer connects
// to the other online party (1<->2); prep reads this party's
// preprocessing tape.
func NewAstraOnline(cfg *astraconfig.Config, r *ring.Ring, peer *party.Conn, prep *tape.Reader) *AstraOnline {
	return &AstraOnline{cfg: cfg, r: r, peer: peer, prep: prep}
}

func (o *AstraOnline) localMul(x, y share.Share) ring.Elem {
	if o.cfg.Role == astraconfig.Party1 {
		return share.LocalMulP1Astra(o.r, x, y)
	}
	return share.LocalMulP2Astra(o.r, x, y)
}

// readTapePair reads this batch element's (γ, −λ(xy)) tape entry,
// exactly the two-field layout AstraPrepProtocol.PrepareMulBatch
// wrote (spec section 4.4: "read from the tape exactly batch ·
// |open_type| bytes of (γ, −λ(xy)) pairs").
func (o *AstraOnline) readTapePair() (gamma, negLambda ring.Elem, err error) {
	gamma, err = o.prep.GetElem(o.r)
	if err != nil {
		return ring.Elem{}, ring.Elem{}, err
	}
	negLambda, err = o.prep.GetElem(o.r)
	if err != nil {
		return ring.Elem{}, ring.Elem{}, err
	}
	return gamma, negLambda, nil
}

// MulBatch computes, for each operand pair, the sharing of their
// product: one local_mul, one tape read, one pass-around exchange,
// one local combine — batched so the exchange happens once for the
// whole slice (spec section 4.4 "Multiplication batch").
func (o *AstraOnline) MulBatch(pairs [][2]share.Share) ([]share.Share, error) {
	n := len(pairs)
	outBuf := wire.NewBuffer()
	mLocal := make([]ring.Elem, n)
	negLambdas := make([]ring.Elem, n)
	for i, pr := range pairs {
		gamma, negLambda, err := o.readTapePair()
		if err != nil {
			return nil, err
		}
		v := o.localMul(pr[0], pr[1])
		mz := o.r.Add(o.r.Sub(v, negLambda), gamma)
		outBuf.StoreBytes(o.r.Bytes(mz))
		mLocal[i] = mz
		negLambdas[i] = negLambda
	}
	return o.combine(outBuf, mLocal, negLambdas)
}

// DotBatch computes one sharing per group of term pairs, accumulating
// the local_mul contribution across every term in a group before
// consuming a single tape entry and a single slot in the exchange
// buffer — spec section 4.4's "Dot-products are identical except V
// accumulates multiple term pairs before the exchange buffer is
// populated — one exchange per dot-product, not per term."
func (o *AstraOnline) DotBatch(groups [][][2]share.Share) ([]share.Share, error) {
	n := len(groups)
	outBuf := wire.NewBuffer()
	mLocal := make([]ring.Elem, n)
	negLambdas := make([]ring.Elem, n)
	for i, terms := range groups {
		gamma, negLambda, err := o.readTapePair()
		if err != nil {
			return nil, err
		}
		v := o.r.Zero()
		for _, pr := range terms {
			v = o.r.Add(v, o.localMul(pr[0], pr[1]))
		}
		mz := o.r.Add(o.r.Sub(v, negLambda), gamma)
		outBuf.StoreBytes(o.r.Bytes(mz))
		mLocal[i] = mz
		negLambdas[i] = negLambda
	}
	return o.combine(outBuf, mLocal, negLambdas)
}

func (o *AstraOnline) combine(outBuf *wire.Buffer, mLocal, negLambdas []ring.Elem) ([]share.Share, error) {
	n := len(mLocal)
	recvBuf, err := o.peer.Exchange(outBuf)
	if err != nil {
		return nil, err
	}
	if recvBuf.Len() < n*o.r.ByteLen() {
		return nil, errs.ShortRead("astra online exchange", int(o.cfg.Role), n, 0, nil)
	}
	results := make([]share.Share, n)
	for i := range results {
		b, err := recvBuf.GetBytes(o.r.ByteLen())
		if err != nil {
			return nil, err
		}
		m := o.r.Add(mLocal[i], o.r.FromBytes(b))
		results[i] = share.Share{M: m, NegLambda: negLambdas[i]}
	}
	return results, nil
}
