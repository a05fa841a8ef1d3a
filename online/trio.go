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

// TrioOnline runs the Trio online multiplication protocol. Grounded on
// Trio<T>::exchange/pre_mul/pre_dot/pre_common in Trio.hpp.
//
// Unlike AstraOnline's result, where M is a value both online parties
// compute identically (spec section 4.2's "m is public to both online
// parties"), Trio's per-party combining step is asymmetric: party 1
// and party 2 each land on a *different* numeric value in their own
// Share.M, using their own half of the output mask differently inside
// the combine formula. The two halves are built so that TrioMC's
// opening formula — party 1's M plus party 2's NegLambda, with no
// further subtraction — still recovers the plaintext product; that
// was checked by hand expansion for a zero-mask corner case. The
// combine step below is kept as a literal mirror of exchange()'s
// control flow rather than an independently re-derived formula.
type TrioOnline struct {
	cfg  *astraconfig.Config
	r    *ring.Ring
	peer *party.Conn
	prep *tape.Reader
}

// NewTrioOnline constructs the online protocol object for this party.
func NewTrioOnline(cfg *astraconfig.Config, r *ring.Ring, peer *party.Conn, prep *tape.Reader) *TrioOnline {
	return &TrioOnline{cfg: cfg, r: r, peer: peer, prep: prep}
}

func (o *TrioOnline) localMul(x, y share.Share) ring.Elem {
	if o.cfg.Role == astraconfig.Party1 {
		return share.LocalMulP1Trio(o.r, x, y)
	}
	return share.LocalMulP2Trio(o.r, x, y)
}

// readTapePair reads one batch element's tape entry: party 1's is
// (r01, −λ(xy)⁽¹⁾); party 2's is (correction, −λ(xy)⁽²⁾), where
// correction already folds in the helper's local_mul_P0 and r01 (spec
// section 4.3, TrioPrepProtocol.PrepareMulBatch).
func (o *TrioOnline) readTapePair() (corr, negLambda ring.Elem, err error) {
	corr, err = o.prep.GetElem(o.r)
	if err != nil {
		return ring.Elem{}, ring.Elem{}, err
	}
	negLambda, err = o.prep.GetElem(o.r)
	if err != nil {
		return ring.Elem{}, ring.Elem{}, err
	}
	return corr, negLambda, nil
}

// MulBatch computes, for each operand pair, this party's half of a
// Trio multiplication tuple's online exchange (Trio<T>::pre_mul +
// exchange()'s post-pass-around combine).
func (o *TrioOnline) MulBatch(pairs [][2]share.Share) ([]share.Share, error) {
	n := len(pairs)
	outBuf := wire.NewBuffer()
	ownV := make([]ring.Elem, n)
	negLambdas := make([]ring.Elem, n)
	for i, pr := range pairs {
		corr, negLambda, err := o.readTapePair()
		if err != nil {
			return nil, err
		}
		v := o.r.Add(o.localMul(pr[0], pr[1]), corr)
		o.storeOutgoing(outBuf, v, negLambda)
		ownV[i] = v
		negLambdas[i] = negLambda
	}
	return o.combine(outBuf, ownV, negLambdas)
}

// DotBatch is MulBatch's dot-product counterpart: local_mul
// contributions from every term in a group accumulate before the
// single per-group tape read and exchange slot (spec section 4.4).
func (o *TrioOnline) DotBatch(groups [][][2]share.Share) ([]share.Share, error) {
	n := len(groups)
	outBuf := wire.NewBuffer()
	ownV := make([]ring.Elem, n)
	negLambdas := make([]ring.Elem, n)
	for i, terms := range groups {
		corr, negLambda, err := o.readTapePair()
		if err != nil {
			return nil, err
		}
		acc := o.r.Zero()
		for _, pr := range terms {
			acc = o.r.Add(acc, o.localMul(pr[0], pr[1]))
		}
		v := o.r.Add(acc, corr)
		o.storeOutgoing(outBuf, v, negLambda)
		ownV[i] = v
		negLambdas[i] = negLambda
	}
	return o.combine(outBuf, ownV, negLambdas)
}

// storeOutgoing writes this party's os[0] entry: party 1 sends
// V+negLambda, party 2 sends V−negLambda (Trio<T>::pre_dot).
func (o *TrioOnline) storeOutgoing(buf *wire.Buffer, v, negLambda ring.Elem) {
	var s ring.Elem
	if o.cfg.Role == astraconfig.Party1 {
		s = o.r.Add(v, negLambda)
	} else {
		s = o.r.Sub(v, negLambda)
	}
	buf.StoreBytes(o.r.Bytes(s))
}

// combine exchanges every batch's outgoing summand with the other
// online party and folds the reply back in exactly as
// Trio<T>::exchange does post-pass_around: party 1 computes
// received−ownV, party 2 computes ownV−received.
func (o *TrioOnline) combine(outBuf *wire.Buffer, ownV, negLambdas []ring.Elem) ([]share.Share, error) {
	n := len(ownV)
	recvBuf, err := o.peer.Exchange(outBuf)
	if err != nil {
		return nil, err
	}
	if recvBuf.Len() < n*o.r.ByteLen() {
		return nil, errs.ShortRead("trio online exchange", int(o.cfg.Role), n, 0, nil)
	}
	results := make([]share.Share, n)
	for i := range results {
		b, err := recvBuf.GetBytes(o.r.ByteLen())
		if err != nil {
			return nil, err
		}
		received := o.r.FromBytes(b)
		var m ring.Elem
		if o.cfg.Role == astraconfig.Party1 {
			m = o.r.Sub(received, ownV[i])
		} else {
			m = o.r.Sub(ownV[i], received)
		}
		results[i] = share.Share{M: m, NegLambda: negLambdas[i]}
	}
	return results, nil
}
