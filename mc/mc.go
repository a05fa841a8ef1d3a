//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package mc implements Open (MAC-check-free reconstruction, spec
// section 4.6): each online party reduces its share to one public
// summand, the two exchange summands, and each adds the two together
// to recover the plaintext. Grounded on Protocols/AstraMC.h/.hpp and
// Protocols/TrioMC.h's use of SemiMC's plain additive-open exchange —
// there is no MAC here because the system is semi-honest, so
// MAC_Check_Base's machinery collapses to a bare sum.
package mc

import (
	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/errs"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/wire"
)

// openBatch runs one exchange round for a batch of summands: every
// party sends its own, receives the other's, and returns the sum —
// the reconstructed plaintext for each slot (AstraMC<T>::exchange /
// TrioMC's identical use of SemiMC::exchange).
func openBatch(r *ring.Ring, peer *party.Conn, role astraconfig.Role, mine []ring.Elem) ([]ring.Elem, error) {
	n := len(mine)
	outBuf := wire.NewBuffer()
	for _, s := range mine {
		outBuf.StoreBytes(r.Bytes(s))
	}
	recvBuf, err := peer.Exchange(outBuf)
	if err != nil {
		return nil, err
	}
	if recvBuf.Len() < n*r.ByteLen() {
		return nil, errs.ShortRead("mc open", int(role), n, 0, nil)
	}
	out := make([]ring.Elem, n)
	for i := range out {
		b, err := recvBuf.GetBytes(r.ByteLen())
		if err != nil {
			return nil, err
		}
		out[i] = r.Add(mine[i], r.FromBytes(b))
	}
	return out, nil
}
