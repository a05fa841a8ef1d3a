//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package trunc

import (
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/wire"
)

// sendElems frames n ring elements into one buffer and sends it over
// conn — the helper's one preprocessing-time message per truncation
// batch, same framing as prep.sendElems.
func sendElems(conn *party.Conn, r *ring.Ring, elems []ring.Elem) error {
	buf := wire.NewBuffer()
	for _, e := range elems {
		buf.StoreBytes(r.Bytes(e))
	}
	return conn.Send(buf)
}

// recvElems receives one batch of n ring elements sent by sendElems.
func recvElems(conn *party.Conn, r *ring.Ring, n int) ([]ring.Elem, error) {
	buf, err := conn.Receive()
	if err != nil {
		return nil, err
	}
	out := make([]ring.Elem, n)
	for i := range out {
		b, err := buf.GetBytes(r.ByteLen())
		if err != nil {
			return nil, err
		}
		out[i] = r.FromBytes(b)
	}
	return out, nil
}
