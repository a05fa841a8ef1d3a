//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package party implements the network layer shared by every
// protocol thread: a buffered, length-prefixed connection to one
// remote party (adapted from the teacher's p2p.Conn), an in-memory
// pipe for tests, and the ring-topology bootstrap spec section 6
// describes ("Parties connect in a ring; each party listens on
// port_base + party_id").
package party

import (
	"io"
	"sync/atomic"

	"github.com/astra-mpc/astra/errs"
	"github.com/astra-mpc/astra/wire"
)

// Conn implements one party-to-party connection: a buffered exchange
// of wire.Buffer frames, with I/O statistics. Adapted from
// p2p.Conn/IOStats, specialized to the engine's Buffer type instead
// of raw byte slices.
type Conn struct {
	rw       io.ReadWriter
	partyNum int
	Stats    IOStats
}

// IOStats tracks bytes sent and received on a Conn, adapted from
// p2p.IOStats.
type IOStats struct {
	Sent  atomic.Uint64
	Recvd atomic.Uint64
}

// NewConn wraps rw as a party connection. partyNum identifies the
// remote party, for error context.
func NewConn(rw io.ReadWriter, partyNum int) *Conn {
	return &Conn{rw: rw, partyNum: partyNum}
}

// Send writes b as one length-prefixed frame.
func (c *Conn) Send(b *wire.Buffer) error {
	if err := wire.WriteFramed(c.rw, b); err != nil {
		return errs.Wrap(errs.IO, c.partyNum, err, "send frame")
	}
	c.Stats.Sent.Add(uint64(len(b.Bytes())))
	return nil
}

// Receive reads one length-prefixed frame written by Send.
func (c *Conn) Receive() (*wire.Buffer, error) {
	b, err := wire.ReadFramed(c.rw)
	if err != nil {
		return nil, errs.Wrap(errs.IO, c.partyNum, err, "receive frame")
	}
	c.Stats.Recvd.Add(uint64(b.Len()))
	return b, nil
}

// Exchange sends out and concurrently waits for the peer's reply,
// implementing the single pass-around round spec section 4.4
// describes for a multiplication/truncation/unsplit batch.
func (c *Conn) Exchange(out *wire.Buffer) (*wire.Buffer, error) {
	type result struct {
		buf *wire.Buffer
		err error
	}
	ch := make(chan result, 1)
	go func() {
		b, err := c.Receive()
		ch <- result{b, err}
	}()
	if err := c.Send(out); err != nil {
		return nil, err
	}
	res := <-ch
	if res.err != nil {
		return nil, res.err
	}
	return res.buf, nil
}

// Close closes the underlying connection, if it supports it.
func (c *Conn) Close() error {
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
