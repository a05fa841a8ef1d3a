//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package party

import "io"

// Pipe returns two connected in-memory Conns, adapted from
// p2p.Pipe(). Anything sent on one endpoint is received on the
// other. Used by tests in place of real sockets.
func Pipe() (*Conn, *Conn) {
	var p0, p1 rawPipe
	p0.r, p1.w = io.Pipe()
	p1.r, p0.w = io.Pipe()
	return NewConn(&p0, 0), NewConn(&p1, 0)
}

// Ring3 returns three in-memory Conn pairs wiring parties 0, 1, 2
// into a ring: conns[i][j] is party i's connection to party j.
// Extends p2p.Pipe()'s two-party helper to the engine's three-party
// topology for tests.
func Ring3() (conns [3][3]*Conn) {
	c01a, c01b := Pipe()
	c12a, c12b := Pipe()
	c20a, c20b := Pipe()

	conns[0][1], conns[1][0] = c01a, c01b
	conns[1][2], conns[2][1] = c12a, c12b
	conns[2][0], conns[0][2] = c20a, c20b
	return
}

type rawPipe struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *rawPipe) Close() error {
	if err := p.r.Close(); err != nil {
		return err
	}
	return p.w.Close()
}

func (p *rawPipe) Read(data []byte) (int, error) {
	return p.r.Read(data)
}

func (p *rawPipe) Write(data []byte) (int, error) {
	return p.w.Write(data)
}
