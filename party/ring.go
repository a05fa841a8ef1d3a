//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package party

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"

	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/errs"
)

// Topology holds a party's two live connections: Left to party
// (myNum-1 mod 3), Right to party (myNum+1 mod 3). It is the
// bootstrap result spec section 6 describes: "Parties connect in a
// ring; each party listens on port_base + party_id." Adapted from
// gmw.Network's leader/peer dial-or-accept sequencing, generalized
// from star to ring topology.
type Topology struct {
	MyNum int
	Left  *Conn
	Right *Conn
}

// Addresses maps party number to "host:port".
type Addresses map[int]string

// Dial establishes the ring topology for party myNum out of three. To
// avoid connect-connect deadlock, each party dials the party with the
// numerically larger index and accepts from the party with the
// smaller index, the same asymmetric rule the teacher's gmw.Network
// uses ("if self.id < peer.id { dial } else { accept }"). The dialer
// sends its party number as a one-byte hello, and the acceptor files
// the connection under that number, whatever order the dials arrive in.
//
// tlsConfig selects the default transport spec section 6 requires
// (TLS over TCP); pass nil only for local/test deployments where the
// transport is already secured by other means.
func Dial(cfg *astraconfig.Config, addrs Addresses, tlsConfig *tls.Config) (*Topology, error) {
	me := int(cfg.Role)
	left := (me + 2) % 3
	right := (me + 1) % 3

	listenAddr, ok := addrs[me]
	if !ok {
		return nil, errs.New(errs.Configuration, me, "no listen address for party %d", me)
	}
	ln, err := listen(listenAddr, tlsConfig)
	if err != nil {
		return nil, errs.Wrap(errs.IO, me, err, "listen on %s", listenAddr)
	}
	defer ln.Close()

	conns := make(map[int]net.Conn)
	for _, peer := range []int{left, right} {
		if peer == me {
			continue
		}
		if me < peer {
			c, err := dial(addrs[peer], tlsConfig)
			if err != nil {
				return nil, errs.Wrap(errs.IO, me, err, "dial party %d", peer)
			}
			if _, err := c.Write([]byte{byte(me)}); err != nil {
				return nil, errs.Wrap(errs.IO, me, err, "announce to party %d", peer)
			}
			conns[peer] = c
		} else {
			c, err := ln.Accept()
			if err != nil {
				return nil, errs.Wrap(errs.IO, me, err, "accept party %d", peer)
			}
			var id [1]byte
			if _, err := io.ReadFull(c, id[:]); err != nil {
				return nil, errs.Wrap(errs.IO, me, err, "read hello for party %d", peer)
			}
			from := int(id[0])
			if (from != left && from != right) || conns[from] != nil {
				return nil, errs.New(errs.IO, me, "unexpected connection from party %d", from)
			}
			conns[from] = c
		}
	}
	// Mixed-order accepts when both neighbors dial us: drain remaining
	// accepts for any peer not yet connected.
	for _, peer := range []int{left, right} {
		if peer == me || conns[peer] != nil {
			continue
		}
		c, err := ln.Accept()
		if err != nil {
			return nil, errs.Wrap(errs.IO, me, err, "accept party %d", peer)
		}
		conns[peer] = c
	}

	return &Topology{
		MyNum: me,
		Left:  NewConn(conns[left], left),
		Right: NewConn(conns[right], right),
	}, nil
}

func listen(addr string, tlsConfig *tls.Config) (net.Listener, error) {
	if tlsConfig != nil {
		return tls.Listen("tcp", addr, tlsConfig)
	}
	return net.Listen("tcp", addr)
}

func dial(addr string, tlsConfig *tls.Config) (net.Conn, error) {
	if tlsConfig != nil {
		return tls.Dial("tcp", addr, tlsConfig)
	}
	return net.Dial("tcp", addr)
}

// DefaultAddresses builds the Addresses map from a port base and a
// list of hosts, one per party: party i listens on hosts[i]:portBase+i.
func DefaultAddresses(hosts [3]string, portBase int) Addresses {
	a := make(Addresses, 3)
	for i, h := range hosts {
		a[i] = fmt.Sprintf("%s:%d", h, portBase+i)
	}
	return a
}
