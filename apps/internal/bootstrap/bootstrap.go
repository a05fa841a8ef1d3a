//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package bootstrap collects the ring-topology wiring every party
// executable repeats: parsing -role/-hosts into a astraconfig.Config
// and a connected party.Topology, exchanging the correlated PRNG
// seeds, and picking out the one or two connections a given protocol
// object needs from that topology by this codebase's fixed edge
// convention (see prep/astra.go and trunc/biggap.go's doc comments).
// None of this lives in the core packages themselves: CLI argument
// parsing is out of scope for the protocol engine, exactly as the
// teacher's apps/garbled wires circuit+ot+compiler without putting
// any of that wiring inside those packages.
package bootstrap

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/party"
	"github.com/astra-mpc/astra/prng"
	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/symbols"
)

// ParseRole turns a -role flag value into an astraconfig.Role.
func ParseRole(s string) (astraconfig.Role, error) {
	switch s {
	case "helper":
		return astraconfig.Helper, nil
	case "party1":
		return astraconfig.Party1, nil
	case "party2":
		return astraconfig.Party2, nil
	default:
		return 0, fmt.Errorf("bootstrap: unknown role %q (want helper, party1, or party2)", s)
	}
}

// Hosts names the three ring-topology hosts in role order (helper,
// party1, party2), parsed from a -hosts flag value.
type Hosts [3]string

// ParseHosts parses a comma-separated -hosts flag value.
func ParseHosts(s string) (Hosts, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Hosts{}, fmt.Errorf("bootstrap: -hosts needs exactly 3 comma-separated entries, got %d", len(parts))
	}
	return Hosts{parts[0], parts[1], parts[2]}, nil
}

// Addresses builds the party.Addresses map spec section 6's ring
// bootstrap dials, one TCP port per party starting at portBase.
func (h Hosts) Addresses(portBase int) party.Addresses {
	return party.DefaultAddresses([3]string(h), portBase)
}

// SelfSignedTLS builds an ephemeral, loopback-oriented TLS config for
// the -tls flag: each process generates its own throwaway certificate
// and skips peer verification. This buys confidentiality against a
// passive network observer for the demo deployment; it is not a PKI,
// and a real deployment provisions long-lived certificates out of
// band instead. The teacher's own apps dial plain, unencrypted TCP
// (gmw.Network) — spec section 6's TLS default is this layer's own
// addition on top of that shape.
func SelfSignedTLS() (*tls.Config, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	serial, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		return nil, err
	}
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: "astra-mpc ring party"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates:       []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: priv}},
		InsecureSkipVerify: true,
		MinVersion:         tls.VersionTLS13,
	}, nil
}

// Connect dials the ring topology and performs the startup PRNG seed
// exchange (spec section 4.1 step 1), returning both the topology and
// this party's correlated PRNG pair.
func Connect(cfg *astraconfig.Config, hosts Hosts, portBase int, useTLS bool) (*party.Topology, *prng.Pair, error) {
	var tlsConfig *tls.Config
	if useTLS {
		var err error
		tlsConfig, err = SelfSignedTLS()
		if err != nil {
			return nil, nil, err
		}
	}
	topo, err := party.Dial(cfg, hosts.Addresses(portBase), tlsConfig)
	if err != nil {
		return nil, nil, err
	}
	left, mine, err := party.ExchangeSeeds(cfg.GetRandom(), topo.Right, topo.Left)
	if err != nil {
		return nil, nil, err
	}
	return topo, prng.NewPairFromSeeds(left, mine), nil
}

// HelperToParty2 returns the one preprocessing-time link the helper
// and party 2 share, by this codebase's fixed convention (party 1
// always derives its half locally from PRNG state, party 2 always
// receives the one relayed value per batch — prep/astra.go,
// trunc/biggap.go, unsplit/unsplit.go). nil on party 1.
func HelperToParty2(cfg *astraconfig.Config, topo *party.Topology) *party.Conn {
	switch cfg.Role {
	case astraconfig.Helper:
		return topo.Left
	case astraconfig.Party2:
		return topo.Right
	default:
		return nil
	}
}

// InputLinks returns the three connections InputPrepProtocol needs,
// selecting whichever are relevant to cfg.Role; the other two
// returned values are nil (see prep/input.go's field doc comments for
// which role uses which).
func InputLinks(cfg *astraconfig.Config, topo *party.Topology) (linkParty1, linkParty2, helperLink *party.Conn) {
	switch cfg.Role {
	case astraconfig.Helper:
		return topo.Right, topo.Left, nil
	case astraconfig.Party1:
		return nil, nil, topo.Left
	case astraconfig.Party2:
		return nil, nil, topo.Right
	default:
		return nil, nil, nil
	}
}

// Peer returns the connection to the other online party. Only
// meaningful when cfg.Role is Party1 or Party2.
func Peer(cfg *astraconfig.Config, topo *party.Topology) *party.Conn {
	if cfg.Role == astraconfig.Party1 {
		return topo.Right
	}
	return topo.Left
}

// Badge renders a short, role-tagged log prefix, the same per-player
// display-name convention bmr.Player uses (with the same λ glyph) for
// debug output.
func Badge(role astraconfig.Role) string {
	return fmt.Sprintf("%c%d[%s]", symbols.Lambda, int(role), role)
}

// PrintIOStats renders a traffic summary for this party's two ring
// connections, grounded on circuit/timing.go's use of the same
// library for its own sent/received/flushed breakdown.
func PrintIOStats(w io.Writer, topo *party.Topology) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Link").SetAlign(tabulate.ML)
	tab.Header("Sent").SetAlign(tabulate.MR)
	tab.Header("Received").SetAlign(tabulate.MR)

	row := tab.Row()
	row.Column("left").SetFormat(tabulate.FmtItalic)
	row.Column(fmt.Sprintf("%d B", topo.Left.Stats.Sent.Load()))
	row.Column(fmt.Sprintf("%d B", topo.Left.Stats.Recvd.Load()))

	row = tab.Row()
	row.Column("right").SetFormat(tabulate.FmtItalic)
	row.Column(fmt.Sprintf("%d B", topo.Right.Stats.Sent.Load()))
	row.Column(fmt.Sprintf("%d B", topo.Right.Stats.Recvd.Load()))

	tab.Print(w)
}
