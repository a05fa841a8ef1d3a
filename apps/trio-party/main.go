//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Command trio-party runs the online phase (spec section 4.4) for one
// of the two live Trio parties in a fixed end-to-end demo scenario
// (spec section 8), reading the tape file trio-prep-party wrote for
// this same party number and printing the opened result.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/astra-mpc/astra/apps/internal/bootstrap"
	"github.com/astra-mpc/astra/apps/internal/scenario"
	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/mc"
	"github.com/astra-mpc/astra/online"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
	"github.com/astra-mpc/astra/tape"
	"github.com/astra-mpc/astra/trunc"
	"github.com/astra-mpc/astra/unsplit"
)

func main() {
	roleFlag := flag.String("role", "", "party1 or party2")
	hostsFlag := flag.String("hosts", "127.0.0.1,127.0.0.1,127.0.0.1",
		"comma-separated host for helper,party1,party2")
	portBase := flag.Int("port-base", 14000, "base TCP port; party i listens on port-base+i")
	k := flag.Int("k", 64, "ring bit width")
	useTLS := flag.Bool("tls", false, "use an ephemeral self-signed TLS transport")
	scenarioFlag := flag.Int("scenario", int(scenario.AddThenMultiply), "end-to-end scenario to run, 1-6 (spec section 8)")
	tapePath := flag.String("tape", "", "preprocessing tape path written by trio-prep-party (required)")
	showStats := flag.Bool("stats", false, "print a traffic summary table at exit")
	flag.Parse()
	log.SetFlags(0)

	role, err := bootstrap.ParseRole(*roleFlag)
	if err != nil {
		log.Fatal(err)
	}
	if role == astraconfig.Helper {
		log.Fatal("trio-party: role must be party1 or party2 (the helper has no online phase)")
	}
	hosts, err := bootstrap.ParseHosts(*hostsFlag)
	if err != nil {
		log.Fatal(err)
	}
	id, err := scenario.Parse(*scenarioFlag)
	if err != nil {
		log.Fatal(err)
	}
	def, err := scenario.Define(id, *k)
	if err != nil {
		log.Fatal(err)
	}
	if *tapePath == "" {
		log.Fatal("trio-party: -tape is required")
	}

	cfg := &astraconfig.Config{K: *k, Role: role, PortBase: *portBase}
	r := ring.NewRing(*k)

	topo, _, err := bootstrap.Connect(cfg, hosts, *portBase, *useTLS)
	if err != nil {
		log.Fatal(err)
	}
	defer topo.Left.Close()
	defer topo.Right.Close()

	rd, err := tape.Open(*tapePath, int(role))
	if err != nil {
		log.Fatal(err)
	}
	defer rd.Close()

	peer := bootstrap.Peer(cfg, topo)

	var shares []share.Share
	if id != scenario.UnsplitThenAdd {
		slots := make([]online.InputSlot, len(def.Inputs))
		for i, in := range def.Inputs {
			var v ring.Elem
			if in.Owner == role {
				v = r.FromInt64(in.Value)
			}
			slots[i] = online.InputSlot{Owner: in.Owner, Value: v}
		}
		shares, err = online.NewInputOnline(cfg, r, peer, rd).InputBatch(slots)
		if err != nil {
			log.Fatal(err)
		}
	}

	mul := online.NewTrioOnline(cfg, r, peer, rd)
	opener := mc.NewTrioMC(cfg, r, peer)

	var result ring.Elem
	switch id {
	case scenario.AddThenMultiply:
		sum := share.Add(r, shares[0], shares[1])
		products, err := mul.MulBatch([][2]share.Share{{sum, shares[2]}})
		if err != nil {
			log.Fatal(err)
		}
		opened, err := opener.OpenBatch([]share.Share{products[0]})
		if err != nil {
			log.Fatal(err)
		}
		result = opened[0]
	case scenario.DotProduct:
		group := [][2]share.Share{
			{shares[0], shares[1]},
			{shares[2], shares[3]},
			{shares[4], shares[5]},
		}
		products, err := mul.DotBatch([][][2]share.Share{group})
		if err != nil {
			log.Fatal(err)
		}
		opened, err := opener.OpenBatch([]share.Share{products[0]})
		if err != nil {
			log.Fatal(err)
		}
		result = opened[0]
	case scenario.SignedMultiply:
		products, err := mul.MulBatch([][2]share.Share{{shares[0], shares[1]}})
		if err != nil {
			log.Fatal(err)
		}
		opened, err := opener.OpenBatch([]share.Share{products[0]})
		if err != nil {
			log.Fatal(err)
		}
		result = opened[0]
	case scenario.BigGapTruncate, scenario.SmallGapTruncate:
		// shares came straight from Input, never a multiplication, so
		// they are already common-M: no share.TrioCommonM needed here.
		var truncated []share.Share
		if id == scenario.BigGapTruncate {
			truncated, err = trunc.NewBigGapOnline(r, rd).TruncBatch(shares, def.K, def.M)
		} else {
			truncated, err = trunc.NewSmallGapOnline(cfg, r, rd).TruncBatch(shares, def.K, def.M)
		}
		if err != nil {
			log.Fatal(err)
		}
		opened, err := opener.OpenBatch([]share.Share{truncated[0]})
		if err != nil {
			log.Fatal(err)
		}
		result = opened[0]
	case scenario.UnsplitThenAdd:
		bits := make([]ring.Elem, len(def.Bits))
		for i, b := range def.Bits {
			bits[i] = r.FromInt64(b)
		}
		lifted, err := unsplit.NewTrioOnline(cfg, r, peer, rd).UnsplitBatch(bits)
		if err != nil {
			log.Fatal(err)
		}
		total := share.Constant(r.Zero(), r)
		weight := int64(1)
		for _, s := range lifted {
			total = share.Add(r, total, share.ScaleConst(r, s, r.FromInt64(weight)))
			weight *= 2
		}
		total = share.AddConst(r, total, r.FromInt64(def.AddConst))
		opened, err := opener.OpenBatch([]share.Share{total})
		if err != nil {
			log.Fatal(err)
		}
		result = opened[0]
	}

	log.Printf("%s scenario %d (%s): opened %s (signed %d), want %s",
		bootstrap.Badge(role), int(id), id, result, r.Int64(result), def.Want)

	if *showStats {
		bootstrap.PrintIOStats(os.Stdout, topo)
	}
}
