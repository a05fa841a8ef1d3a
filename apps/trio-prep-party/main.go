//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Command trio-prep-party runs the offline preprocessing role (spec
// section 4.3) for one party of a fixed end-to-end demo scenario
// (spec section 8) using the Trio family, writing that party's tape
// file for trio-party to consume.
package main

import (
	"flag"
	"log"

	"github.com/astra-mpc/astra/apps/internal/bootstrap"
	"github.com/astra-mpc/astra/apps/internal/scenario"
	"github.com/astra-mpc/astra/astraconfig"
	"github.com/astra-mpc/astra/prep"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/share"
	"github.com/astra-mpc/astra/tape"
	"github.com/astra-mpc/astra/trunc"
	"github.com/astra-mpc/astra/unsplit"
)

func main() {
	roleFlag := flag.String("role", "", "helper, party1, or party2")
	hostsFlag := flag.String("hosts", "127.0.0.1,127.0.0.1,127.0.0.1",
		"comma-separated host for helper,party1,party2")
	portBase := flag.Int("port-base", 14000, "base TCP port; party i listens on port-base+i")
	k := flag.Int("k", 64, "ring bit width")
	useTLS := flag.Bool("tls", false, "use an ephemeral self-signed TLS transport")
	statSecurity := flag.Int("stat-security", 0, "statistical security parameter (default 40)")
	scenarioFlag := flag.Int("scenario", int(scenario.AddThenMultiply), "end-to-end scenario to prepare, 1-6 (spec section 8)")
	tapePath := flag.String("tape", "", "output preprocessing tape path (required for party1/party2)")
	flag.Parse()
	log.SetFlags(0)

	role, err := bootstrap.ParseRole(*roleFlag)
	if err != nil {
		log.Fatal(err)
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
	if role != astraconfig.Helper && *tapePath == "" {
		log.Fatal("trio-prep-party: -tape is required for party1/party2")
	}

	cfg := &astraconfig.Config{K: *k, Role: role, StatSecurity: *statSecurity, PortBase: *portBase}
	r := ring.NewRing(*k)

	topo, prngs, err := bootstrap.Connect(cfg, hosts, *portBase, *useTLS)
	if err != nil {
		log.Fatal(err)
	}
	defer topo.Left.Close()
	defer topo.Right.Close()

	var w *tape.Writer
	if role != astraconfig.Helper {
		w, err = tape.Create(*tapePath, int(role))
		if err != nil {
			log.Fatal(err)
		}
		defer w.Close()
	}

	var inputMasks []share.PrepShare
	if id != scenario.UnsplitThenAdd {
		linkParty1, linkParty2, helperLink := bootstrap.InputLinks(cfg, topo)
		inputPrep := prep.NewInputPrepProtocol(cfg, r, prngs, linkParty1, linkParty2, helperLink, w)
		owners := make([]astraconfig.Role, len(def.Inputs))
		for i, in := range def.Inputs {
			owners[i] = in.Owner
		}
		inputMasks, err = inputPrep.PrepareInputBatch(owners)
		if err != nil {
			log.Fatal(err)
		}
	}

	mulPrep := prep.NewTrioPrepProtocol(cfg, r, prngs, bootstrap.HelperToParty2(cfg, topo), w)

	switch id {
	case scenario.AddThenMultiply:
		var sumMask, zMask share.PrepShare
		if role == astraconfig.Helper {
			sumMask = share.AddPrep(r, inputMasks[0], inputMasks[1])
			zMask = inputMasks[2]
		}
		if _, err := mulPrep.PrepareMulBatch([]prep.MulOperands{{X: sumMask, Y: zMask}}); err != nil {
			log.Fatal(err)
		}
	case scenario.DotProduct:
		pairs := make([]prep.MulOperands, 3)
		if role == astraconfig.Helper {
			for i := range pairs {
				pairs[i] = prep.MulOperands{X: inputMasks[2*i], Y: inputMasks[2*i+1]}
			}
		}
		if _, err := mulPrep.PrepareMulBatch(pairs); err != nil {
			log.Fatal(err)
		}
	case scenario.SignedMultiply:
		var x, y share.PrepShare
		if role == astraconfig.Helper {
			x, y = inputMasks[0], inputMasks[1]
		}
		if _, err := mulPrep.PrepareMulBatch([]prep.MulOperands{{X: x, Y: y}}); err != nil {
			log.Fatal(err)
		}
	case scenario.BigGapTruncate, scenario.SmallGapTruncate:
		// Truncation's input is the raw Input share above, never a
		// multiplication result, so it is already common-M in Trio
		// exactly as it is in Astra (online.InputOnline's doc
		// comment): BigGapPrep/SmallGapPrep need no Trio-specific
		// handling at all, only the ordinary helper λ-sum.
		var lambdaTotal ring.Elem
		if role == astraconfig.Helper {
			lambdaTotal = inputMasks[0].Sum(r)
		}
		op := trunc.BigGapOperand{LambdaTotal: lambdaTotal, K: def.K, M: def.M}
		truncHelperLink := bootstrap.HelperToParty2(cfg, topo)
		if id == scenario.BigGapTruncate {
			tp := trunc.NewBigGapPrep(cfg, r, prngs, truncHelperLink, w)
			if _, err := tp.PrepareBatch([]trunc.BigGapOperand{op}); err != nil {
				log.Fatal(err)
			}
		} else {
			tp := trunc.NewSmallGapPrep(cfg, r, prngs, truncHelperLink, w)
			if _, err := tp.PrepareBatch([]trunc.BigGapOperand{op}); err != nil {
				log.Fatal(err)
			}
		}
	case scenario.UnsplitThenAdd:
		up := unsplit.NewTrioPrep(cfg, r, prngs, bootstrap.HelperToParty2(cfg, topo), w)
		if _, err := up.PrepareBatch(len(def.Bits)); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("%s prepared scenario %d (%s)", bootstrap.Badge(role), int(id), id)
}
