//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package scenario names the six end-to-end demo computations spec
// section 8's table enumerates and fixes the plaintext inputs each
// one needs, so the preprocessing and online party executables agree
// on the same batch shape (how many Input slots, which party owns
// each, and any truncation/unsplit parameters) without either side
// re-deriving it independently.
package scenario

import (
	"fmt"

	"github.com/astra-mpc/astra/astraconfig"
)

// ID names one of spec section 8's end-to-end scenarios.
type ID int

const (
	AddThenMultiply ID = iota + 1
	DotProduct
	SignedMultiply
	BigGapTruncate
	SmallGapTruncate
	UnsplitThenAdd
)

// String renders the scenario's name as spec section 8's table
// header would.
func (id ID) String() string {
	switch id {
	case AddThenMultiply:
		return "add-then-multiply"
	case DotProduct:
		return "dot-product"
	case SignedMultiply:
		return "signed-multiply"
	case BigGapTruncate:
		return "big-gap-truncate"
	case SmallGapTruncate:
		return "small-gap-truncate-bound"
	case UnsplitThenAdd:
		return "unsplit-then-add"
	default:
		return "unknown"
	}
}

// Parse validates a -scenario flag value against the six defined
// IDs.
func Parse(n int) (ID, error) {
	if n < int(AddThenMultiply) || n > int(UnsplitThenAdd) {
		return 0, fmt.Errorf("scenario: %d out of range 1-6", n)
	}
	return ID(n), nil
}

// Input names one plaintext operand and which online party supplies
// it, mirroring online.InputSlot's Owner/Value convention. The
// non-owning party's copy of Value is never read; both executables
// still need it to build correctly-shaped InputSlot/MulOperands
// batches.
type Input struct {
	Owner astraconfig.Role
	Value int64
}

// Def is one scenario's fixed parameters: enough for both the prep
// and online binaries to build matching batches independently.
type Def struct {
	ID ID

	// Inputs feeds scenarios 1-5's Input round, in the order each
	// binary must submit them.
	Inputs []Input

	// K, M parameterize scenarios 4-5's truncation: K is the value's
	// own declared bit-length bound (trunc.Tuple.K/BigGapOperand.K),
	// distinct from the ring's bit-width passed to Define, and M is
	// the shift amount.
	K, M int

	// Bits and AddConst parameterize scenario 6's unsplit: Bits are
	// already-public constants (0 or 1, LSB first), AddConst is added
	// to the recombined arithmetic value before opening.
	Bits     []int64
	AddConst int64

	// Want is the expected opened value, spec section 8's table
	// column of the same name, printed for comparison against the
	// online binary's actual result.
	Want string
}

// Define returns scenario id's fixed definition. width is the ring's
// bit-width (they assume width=64 by default, per spec section 8's
// "k=64" scenario table header); it parameterizes Def.K only where a
// scenario's declared value bound is naturally tied to it (small-gap
// truncation, whose input occupies nearly the full ring), not where a
// scenario wants to demonstrate a genuinely narrower declared bound
// (big-gap truncation).
func Define(id ID, width int) (Def, error) {
	switch id {
	case AddThenMultiply:
		return Def{ID: id, Inputs: []Input{
			{astraconfig.Party1, 3},
			{astraconfig.Party2, 5},
			{astraconfig.Party1, 7},
		}, Want: "56"}, nil
	case DotProduct:
		return Def{ID: id, Inputs: []Input{
			{astraconfig.Party1, 1}, {astraconfig.Party2, 4},
			{astraconfig.Party1, 2}, {astraconfig.Party2, 5},
			{astraconfig.Party1, 3}, {astraconfig.Party2, 6},
		}, Want: "32"}, nil
	case SignedMultiply:
		return Def{ID: id, Inputs: []Input{
			{astraconfig.Party1, -4},
			{astraconfig.Party2, 7},
		}, Want: "-28"}, nil
	case BigGapTruncate:
		// K=20 declares x=1024 to fit comfortably within a 20-bit signed
		// range, well short of the 64-bit ring — width-K=44 >= the
		// default kappa=40, so this genuinely classifies as big-gap
		// (trunc.Classify), unlike a declared bound equal to the ring's
		// own width would.
		return Def{ID: id, Inputs: []Input{
			{astraconfig.Party1, 1024},
		}, K: 20, M: 10, Want: "1"}, nil
	case SmallGapTruncate:
		// K=width: x=2^62 needs nearly the full ring to stay positive,
		// so the declared bound is the ring's own width, leaving no
		// headroom — width-K=0 < kappa, correctly small-gap.
		return Def{ID: id, Inputs: []Input{
			{astraconfig.Party1, 1 << 62},
		}, K: width, M: 3, Want: "2^59 or 2^59+1"}, nil
	case UnsplitThenAdd:
		return Def{ID: id, Bits: []int64{1, 0, 1}, AddConst: 3, Want: "8"}, nil
	default:
		return Def{}, fmt.Errorf("scenario: unknown id %d", id)
	}
}
