//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package errs implements the engine's fatal error taxonomy. Every
// error the engine raises is caught only at the outer virtual-machine
// boundary for logging; there is no recovery within the engine
// (semi-honest model assumes reliable channels).
package errs

import "fmt"

// Kind classifies a fatal engine error.
type Kind int

// Error kinds, per spec section 7.
const (
	// Configuration covers unsupported ring bit-widths, bad player
	// counts, and missing seeds.
	Configuration Kind = iota
	// IO covers short reads/writes on the tape, socket disconnects,
	// and TLS handshake failures.
	IO
	// Framing covers insufficient bytes for a declared batch and
	// length mismatches.
	Framing
	// ProtocolAssertion covers internal invariant violations, e.g. a
	// vector consumed twice. These indicate a bug, not adversarial
	// behavior.
	ProtocolAssertion
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case IO:
		return "io"
	case Framing:
		return "framing"
	case ProtocolAssertion:
		return "protocol assertion"
	default:
		return "unknown"
	}
}

// Error is a fatal engine error, carrying the context spec section 7
// requires: the current tape offset, the batch size, and the party
// number, in addition to an optional wrapped cause.
type Error struct {
	Kind       Kind
	Message    string
	PartyNum   int
	BatchSize  int
	TapeOffset int64
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := fmt.Sprintf("astra: %s: %s (party=%d", e.Kind, e.Message, e.PartyNum)
	if e.BatchSize != 0 {
		s += fmt.Sprintf(", batch=%d", e.BatchSize)
	}
	if e.TapeOffset != 0 {
		s += fmt.Sprintf(", tape_offset=%d", e.TapeOffset)
	}
	s += ")"
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap returns the wrapped cause, enabling errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error of the given kind.
func New(kind Kind, partyNum int, format string, args ...any) *Error {
	return &Error{Kind: kind, PartyNum: partyNum, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, partyNum int, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, PartyNum: partyNum, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ShortRead reports an IO-kind short read, either from the wire or
// from the preprocessing tape, with the offset/batch context spec
// section 7 requires.
func ShortRead(source string, partyNum, batchSize int, tapeOffset int64, cause error) *Error {
	return &Error{
		Kind:       IO,
		Message:    fmt.Sprintf("insufficient %s data", source),
		PartyNum:   partyNum,
		BatchSize:  batchSize,
		TapeOffset: tapeOffset,
		Cause:      cause,
	}
}
