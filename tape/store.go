//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package tape implements the preprocessing tape: a file-backed FIFO
// of correlated-randomness values produced by the helper/prep role
// during the offline phase and consumed strictly in order by the
// online phase (spec sections 4.3, 4.8, 6). A tape file is owned by
// exactly one writer for its entire life, then by exactly one reader;
// it is never opened for both at once and never replayed.
package tape

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/astra-mpc/astra/errs"
	"github.com/astra-mpc/astra/ring"
	"github.com/astra-mpc/astra/wire"
)

// Writer appends preprocessing entries to a tape file, batching them
// into length-prefixed frames so the reader side can detect a short
// or truncated tape instead of blocking forever (spec section 4.8).
type Writer struct {
	f        *os.File
	w        *bufio.Writer
	batch    *wire.Buffer
	batchLen int
	partyNum int
}

// Create opens path for writing, truncating any existing file. path
// is typically derived from the run's tape-directory convention
// (spec section 6: one file per (protocol, role, party) triple).
func Create(path string, partyNum int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(errs.IO, partyNum, err, "create tape %s", path)
	}
	return &Writer{
		f:        f,
		w:        bufio.NewWriter(f),
		batch:    wire.NewBuffer(),
		partyNum: partyNum,
	}, nil
}

// PutElem appends a ring element to the current batch.
func (t *Writer) PutElem(r *ring.Ring, e ring.Elem) {
	t.batch.StoreBytes(r.Bytes(e))
	t.batchLen++
}

// PutBit appends a single boolean to the current batch.
func (t *Writer) PutBit(b bool) {
	t.batch.StoreBit(b)
	t.batchLen++
}

// FlushBatch frames and writes every entry appended since the last
// FlushBatch, per spec section 4.3's "flushed per batch" requirement.
// Entries written but not flushed are not guaranteed durable.
func (t *Writer) FlushBatch() error {
	t.batch.FlushBits()
	if err := wire.WriteFramed(t.w, t.batch); err != nil {
		return errs.Wrap(errs.IO, t.partyNum, err, "flush tape batch")
	}
	t.batch.Reset()
	t.batchLen = 0
	return nil
}

// Close flushes any pending batch, syncs, and closes the underlying
// file.
func (t *Writer) Close() error {
	if t.batchLen > 0 {
		if err := t.FlushBatch(); err != nil {
			return err
		}
	}
	if err := t.w.Flush(); err != nil {
		return errs.Wrap(errs.IO, t.partyNum, err, "flush tape writer")
	}
	if err := t.f.Sync(); err != nil {
		return errs.Wrap(errs.IO, t.partyNum, err, "sync tape")
	}
	return t.f.Close()
}

// Reader consumes a tape file sequentially, one framed batch at a
// time, tracking a byte offset for diagnostics on short-read errors.
type Reader struct {
	f        *os.File
	r        *bufio.Reader
	cur      *wire.Buffer
	offset   int64
	partyNum int
}

// Open opens path for sequential reading.
func Open(path string, partyNum int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IO, partyNum, err, "open tape %s", path)
	}
	return &Reader{f: f, r: bufio.NewReader(f), partyNum: partyNum}, nil
}

func (t *Reader) nextBatch() error {
	buf, err := wire.ReadFramed(t.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errs.ShortRead("tape", t.partyNum, 0, t.offset, err)
		}
		return errs.Wrap(errs.IO, t.partyNum, err, "read tape batch")
	}
	t.offset += int64(wire.LengthPrefixSize + buf.Len())
	t.cur = buf
	return nil
}

// GetElem reads the next ring element, advancing to the next framed
// batch transparently if the current one is exhausted. Returns an
// IO-kind errs.ShortRead error ("insufficient tape data") if no more
// batches remain.
func (t *Reader) GetElem(r *ring.Ring) (ring.Elem, error) {
	b, err := t.bytes(r.ByteLen())
	if err != nil {
		return ring.Elem{}, err
	}
	return r.FromBytes(b), nil
}

// GetBit reads the next boolean.
func (t *Reader) GetBit() (bool, error) {
	for {
		if t.cur != nil {
			if b, err := t.cur.GetBit(); err == nil {
				return b, nil
			}
		}
		if err := t.nextBatch(); err != nil {
			return false, err
		}
	}
}

func (t *Reader) bytes(n int) ([]byte, error) {
	for {
		if t.cur != nil {
			if b, err := t.cur.GetBytes(n); err == nil {
				return b, nil
			}
		}
		if err := t.nextBatch(); err != nil {
			return nil, err
		}
	}
}

// Close releases the underlying file.
func (t *Reader) Close() error {
	return t.f.Close()
}
