//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

// Package wire implements the engine's single append/consume byte
// buffer: a length-prefixed framing format (WriteFramed/ReadFramed,
// over any io.Writer/io.Reader) and embedded 7-bit boolean packing.
// Buffer is the one primitive shared by the wire protocol (party.Conn)
// and the preprocessing tape (tape.Writer/tape.Reader) — both are, at bottom, an
// octetStream-style byte buffer with separate read and write heads,
// per spec section 9's "Wire buffer" design note.
//
// All I/O goes through the typed Store*/Get* methods; callers never
// see a raw offset into the underlying slice.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/astra-mpc/astra/errs"
)

// LengthPrefixSize is the size, in bytes, of the little-endian length
// prefix used to frame buffers on the wire (spec section 6).
const LengthPrefixSize = 8

// Buffer is an append/consume byte buffer with independent read and
// write heads.
type Buffer struct {
	data    []byte
	readPos int

	// bit-packing state for StoreBit/GetBit.
	wBitByte  byte
	wBitCount int
	rBitByte  byte
	rBitCount int
	rBitPos   int
}

// NewBuffer returns an empty buffer ready for writing.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFromBytes wraps existing bytes for reading.
func NewBufferFromBytes(b []byte) *Buffer {
	return &Buffer{data: b}
}

// Len returns the number of unread bytes remaining.
func (b *Buffer) Len() int {
	return len(b.data) - b.readPos
}

// Bytes returns the full written content (ignores the read head).
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset discards all content and resets both heads.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.readPos = 0
	b.wBitByte, b.wBitCount = 0, 0
	b.rBitByte, b.rBitCount, b.rBitPos = 0, 0, 0
}

// StoreByte appends a single byte.
func (b *Buffer) StoreByte(v byte) {
	b.data = append(b.data, v)
}

// GetByte consumes a single byte.
func (b *Buffer) GetByte() (byte, error) {
	if b.readPos >= len(b.data) {
		return 0, errs.New(errs.Framing, -1, "buffer exhausted reading byte")
	}
	v := b.data[b.readPos]
	b.readPos++
	return v, nil
}

// StoreBytes appends raw bytes verbatim (no length prefix).
func (b *Buffer) StoreBytes(v []byte) {
	b.data = append(b.data, v...)
}

// GetBytes consumes exactly n raw bytes.
func (b *Buffer) GetBytes(n int) ([]byte, error) {
	if b.readPos+n > len(b.data) {
		return nil, errs.New(errs.Framing, -1,
			"buffer exhausted: need %d bytes, have %d", n, len(b.data)-b.readPos)
	}
	v := b.data[b.readPos : b.readPos+n]
	b.readPos += n
	return v, nil
}

// StoreUint64 appends a little-endian 8-byte length/count field, the
// framing unit spec section 6 mandates for both wire messages and
// preprocessing batches.
func (b *Buffer) StoreUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// GetUint64 consumes a little-endian 8-byte field.
func (b *Buffer) GetUint64() (uint64, error) {
	raw, err := b.GetBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(raw), nil
}

// StoreData appends a length-prefixed blob: an 8-byte little-endian
// length followed by the raw bytes.
func (b *Buffer) StoreData(v []byte) {
	b.StoreUint64(uint64(len(v)))
	b.StoreBytes(v)
}

// GetData consumes a length-prefixed blob written by StoreData.
func (b *Buffer) GetData() ([]byte, error) {
	n, err := b.GetUint64()
	if err != nil {
		return nil, err
	}
	return b.GetBytes(int(n))
}

// StoreBit packs a boolean into the current 7-bit-payload byte,
// flushing a header byte to the buffer every 7 bits (spec section 6:
// "bit-packed booleans use a one-byte header with up to 7 bits of
// payload").
func (b *Buffer) StoreBit(v bool) {
	if v {
		b.wBitByte |= 1 << b.wBitCount
	}
	b.wBitCount++
	if b.wBitCount == 7 {
		b.StoreByte(b.wBitByte)
		b.wBitByte, b.wBitCount = 0, 0
	}
}

// FlushBits flushes any partially-filled bit-packing byte. Must be
// called after the last StoreBit in a group, before any subsequent
// non-bit store, mirroring octetStream's eager per-byte flush.
func (b *Buffer) FlushBits() {
	if b.wBitCount > 0 {
		b.StoreByte(b.wBitByte)
		b.wBitByte, b.wBitCount = 0, 0
	}
}

// GetBit unpacks a boolean written by StoreBit.
func (b *Buffer) GetBit() (bool, error) {
	if b.rBitCount == 0 {
		raw, err := b.GetByte()
		if err != nil {
			return false, err
		}
		b.rBitByte = raw
		b.rBitCount = 7
		b.rBitPos = 0
	}
	v := (b.rBitByte>>b.rBitPos)&1 == 1
	b.rBitPos++
	b.rBitCount--
	return v, nil
}

// WriteFramed writes the buffer's content to w, preceded by an
// 8-byte little-endian length prefix (spec section 6's wire format).
func WriteFramed(w io.Writer, b *Buffer) error {
	var hdr [LengthPrefixSize]byte
	binary.LittleEndian.PutUint64(hdr[:], uint64(len(b.data)))
	if _, err := w.Write(hdr[:]); err != nil {
		return errs.Wrap(errs.IO, -1, err, "write frame header")
	}
	if _, err := w.Write(b.data); err != nil {
		return errs.Wrap(errs.IO, -1, err, "write frame body")
	}
	return nil
}

// ReadFramed reads one length-prefixed buffer from r.
func ReadFramed(r io.Reader) (*Buffer, error) {
	var hdr [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errs.Wrap(errs.IO, -1, err, "read frame header")
	}
	n := binary.LittleEndian.Uint64(hdr[:])
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errs.Wrap(errs.IO, -1, err, "read frame body: want %d bytes", n)
	}
	return NewBufferFromBytes(data), nil
}

// Exchange sends out on w and concurrently reads one framed buffer
// from r, implementing the wire buffer's exchange primitive: the one
// round-trip each multiplication/truncation/unsplit/opening batch
// performs (spec sections 4.4, 4.6, 4.7).
func Exchange(w io.Writer, r io.Reader, out *Buffer) (*Buffer, error) {
	type result struct {
		buf *Buffer
		err error
	}
	ch := make(chan result, 1)
	go func() {
		buf, err := ReadFramed(r)
		ch <- result{buf, err}
	}()
	if err := WriteFramed(w, out); err != nil {
		return nil, err
	}
	res := <-ch
	if res.err != nil {
		return nil, res.err
	}
	return res.buf, nil
}
