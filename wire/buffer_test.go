//
// Copyright (c) 2026 Astra Authors
//
// All rights reserved.
//

package wire

import (
	"bytes"
	"testing"
)

func TestStoreGetData(t *testing.T) {
	b := NewBuffer()
	b.StoreData([]byte("hello"))
	b.StoreData([]byte{})
	b.StoreUint64(42)

	r := NewBufferFromBytes(b.Bytes())
	got, err := r.GetData()
	if err != nil || string(got) != "hello" {
		t.Fatalf("GetData = %q, %v", got, err)
	}
	got, err = r.GetData()
	if err != nil || len(got) != 0 {
		t.Fatalf("GetData empty = %q, %v", got, err)
	}
	n, err := r.GetUint64()
	if err != nil || n != 42 {
		t.Fatalf("GetUint64 = %d, %v", n, err)
	}
}

func TestBitPacking(t *testing.T) {
	b := NewBuffer()
	bits := []bool{true, false, true, true, false, false, true, true, false, false, true}
	for _, v := range bits {
		b.StoreBit(v)
	}
	b.FlushBits()

	r := NewBufferFromBytes(b.Bytes())
	for i, want := range bits {
		got, err := r.GetBit()
		if err != nil {
			t.Fatalf("GetBit(%d): %v", i, err)
		}
		if got != want {
			t.Fatalf("bit %d = %v, want %v", i, got, want)
		}
	}
}

func TestFramedRoundTrip(t *testing.T) {
	b := NewBuffer()
	b.StoreData([]byte("payload"))

	var pipe bytes.Buffer
	if err := WriteFramed(&pipe, b); err != nil {
		t.Fatalf("WriteFramed: %v", err)
	}

	got, err := ReadFramed(&pipe)
	if err != nil {
		t.Fatalf("ReadFramed: %v", err)
	}
	data, err := got.GetData()
	if err != nil || string(data) != "payload" {
		t.Fatalf("round-trip = %q, %v", data, err)
	}
}

func TestGetBytesShortRead(t *testing.T) {
	b := NewBufferFromBytes([]byte{1, 2, 3})
	if _, err := b.GetBytes(10); err == nil {
		t.Fatalf("expected short-read error")
	}
}
