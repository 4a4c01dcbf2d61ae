// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rangecoder

import (
	"bytes"
	"io"
	"io/ioutil"
	"testing"

	"github.com/Jontte/range-enc/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func roundTrip(t *testing.T, name string, src []byte) {
	t.Helper()

	var coded bytes.Buffer
	if err := Encode(bytes.NewReader(src), &coded); err != nil {
		t.Fatalf("%s: Encode error: %v", name, err)
	}

	var got bytes.Buffer
	if err := Decode(&coded, &got); err != nil {
		t.Fatalf("%s: Decode error: %v", name, err)
	}

	if diff := cmp.Diff(src, got.Bytes()); diff != "" {
		t.Errorf("%s: round trip mismatch (-want +got):\n%s", name, diff)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, "empty", nil)
}

func TestRoundTripSingleByte(t *testing.T) {
	roundTrip(t, "single byte", []byte{0x42})
}

func TestRoundTripAllZeros(t *testing.T) {
	roundTrip(t, "10000 zeros", make([]byte, 10000))
}

func TestRoundTripEnumeratedBytes(t *testing.T) {
	buf := make([]byte, 1024)
	for i := range buf {
		buf[i] = byte(i % 255)
	}
	roundTrip(t, "enumerated bytes mod 255", buf)
}

func TestRoundTripRepeatedHighByte(t *testing.T) {
	buf := make([]byte, 1000)
	for i := range buf {
		buf[i] = 0xFF
	}
	roundTrip(t, "1000 0xFF", buf)
}

func TestRoundTripPseudoRandomBlob(t *testing.T) {
	r := testutil.NewRand(0)
	roundTrip(t, "64KiB pseudo-random", r.Bytes(64*1024))
}

// TestEncoderWriteStreaming checks that Write accepts data in arbitrarily
// small chunks and that the result is identical to writing it in one call.
func TestEncoderWriteStreaming(t *testing.T) {
	r := testutil.NewRand(1)
	src := r.Bytes(4096)

	var whole bytes.Buffer
	if err := Encode(bytes.NewReader(src), &whole); err != nil {
		t.Fatal(err)
	}

	var chunked bytes.Buffer
	enc := NewEncoder(&chunked)
	for _, b := range src {
		if _, err := enc.Write([]byte{b}); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(whole.Bytes(), chunked.Bytes()); diff != "" {
		t.Errorf("chunked encode diverged from bulk encode (-bulk +chunked):\n%s", diff)
	}
}

// TestDecoderReadSmallBuffers checks that Read honors short destination
// buffers without losing or duplicating bytes.
func TestDecoderReadSmallBuffers(t *testing.T) {
	r := testutil.NewRand(2)
	src := r.Bytes(5000)

	var coded bytes.Buffer
	if err := Encode(bytes.NewReader(src), &coded); err != nil {
		t.Fatal(err)
	}

	dec := NewDecoder(bytes.NewReader(coded.Bytes()))
	var got bytes.Buffer
	buf := make([]byte, 3)
	for {
		n, err := dec.Read(buf)
		got.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	if diff := cmp.Diff(src, got.Bytes()); diff != "" {
		t.Errorf("small-buffer decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTruncatedStreamErrors(t *testing.T) {
	r := testutil.NewRand(3)
	src := r.Bytes(2048)

	var coded bytes.Buffer
	if err := Encode(bytes.NewReader(src), &coded); err != nil {
		t.Fatal(err)
	}
	truncated := coded.Bytes()[:len(coded.Bytes())/2]

	err := Decode(bytes.NewReader(truncated), ioutil.Discard)
	if err == nil {
		t.Fatal("Decode on truncated input returned nil error")
	}
}

func TestEncoderWriteAfterCloseFails(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte{1}); err != ErrClosed {
		t.Errorf("Write after Close = %v, want ErrClosed", err)
	}
}

func TestEncoderCloseIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if _, err := enc.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	want := buf.Bytes()
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Error("second Close changed the output stream")
	}
}
