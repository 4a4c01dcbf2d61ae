// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rangecoder

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/Jontte/range-enc/internal/testutil"
)

// TestDecodeZerosOnlyDrains exercises the decoder against a hand-built
// all-zero stream: it decodes as a run of zero bytes that never reaches
// the EOF symbol, so the decoder must run through the drain in bitio.go
// and report io.ErrUnexpectedEOF rather than loop forever or panic.
func TestDecodeZerosOnlyDrains(t *testing.T) {
	stream := testutil.MustDecodeBitGen(">>> 0*64")
	_, err := ioutil.ReadAll(NewDecoder(bytes.NewReader(stream)))
	if err == nil {
		t.Fatal("Decode on all-zero stream returned nil error, want a drain failure")
	}
}

// TestDecodeSingleByteThenEOFDrains checks that a one-byte stream is
// completed by the zero drain: 0xff followed by drained zero bits decodes
// to two 0xff bytes and then the EOF symbol, with no error.
func TestDecodeSingleByteThenEOFDrains(t *testing.T) {
	stream := testutil.MustDecodeBitGen(">>> H8:ff")
	got, err := ioutil.ReadAll(NewDecoder(bytes.NewReader(stream)))
	if err != nil {
		t.Fatalf("Decode on single-byte stream returned error %v, want nil", err)
	}
	if want := []byte{0xff, 0xff}; !bytes.Equal(got, want) {
		t.Errorf("Decode on single-byte stream = %#x, want %#x", got, want)
	}
}
