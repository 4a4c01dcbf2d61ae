// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rangecoder

import (
	"bytes"
	"testing"
)

func TestEncoderInputOffsetTracksWrites(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, p := range [][]byte{{1, 2, 3}, {}, {4}} {
		if _, err := enc.Write(p); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := enc.InputOffset, int64(4); got != want {
		t.Errorf("InputOffset = %d, want %d", got, want)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestEncoderWriteReturnsFullCountOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	p := []byte("hello, range coder")
	n, err := enc.Write(p)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(p) {
		t.Errorf("Write returned n=%d, want %d", n, len(p))
	}
}

func TestEncoderProducesNonEmptyOutputForNonEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if _, err := enc.Write(bytes.Repeat([]byte{'a'}, 100)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("Close produced no output for non-empty input")
	}
}

func TestEncoderEmptyInputStillProducesEOFFrame(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("Close on an empty stream produced no bytes; the EOF symbol must still be framed")
	}
}
