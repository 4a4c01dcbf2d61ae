// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package rangecoder implements an adaptive order-0 binary arithmetic
// coder over the 257-symbol alphabet of bytes plus an in-band EOF marker.
//
// The wire format carries no header, checksum, or length prefix: a coded
// stream is terminated solely by the EOF symbol followed by a flush
// pattern and zero-padding to a byte boundary. There is no container
// format and no support for random access; a corrupt stream is detected,
// at best, as ErrCorrupt and is never resynchronized.
package rangecoder

import "runtime"

// precision is the number of bits of active interval the coder keeps.
const precision = 31

const (
	top      = 1 << precision    // 0x8000_0000
	half     = 1 << (precision - 1) // 0x4000_0000
	quarter  = 1 << (precision - 2) // 0x2000_0000
	quarter3 = 3 * quarter           // 0x6000_0000
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "rangecoder: " + string(e) }

var (
	// ErrCorrupt is reported when the decoder observes an input sequence
	// that cannot correspond to any output of Encode (e.g. the model's
	// value-to-symbol lookup is asked for a value outside its current
	// total). The in-band format carries no checksum, so most forms of
	// corruption are never detected at all; ErrCorrupt only covers the
	// cases that the coder's own invariants catch internally.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrClosed is reported by Encoder.Write when called after Close.
	ErrClosed error = Error("encoder is closed")
)

// errRecover is installed via defer in methods that use panic internally
// to unwind out of deeply nested renormalization loops on invalid input.
// A genuine runtime.Error (an implementation bug, not a malformed stream)
// is allowed to keep propagating as a panic.
func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
