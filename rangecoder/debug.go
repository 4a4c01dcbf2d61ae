// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build debug

package rangecoder

import (
	"fmt"
	"strings"
)

// String dumps the current frequency of every symbol with non-default
// weight, plus the running total. It is only compiled in with -tags debug;
// walking the full symbol range on every call is too slow for normal use.
func (m *Model) String() string {
	var ss []string
	ss = append(ss, fmt.Sprintf("total: %d", m.Total()))
	for s := 0; s < numSymbols; s++ {
		if f := m.Get(s); f != 1 {
			ss = append(ss, fmt.Sprintf("\t%3d: {freq: %d, cum: %d},", s, f, m.PrefixSum(s)))
		}
	}
	return "{\n" + strings.Join(ss, "\n") + "\n}"
}

// String reports the encoder's active interval and pending E3 scale.
func (e *Encoder) String() string {
	return fmt.Sprintf("Encoder{low: 0x%08x, high: 0x%08x, scale: %d, in: %d}",
		e.low, e.high, e.scale, e.InputOffset)
}

// String reports the decoder's active interval and code value.
func (d *Decoder) String() string {
	return fmt.Sprintf("Decoder{low: 0x%08x, high: 0x%08x, buffer: 0x%08x}",
		d.low, d.high, d.buffer)
}
