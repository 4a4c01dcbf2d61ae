// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rangecoder

import "github.com/Jontte/range-enc/internal"

// numSymbols is the size of the coded alphabet: the 256 possible byte
// values plus the in-band EOF symbol.
const numSymbols = 256 + 1

// eofSymbol terminates every stream. It is never a data symbol.
const eofSymbol = 256

// maxSymbolFreq caps a single symbol's frequency. Clamping keeps the total
// well inside 32 bits (worst case numSymbols*maxSymbolFreq < 1<<26) and
// keeps the model adaptive instead of letting one symbol saturate it.
const maxSymbolFreq = 1 << 16

// freqIncrement is added to a symbol's frequency after it is coded. The
// source this coder was modeled on used both 1 and 10 across its history;
// 1 is the more widely cited choice and gives smoother estimates.
const freqIncrement = 1

// Model is the adaptive order-0 frequency table shared by the encoder and
// decoder. It is a flat array implementing an implicit complete binary
// tree: leaves hold per-symbol counts, and each internal node holds the
// sum of its two children, so the root always holds the total count.
//
// Model satisfies three query shapes in O(log numSymbols):
//   - Get:       point frequency of a symbol
//   - PrefixSum: cumulative frequency of all symbols below a given one
//   - Lookup:    the inverse of PrefixSum, used to decode a coded value
//
// An encoder and a decoder must drive their Models through the identical
// sequence of increment calls (one per coded symbol, via Update) or they
// fall out of sync and the stream becomes undecodable.
type Model struct {
	tree  []uint32
	start int // index of the first leaf; leaf for symbol s is at start+s
}

// NewModel returns a Model for numSymbols symbols, each initialized to a
// frequency of 1 (Laplace smoothing, so every symbol is codable from the
// very first call).
func NewModel() *Model {
	size := internal.NextPow2(uint32(numSymbols))
	m := &Model{
		tree:  make([]uint32, 2*size-1),
		start: int(size) - 1,
	}
	for s := 0; s < numSymbols; s++ {
		m.increment(s, 1)
	}
	return m
}

// Get returns the current frequency of symbol s.
func (m *Model) Get(s int) uint32 {
	return m.tree[m.start+s]
}

// Total returns the sum of all symbol frequencies.
func (m *Model) Total() uint32 {
	return m.tree[0]
}

// PrefixSum returns the cumulative frequency of all symbols before s: the
// sum of Get(i) for i in [0, s). PrefixSum(numSymbols) would equal Total,
// though s is never called with numSymbols in practice.
func (m *Model) PrefixSum(s int) uint32 {
	var sum uint32
	idx := m.start + s
	for idx != 0 {
		if idx%2 == 0 {
			sum += m.tree[idx-1]
		}
		idx = (idx - 1) / 2
	}
	return sum
}

// Lookup returns the unique symbol s such that PrefixSum(s) <= v <
// PrefixSum(s)+Get(s). It panics with ErrCorrupt if v is outside
// [0, Total()), which a correctly encoded stream never produces.
func (m *Model) Lookup(v uint32) int {
	if v >= m.Total() {
		panic(ErrCorrupt)
	}
	idx := 0
	for {
		left := 2*idx + 1
		if left >= len(m.tree) {
			break
		}
		if v < m.tree[left] {
			idx = left
		} else {
			v -= m.tree[left]
			idx = left + 1
		}
	}
	return idx - m.start
}

// increment adds delta to symbol s's frequency, walking leaf to root.
func (m *Model) increment(s int, delta uint32) {
	idx := m.start + s
	m.tree[idx] += delta
	for idx != 0 {
		idx = (idx - 1) / 2
		m.tree[idx] += delta
	}
}

// Update applies the shared post-symbol update rule: bump s's frequency
// by freqIncrement unless it is already at the cap. Both the encoder and
// the decoder must call this once per coded symbol, including EOF, so
// their models never diverge.
func (m *Model) Update(s int) {
	if m.Get(s) < maxSymbolFreq {
		m.increment(s, freqIncrement)
	}
}
