// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rangecoder

import "io"

// Encoder adaptively arithmetic-codes bytes written to it and writes the
// coded bit stream to an underlying io.Writer. The caller must call Close
// to emit the EOF symbol and flush the final partial byte; a stream that
// is never closed is not decodable.
type Encoder struct {
	InputOffset int64 // total number of bytes passed to Write

	bw    *bitWriter
	model *Model

	low, high uint32
	scale     uint32

	err    error
	closed bool
}

// NewEncoder returns an Encoder that writes its coded output to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		bw:    newBitWriter(w),
		model: NewModel(),
		high:  top - 1,
	}
}

// Write codes each byte of p in turn. It never returns a short count
// without an error.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if e.closed {
		return 0, ErrClosed
	}
	for i, b := range p {
		if err := e.encodeSymbol(int(b)); err != nil {
			e.err = err
			return i, err
		}
	}
	e.InputOffset += int64(len(p))
	return len(p), nil
}

// encodeSymbol narrows [low, high] to the subinterval the model assigns
// to s, renormalizes, and applies the shared model update (spec.md §4.2).
func (e *Encoder) encodeSymbol(s int) error {
	total := e.model.Total()
	lo := e.model.PrefixSum(s)
	freq := e.model.Get(s)

	rng := (e.high - e.low + 1) / total
	e.high = e.low + rng*(lo+freq) - 1
	e.low = e.low + rng*lo

	if err := e.renormalize(); err != nil {
		return err
	}
	e.model.Update(s)
	return nil
}

// renormalize applies E1/E2/E3 until the interval is wide enough that no
// further rescaling is needed before the next symbol.
func (e *Encoder) renormalize() error {
	for {
		switch {
		case e.high < half: // E1: interval settled below the midpoint
			if err := e.emitSettled(0); err != nil {
				return err
			}
			e.low = 2 * e.low
			e.high = 2*e.high + 1
		case e.low >= half: // E2: interval settled above the midpoint
			if err := e.emitSettled(1); err != nil {
				return err
			}
			e.low = 2 * (e.low - half)
			e.high = 2*(e.high-half) + 1
		case e.low >= quarter && e.high < quarter3: // E3: straddles the midpoint, already narrow
			e.scale++
			e.low = 2 * (e.low - quarter)
			e.high = 2*(e.high-quarter) + 1
		default:
			return nil
		}
	}
}

// emitSettled writes a settled MSB plus any E3 bits deferred since the
// last settled bit, which must be emitted with the opposite polarity.
func (e *Encoder) emitSettled(bit uint32) error {
	if err := e.bw.writeBit(bit); err != nil {
		return err
	}
	opposite := uint32(1) - bit
	for ; e.scale > 0; e.scale-- {
		if err := e.bw.writeBit(opposite); err != nil {
			return err
		}
	}
	return nil
}

// Close codes the EOF symbol, emits the termination pattern that lets any
// bit suffix still decode to EOF, and flushes the bit packer. It is safe
// to call Close more than once; only the first call has effect.
func (e *Encoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.err != nil {
		return e.err
	}
	if err := e.encodeSymbol(eofSymbol); err != nil {
		e.err = err
		return err
	}
	if e.low < quarter {
		if err := e.bw.writeBit(0); err != nil {
			e.err = err
			return err
		}
		for i := uint32(0); i < e.scale+1; i++ {
			if err := e.bw.writeBit(1); err != nil {
				e.err = err
				return err
			}
		}
	} else if err := e.bw.writeBit(1); err != nil {
		e.err = err
		return err
	}
	if err := e.bw.flush(); err != nil {
		e.err = err
		return err
	}
	return nil
}

// Encode reads src to completion and writes its arithmetic-coded form to
// dst. It is the direct realization of the library's abstract encode
// operation (spec.md §6.1).
func Encode(src io.Reader, dst io.Writer) error {
	enc := NewEncoder(dst)
	buf := make([]byte, 32*1024)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := enc.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	return enc.Close()
}
