// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package rangecoder

import "io"

// Decoder reads an arithmetic-coded stream from an underlying io.Reader
// and exposes the original bytes through Read, exactly as flate.Reader
// exposes decompressed DEFLATE output. Decoding stops at the in-band EOF
// symbol; Read then returns io.EOF like any other exhausted reader.
type Decoder struct {
	br    *bitReader
	model *Model

	low, high, buffer uint32
	primed            bool
	gotEOF            bool

	err error
}

// NewDecoder returns a Decoder that reads its coded input from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		br:    newBitReader(r),
		model: NewModel(),
		high:  top - 1,
	}
}

// prime reads the first precision bits into buffer without touching
// low/high, per spec.md §4.3.
func (d *Decoder) prime() error {
	for i := 0; i < precision; i++ {
		bit, err := d.br.readBit()
		if err != nil {
			return err
		}
		d.buffer = d.buffer<<1 | bit
	}
	return nil
}

// safeStep wraps step with errRecover so that Model.Lookup's ErrCorrupt
// panic - the only internal invariant check this coder performs - comes
// back to the caller as a plain error instead of crashing the process.
func (d *Decoder) safeStep() (s int, err error) {
	defer errRecover(&err)
	return d.step()
}

// step decodes exactly one symbol, consuming as many input bits as
// renormalization requires first.
func (d *Decoder) step() (int, error) {
	for {
		switch {
		case d.high < half: // E1
			bit, err := d.br.readBit()
			if err != nil {
				return 0, err
			}
			d.low, d.high, d.buffer = 2*d.low, 2*d.high+1, 2*d.buffer+bit
		case d.low >= half: // E2
			bit, err := d.br.readBit()
			if err != nil {
				return 0, err
			}
			d.low, d.high, d.buffer = 2*(d.low-half), 2*(d.high-half)+1, 2*(d.buffer-half)+bit
		case d.low >= quarter && d.high < quarter3: // E3
			bit, err := d.br.readBit()
			if err != nil {
				return 0, err
			}
			d.low, d.high, d.buffer = 2*(d.low-quarter), 2*(d.high-quarter)+1, 2*(d.buffer-quarter)+bit
		default:
			total := d.model.Total()
			rng := (d.high - d.low + 1) / total
			v := (d.buffer - d.low) / rng
			s := d.model.Lookup(v)
			lo := d.model.PrefixSum(s)
			freq := d.model.Get(s)
			d.high = d.low + rng*(lo+freq) - 1
			d.low = d.low + rng*lo
			d.model.Update(s)
			return s, nil
		}
	}
}

// Read decodes up to len(p) output bytes into p. It returns io.EOF once
// the in-band EOF symbol has been decoded and no further bytes remain
// for this call.
func (d *Decoder) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if !d.primed {
		if err := d.prime(); err != nil {
			d.err = err
			return 0, err
		}
		d.primed = true
	}

	n := 0
	for n < len(p) && !d.gotEOF {
		s, err := d.safeStep()
		if err != nil {
			d.err = err
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		if s == eofSymbol {
			d.gotEOF = true
			break
		}
		p[n] = byte(s)
		n++
	}
	if n == 0 && d.gotEOF {
		return 0, io.EOF
	}
	return n, nil
}

// Decode reads a coded stream from src to completion (through its EOF
// symbol) and writes the original bytes to dst.
func Decode(src io.Reader, dst io.Writer) error {
	dec := NewDecoder(src)
	_, err := io.Copy(dst, dec)
	return err
}
