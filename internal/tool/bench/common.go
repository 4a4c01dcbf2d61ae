// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the throughput and compression ratio of the
// range coder against other general-purpose codecs available in the
// module's dependency set.
package bench

import (
	"bufio"
	"bytes"
	"hash/crc32"
	"io"
	"io/ioutil"
	"runtime"
	"testing"

	"github.com/dsnet/golib/hashutil"
	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz/lzma"

	"github.com/Jontte/range-enc/rangecoder"
)

const (
	CodecRangeCoder = iota
	CodecFlate
	CodecLZMA
)

var codecNames = map[int]string{
	CodecRangeCoder: "rangecoder",
	CodecFlate:      "flate",
	CodecLZMA:       "lzma",
}

// Name reports the display name of a codec constant.
func Name(codec int) string { return codecNames[codec] }

// Encoder returns a fresh encoder for the given codec writing to w. Unlike
// the suite this package is adapted from, none of these codecs are run at
// multiple levels: the range coder has no level knob at all, and flate and
// lzma are compared at their library defaults.
func Encoder(codec int, w io.Writer) io.WriteCloser {
	switch codec {
	case CodecRangeCoder:
		return rangecoder.NewEncoder(w)
	case CodecFlate:
		fw, err := flate.NewWriter(w, flate.DefaultCompression)
		if err != nil {
			panic(err)
		}
		return fw
	case CodecLZMA:
		lw, err := lzma.NewWriter(w)
		if err != nil {
			panic(err)
		}
		return lw
	default:
		panic("bench: unknown codec")
	}
}

// Decoder returns a fresh decoder for the given codec reading from r.
func Decoder(codec int, r io.Reader) io.Reader {
	switch codec {
	case CodecRangeCoder:
		return rangecoder.NewDecoder(r)
	case CodecFlate:
		return flate.NewReader(r)
	case CodecLZMA:
		lr, err := lzma.NewReader(bufio.NewReader(r))
		if err != nil {
			panic(err)
		}
		return lr
	default:
		panic("bench: unknown codec")
	}
}

// Result reports the outcome of one benchmark run.
type Result struct {
	RateMBps float64
	Ratio    float64
}

// EncodeRate benchmarks the encode throughput of codec on input.
func EncodeRate(codec int, input []byte) Result {
	var n int64
	bm := testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			w := Encoder(codec, ioutil.Discard)
			if _, err := io.Copy(w, bytes.NewReader(input)); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err := closeIfCloser(w); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
		n = int64(len(input))
	})
	return Result{RateMBps: rateMBps(bm, n)}
}

// DecodeRate benchmarks the decode throughput of codec against data already
// produced by Encoder(codec, ...).
func DecodeRate(codec int, encoded []byte) Result {
	var n int64
	bm := testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			r := Decoder(codec, bytes.NewReader(encoded))
			cnt, err := io.Copy(ioutil.Discard, r)
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(cnt)
			n = cnt
		}
	})
	return Result{RateMBps: rateMBps(bm, n)}
}

// Ratio compresses input with codec and reports rawSize/compressedSize.
func Ratio(codec int, input []byte) (Result, error) {
	var buf bytes.Buffer
	w := Encoder(codec, &buf)
	if _, err := io.Copy(w, bytes.NewReader(input)); err != nil {
		return Result{}, err
	}
	if err := closeIfCloser(w); err != nil {
		return Result{}, err
	}
	if buf.Len() == 0 {
		return Result{}, nil
	}
	return Result{Ratio: float64(len(input)) / float64(buf.Len())}, nil
}

// VerifyIntegrity round-trips input through codec and checks the result
// two ways: a direct byte comparison, and a CRC32 computed by splitting
// the decoded output into two halves, hashing each independently, and
// combining them with hashutil.CombineCRC32 rather than hashing the
// whole buffer in one pass. A codec fault is caught by the byte
// comparison; since both CRCs are computed over the same decoded bytes,
// a CRC divergence would mean the combine arithmetic is broken.
func VerifyIntegrity(codec int, input []byte) (bool, error) {
	var buf bytes.Buffer
	w := Encoder(codec, &buf)
	if _, err := io.Copy(w, bytes.NewReader(input)); err != nil {
		return false, err
	}
	if err := closeIfCloser(w); err != nil {
		return false, err
	}

	got, err := ioutil.ReadAll(Decoder(codec, bytes.NewReader(buf.Bytes())))
	if err != nil {
		return false, err
	}
	if !bytes.Equal(got, input) {
		return false, nil
	}

	mid := len(got) / 2
	head, tail := got[:mid], got[mid:]
	combined := hashutil.CombineCRC32(crc32.IEEE, crc32.ChecksumIEEE(head), crc32.ChecksumIEEE(tail), int64(len(tail)))
	return combined == crc32.ChecksumIEEE(got), nil
}

func closeIfCloser(w io.Writer) error {
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func rateMBps(bm testing.BenchmarkResult, bytesPerOp int64) float64 {
	if bm.N == 0 || bm.T == 0 {
		return 0
	}
	secs := bm.T.Seconds() / float64(bm.N)
	return (float64(bytesPerOp) / secs) / (1 << 20)
}
