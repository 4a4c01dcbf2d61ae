// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command range-enc encodes or decodes a file using the adaptive
// order-0 range coder implemented by the rangecoder package.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/schollz/progressbar/v2"

	"github.com/Jontte/range-enc/internal/tool/bench"
	"github.com/Jontte/range-enc/rangecoder"
)

func main() {
	mode := flag.String("m", "encode", "operation to perform: encode or decode")
	output := flag.String("o", "out.bin", "output file path")
	showProgress := flag.Bool("p", false, "display a progress bar while processing")
	runBench := flag.Bool("bench", false, "report throughput and ratio against flate and lzma, then exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input-file>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *runBench {
		if err := runBenchmark(flag.Arg(0)); err != nil {
			log.Fatalf("range-enc: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	in := flag.Arg(0)

	if err := run(*mode, in, *output, *showProgress); err != nil {
		log.Fatalf("range-enc: %v", err)
	}
}

func run(mode, in, out string, showProgress bool) error {
	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return err
	}
	defer dst.Close()

	var r io.Reader = src
	if showProgress {
		if info, err := src.Stat(); err == nil {
			bar := progressbar.NewOptions64(info.Size(),
				progressbar.OptionSetBytes64(info.Size()),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetPredictTime(true))
			r = io.TeeReader(src, bar)
			defer fmt.Fprintln(os.Stderr)
		}
	}

	switch mode {
	case "encode":
		return rangecoder.Encode(r, dst)
	case "decode":
		return rangecoder.Decode(r, dst)
	default:
		return fmt.Errorf("unknown mode %q, want encode or decode", mode)
	}
}

func runBenchmark(in string) error {
	var input []byte
	var err error
	if in != "" {
		input, err = os.ReadFile(in)
		if err != nil {
			return err
		}
	} else {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
	}

	codecs := []int{bench.CodecRangeCoder, bench.CodecFlate, bench.CodecLZMA}
	fmt.Printf("%-12s%10s%10s\n", "codec", "MB/s", "ratio")
	for _, c := range codecs {
		enc := bench.EncodeRate(c, input)
		ratio, err := bench.Ratio(c, input)
		if err != nil {
			fmt.Printf("%-12s%10s%10s\n", bench.Name(c), "error", "-")
			continue
		}
		fmt.Printf("%-12s%10.2f%10.3f\n", bench.Name(c), enc.RateMBps, ratio.Ratio)
	}
	return nil
}
