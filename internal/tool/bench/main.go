// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build ignore

// Benchmark tool to compare the range coder against other codecs in this
// module's dependency set. Since the range coder has no test corpus of its
// own, inputs are generated rather than loaded from testdata.
//
// Example usage:
//	$ go run main.go -size 1e6
package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/klauspost/cpuid"

	"github.com/Jontte/range-enc/internal/testutil"
	"github.com/Jontte/range-enc/internal/tool/bench"
)

func main() {
	size := flag.String("size", "1e6", "size of the generated pseudo-random input, in scientific notation")
	flag.Parse()

	n, err := strconv.ParseFloat(*size, 64)
	if err != nil {
		fmt.Println("invalid -size:", err)
		return
	}

	fmt.Printf("cpu: %s\n\n", cpuid.CPU.BrandName)

	input := testutil.NewRand(0).Bytes(int(n))
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
}
