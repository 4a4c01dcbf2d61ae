// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build gofuzz

package rangecoder

import (
	"bytes"
	"io/ioutil"

	"github.com/Jontte/range-enc/rangecoder"
)

// Fuzz exercises two properties: that Decode never panics on arbitrary
// byte sequences (the wire format is undetectably corruptible by design,
// but the implementation itself must not crash), and that every input
// survives an Encode/Decode round trip unchanged.
func Fuzz(data []byte) int {
	ok := testDecoder(data)
	testRoundTrip(data)
	if ok {
		return 1 // Favor inputs that happen to decode cleanly.
	}
	return 0
}

// testDecoder feeds data directly to the decoder. A returned error is a
// legitimate outcome; a panic is not.
func testDecoder(data []byte) bool {
	_, err := ioutil.ReadAll(rangecoder.NewDecoder(bytes.NewReader(data)))
	return err == nil
}

func testRoundTrip(data []byte) {
	var coded bytes.Buffer
	if err := rangecoder.Encode(bytes.NewReader(data), &coded); err != nil {
		panic(err)
	}

	var got bytes.Buffer
	if err := rangecoder.Decode(bytes.NewReader(coded.Bytes()), &got); err != nil {
		panic(err)
	}
	if !bytes.Equal(got.Bytes(), data) {
		panic("mismatching bytes")
	}
}
