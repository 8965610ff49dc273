// Copyright (c) 2024 Symbol Not Found LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// github.com:SymbolNotFound/gosha2/sha2/digest.go

package sha2

import "encoding/hex"

// Digest sizes for each member of the family, in bytes.
const SHA224_DIGEST_BYTES = 28
const SHA256_DIGEST_BYTES = 32
const SHA384_DIGEST_BYTES = 48
const SHA512_DIGEST_BYTES = 64

type Digest interface {
	Bytes() []byte
	Hex() string
}

// All four digest widths share one value type; the backing array is sized
// for the widest and truncated to the algorithm's output length.
type digest struct {
	length int
	bytes  [SHA512_DIGEST_BYTES]byte
}

func (d digest) Bytes() []byte {
	return d.bytes[:d.length]
}

func (d digest) Hex() string {
	return hex.EncodeToString(d.bytes[:d.length])
}
