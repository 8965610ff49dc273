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
// github.com:SymbolNotFound/gosha2/random.go

package gosha2

import (
	"encoding/binary"

	"github.com/SymbolNotFound/gosha2/sha2"
)

type Source interface {
	Uint64() uint64
}

// A deterministic random number generator drawn from a chain of SHA-2
// digests: each finalized digest is fed back into the hasher before the
// next draw, so successive digests differ and the stream is reproducible
// from the seed material alone.
type ShaRing struct {
	rng    sha2.Hasher
	offset int
	digest sha2.Digest
}

// Creates a new random number generator using the provided Hasher source.
// If a nil value is passed for the source then SHA-256 will be used.
func New(source sha2.Hasher) *ShaRing {
	if source == nil {
		source = sha2.New256()
	}
	return &ShaRing{source, 0, nil}
}

// Creates a generator whose stream is determined by the given seed words,
// written into the hasher in big-endian order.
func NewSourceSeeded(seed uint64, more ...uint64) *ShaRing {
	source := sha2.New256()
	bytes := make([]byte, 8*(1+len(more)))
	binary.BigEndian.PutUint64(bytes[0:], seed)
	for i := range more {
		binary.BigEndian.PutUint64(bytes[8*(i+1):], more[i])
	}
	source.Write(bytes)
	return &ShaRing{source, 0, nil}
}

// Returns the next value of the stream, eight digest bytes at a time.  When
// a digest runs short -- SHA-224 leaves a four-byte tail -- the remainder is
// stitched onto the head of the next chained digest so no bytes are wasted.
func (rng *ShaRing) Uint64() uint64 {
	if rng.digest == nil {
		rng.refill()
	}

	bytes := rng.digest.Bytes()
	if remaining := len(bytes) - rng.offset; remaining < 8 {
		var next uint64
		for _, octet := range bytes[rng.offset:] {
			next = next<<8 | uint64(octet)
		}
		rng.refill()
		for _, octet := range rng.digest.Bytes()[:8-remaining] {
			next = next<<8 | uint64(octet)
		}
		rng.offset = 8 - remaining
		return next
	}

	next := binary.BigEndian.Uint64(bytes[rng.offset:])
	rng.offset += 8
	return next
}

// Draws a fresh digest and chains it back into the hasher so the following
// digest differs.
func (rng *ShaRing) refill() {
	rng.digest = rng.rng.Hash()
	rng.rng.Write(rng.digest.Bytes())
	rng.offset = 0
}
