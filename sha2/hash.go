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
// github.com:SymbolNotFound/gosha2/sha2/hash.go

// Package sha2 implements the SHA-224, SHA-256, SHA-384 and SHA-512 message
// digests as defined by NIST in
// [FIPS PUB 180-4](https://nvlpubs.nist.gov/nistpubs/FIPS/NIST.FIPS.180-4.pdf).
// All four share one compression pipeline; they differ only in word width,
// round count, constants and output truncation.
package sha2

import "io"

type Hasher interface {
	io.Writer
	Hash() Digest
	Reset()
	Size() int
	BlockSize() int
}

// Simple interface for hashing the provided byte-slice with the given hasher.
//
// If intending to call this frequently, allocate the hasher once via one of
// the New constructors and call Write(...) / Hash() / Reset() to reuse the
// block buffer and avoid unnecessary re-allocations.
func HashBytes(hasher Hasher, input []byte) (Digest, error) {
	_, err := hasher.Write(input)
	if err != nil {
		return nil, err
	}
	return hasher.Hash(), nil
}

// One-shot digests of a byte slice, one per algorithm.
func Sum224(input []byte) (Digest, error) { return HashBytes(New224(), input) }
func Sum256(input []byte) (Digest, error) { return HashBytes(New256(), input) }
func Sum384(input []byte) (Digest, error) { return HashBytes(New384(), input) }
func Sum512(input []byte) (Digest, error) { return HashBytes(New512(), input) }

// Every algorithm in the family consumes the message in blocks of sixteen
// working-variable words: 64 bytes for the 32-bit pair (SHA-224/-256) and
// 128 bytes for the 64-bit pair (SHA-384/-512).
const BLOCK_INTS = 16
const SMALL_BLOCK_BYTES = 64
const WIDE_BLOCK_BYTES = 128

// Rounds of compression per block.
const SMALL_ROUNDS = 64
const WIDE_ROUNDS = 80

// The chaining value is always eight words, whatever the word width.
const STATE_INTS = 8

// The working-variable word of a SHA-2 algorithm.
type word interface {
	~uint32 | ~uint64
}

// The fixed per-width description of the compression pipeline.  The two
// 32-bit algorithms share one instance and the two 64-bit algorithms share
// another; an algorithm adds only its initial vector and output length.
type params[W word] struct {
	bits   uint // word width in bits
	rounds int
	keys   []W // round-key table, one entry per round

	// σ0/σ1 rotation and shift amounts (message schedule).
	sigma0Rot1, sigma0Rot2, sigma0Shift uint
	sigma1Rot1, sigma1Rot2, sigma1Shift uint

	// Σ0/Σ1 rotation amounts (round function).
	sum0Rot1, sum0Rot2, sum0Rot3 uint
	sum1Rot1, sum1Rot2, sum1Rot3 uint
}

// Internal state for computing a SHA-2 digest block by block.  The block
// buffer is sized for the widest family member; the 32-bit algorithms use
// only its first SMALL_BLOCK_BYTES.
//
// The byte count of the message is kept as a two-word little-endian pair
// [lengthLo, lengthHi] so that it spans 2x the word width; the top three
// bits of lengthHi stay clear, leaving room for the byte-to-bit conversion
// when the count is emitted into the final block.
type hasher[W word] struct {
	params *params[W]
	iv     *[STATE_INTS]W
	outlen int

	chainValue [STATE_INTS]W
	lengthLo   W
	lengthHi   W
	block      [WIDE_BLOCK_BYTES]byte
	position   int
}

// Constructors for the four members of the family.

func New224() Hasher { return newSmall(&initial224, SHA224_DIGEST_BYTES) }
func New256() Hasher { return newSmall(&initial256, SHA256_DIGEST_BYTES) }
func New384() Hasher { return newWide(&initial384, SHA384_DIGEST_BYTES) }
func New512() Hasher { return newWide(&initial512, SHA512_DIGEST_BYTES) }

func newSmall(iv *[STATE_INTS]uint32, outlen int) Hasher {
	state := &hasher[uint32]{params: &smallParams, iv: iv, outlen: outlen}
	state.Reset()
	return state
}

func newWide(iv *[STATE_INTS]uint64, outlen int) Hasher {
	state := &hasher[uint64]{params: &wideParams, iv: iv, outlen: outlen}
	state.Reset()
	return state
}

// Reset the length, the contents of the block and the initial digest value.
//
// This method is called automatically when Hash() is called, callers only need
// to use it if a message digest is being abandoned before being fully computed.
func (state *hasher[W]) Reset() {
	state.lengthLo, state.lengthHi = 0, 0
	state.position = 0
	clear(state.block[:])
	state.chainValue = *state.iv
}

// Number of bytes in the finalized digest.
func (state *hasher[W]) Size() int {
	return state.outlen
}

// Number of bytes per message block.
func (state *hasher[W]) BlockSize() int {
	return BLOCK_INTS * int(state.params.bits/8)
}

// Hash the contents of message but leave the buffer ready for additional
// bytes.  That is, it does not add the `1` bit, padding, and message length
// yet.  Satisfies the io.Writer interface similar to other hashing algorithms
// in Go.
//
// Write returns ErrMessageTooLong once the cumulative message length would
// pass the algorithm's bound; the length is validated and committed before
// any buffer mutation, so a failed call ingests nothing.
func (state *hasher[W]) Write(message []byte) (int, error) {
	msglen := len(message)
	if msglen == 0 {
		return 0, nil
	}
	if err := state.countBytes(uint64(msglen)); err != nil {
		return 0, err
	}

	blocksize := state.BlockSize()
	for len(message) > 0 {
		copied := copy(state.block[state.position:blocksize], message)
		state.position += copied
		message = message[copied:]
		if state.position == blocksize {
			state.mixBits()
			state.position = 0
		}
	}
	return msglen, nil
}

// Adds an incoming byte count to the two-word length accumulator, rejecting
// any total that could not be represented as a bit count in 2x the word
// width.  Nothing is committed until every check has passed.
func (state *hasher[W]) countBytes(count uint64) error {
	bits := state.params.bits

	// Split the platform byte count into word-sized little-endian halves.
	// A shift by the full word width yields zero, so the 64-bit algorithms
	// get an all-zero high half.
	deltaLo := W(count)
	deltaHi := W(count >> bits)

	newLo := state.lengthLo + deltaLo
	carry := W(0)
	if newLo < state.lengthLo {
		carry = 1
	}

	newHi := state.lengthHi + deltaHi
	if newHi < state.lengthHi {
		return ErrMessageTooLong
	}
	newHi += carry
	if carry == 1 && newHi == 0 {
		return ErrMessageTooLong
	}

	// The three most-significant bits must stay clear so that multiplying
	// by eight (bytes to bits) cannot lose information.
	if newHi>>(bits-3) != 0 {
		return ErrMessageTooLong
	}

	state.lengthLo, state.lengthHi = newLo, newHi
	return nil
}

// Applies the SHA-2 compression function to the contents of the current
// block, as defined by the Secure Hash Standard published by NIST in
// [FIPS PUB 180-4](https://nvlpubs.nist.gov/nistpubs/FIPS/NIST.FIPS.180-4.pdf).
//
// (prepare the message schedule W, expanding the 16 block words to R)
// W_t = M_t                                                    0 ≤ t ≤ 15
// W_t = σ1( W_(t-2) ) + W_(t-7) + σ0( W_(t-15) ) + W_(t-16)   16 ≤ t ≤ R-1
//
// (initialize working variables {a .. h} from the latest hash value, then
// for t from 0 to R-1, mix the bits)
// T1 = h + Σ1(e) + Ch(e, f, g) + K_t + W_t
// T2 = Σ0(a) + Maj(a, b, c)
// h = g; g = f; f = e; e = d + T1
// d = c; c = b; b = a; a = T1 + T2
//
// where Ch(x,y,z) = (x & y) ^ (^x & z), Maj(x,y,z) = (x&y) ^ (x&z) ^ (y&z),
// and σ0/σ1/Σ0/Σ1 are the xor-of-rotations functions whose amounts live in
// the per-width params.  R is 64 for the 32-bit pair and 80 for the 64-bit
// pair; every addition wraps at the word width.
//
// The chaining value is updated in place; the block buffer is left as-is
// (Write overwrites it from the front, finalization zeroes what it needs).
func (state *hasher[W]) mixBits() {
	p := state.params
	bits := p.bits
	wordsize := int(bits / 8)

	// Load the sixteen big-endian block words into the schedule.
	var scratch [WIDE_ROUNDS]W
	for i := 0; i < BLOCK_INTS; i++ {
		var value W
		for _, octet := range state.block[i*wordsize : (i+1)*wordsize] {
			value = value<<8 | W(octet)
		}
		scratch[i] = value
	}

	// Expand to one schedule word per round.
	for t := BLOCK_INTS; t < p.rounds; t++ {
		sigma0 := rotateR(scratch[t-15], p.sigma0Rot1, bits) ^
			rotateR(scratch[t-15], p.sigma0Rot2, bits) ^
			scratch[t-15]>>p.sigma0Shift
		sigma1 := rotateR(scratch[t-2], p.sigma1Rot1, bits) ^
			rotateR(scratch[t-2], p.sigma1Rot2, bits) ^
			scratch[t-2]>>p.sigma1Shift
		scratch[t] = sigma1 + scratch[t-7] + sigma0 + scratch[t-16]
	}

	// Initial values of working memory are based on the chaining value so far.
	a := state.chainValue[0]
	b := state.chainValue[1]
	c := state.chainValue[2]
	d := state.chainValue[3]
	e := state.chainValue[4]
	f := state.chainValue[5]
	g := state.chainValue[6]
	h := state.chainValue[7]

	for t := 0; t < p.rounds; t++ {
		temp1 := h +
			(rotateR(e, p.sum1Rot1, bits) ^ rotateR(e, p.sum1Rot2, bits) ^ rotateR(e, p.sum1Rot3, bits)) +
			((e & f) ^ (^e & g)) +
			p.keys[t] + scratch[t]
		temp2 := (rotateR(a, p.sum0Rot1, bits) ^ rotateR(a, p.sum0Rot2, bits) ^ rotateR(a, p.sum0Rot3, bits)) +
			((a & b) ^ (a & c) ^ (b & c))
		h, g, f, e = g, f, e, d+temp1
		d, c, b, a = c, b, a, temp1+temp2
	}

	// Add the resulting values back to the chaining value (truncated to the
	// word width).
	state.chainValue[0] += a
	state.chainValue[1] += b
	state.chainValue[2] += c
	state.chainValue[3] += d
	state.chainValue[4] += e
	state.chainValue[5] += f
	state.chainValue[6] += g
	state.chainValue[7] += h
}

// Performs the final post-processing and returns the message hash as a
// Digest: a single `1` bit, zero padding up to the length field, and the
// message bit count as one big-endian integer spanning the last two words.
// When the `1` bit lands at or past the start of the length field, the count
// moves to a second trailing block.
//
// The hasher is Reset afterwards, ready for a fresh message.
func (state *hasher[W]) Hash() Digest {
	blocksize := state.BlockSize()
	wordsize := int(state.params.bits / 8)
	lengthStart := blocksize - 2*wordsize

	state.block[state.position] = 0x80
	state.position++
	if state.position == blocksize {
		state.mixBits()
		state.position = 0
	}

	if state.position > lengthStart {
		// Too full for the length field; finish this block and use the next.
		clear(state.block[state.position:blocksize])
		state.mixBits()
		state.position = 0
	}
	clear(state.block[state.position:lengthStart])
	state.putLength(lengthStart)
	state.mixBits()

	result := state.extract()
	state.Reset()
	return result
}

// Encodes the accumulated byte count, times eight, as a big-endian integer
// in the final two words of the block.  The top word takes the three bits
// carried out of the low half by the multiplication.
func (state *hasher[W]) putLength(offset int) {
	bits := state.params.bits
	wordsize := int(bits / 8)
	putWord(state.block[offset:offset+wordsize],
		state.lengthHi<<3|state.lengthLo>>(bits-3), bits)
	putWord(state.block[offset+wordsize:offset+2*wordsize],
		state.lengthLo<<3, bits)
}

// Serializes the chaining value as big-endian bytes, most significant word
// first, truncated to the algorithm's output length.  SHA-224 and SHA-384
// truncate on a word boundary, so whole words are always emitted.
func (state *hasher[W]) extract() Digest {
	wordsize := int(state.params.bits / 8)
	result := digest{length: state.outlen}
	for i := 0; i*wordsize < state.outlen; i++ {
		putWord(result.bytes[i*wordsize:(i+1)*wordsize], state.chainValue[i], state.params.bits)
	}
	return result
}

// Convenience function, rotates the bits of a working-variable word to the
// right; width is the word size in bits.
func rotateR[W word](value W, count, width uint) W {
	return value>>count | value<<(width-count)
}

// Writes a word into the buffer in big-endian byte order.  The buffer slice
// must be exactly one word long.
func putWord[W word](buffer []byte, value W, width uint) {
	for i := range buffer {
		buffer[i] = byte(value >> (width - 8 - 8*uint(i)))
	}
}
