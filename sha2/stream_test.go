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
// github.com:SymbolNotFound/gosha2/sha2/stream_test.go

package sha2_test

import (
	stdsha256 "crypto/sha256"
	stdsha512 "crypto/sha512"
	"encoding/hex"
	"hash"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SymbolNotFound/gosha2/sha2"
)

// Every hasher constructor paired with the standard library implementation
// of the same algorithm, used as the known-good reference.
var algorithms = []struct {
	name      string
	construct func() sha2.Hasher
	reference func() hash.Hash
}{
	{"sha224", sha2.New224, stdsha256.New224},
	{"sha256", sha2.New256, stdsha256.New},
	{"sha384", sha2.New384, stdsha512.New384},
	{"sha512", sha2.New512, stdsha512.New},
}

func referenceHex(reference func() hash.Hash, message []byte) string {
	h := reference()
	h.Write(message)
	return hex.EncodeToString(h.Sum(nil))
}

// The central correctness property: the digest depends only on the
// concatenated byte stream, never on how it was partitioned across Write
// calls.  Partitions are drawn from a fixed-seed generator so failures
// reproduce.
func TestChunkingEquivalence(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 1848))

	for _, alg := range algorithms {
		t.Run(alg.name, func(t *testing.T) {
			for trial := 0; trial < 50; trial++ {
				message := make([]byte, rng.IntN(4096))
				for i := range message {
					message[i] = byte(rng.UintN(256))
				}

				oneShot, err := sha2.HashBytes(alg.construct(), message)
				require.NoError(t, err)

				pieces := alg.construct()
				remaining := message
				for len(remaining) > 0 {
					cut := rng.IntN(len(remaining) + 1)
					written, err := pieces.Write(remaining[:cut])
					require.NoError(t, err)
					require.Equal(t, cut, written)
					remaining = remaining[cut:]
				}
				require.Equal(t, oneShot.Hex(), pieces.Hash().Hex(),
					"partitioned digest diverged on trial %d (%d bytes)",
					trial, len(message))
			}
		})
	}
}

// Empty writes are no-ops anywhere in the stream, nil slices included.
func TestEmptyWrites(t *testing.T) {
	for _, alg := range algorithms {
		t.Run(alg.name, func(t *testing.T) {
			plain, err := sha2.HashBytes(alg.construct(), []byte("gopher"))
			require.NoError(t, err)

			sprinkled := alg.construct()
			for _, piece := range [][]byte{nil, []byte("go"), {}, []byte("pher"), nil, {}} {
				written, err := sprinkled.Write(piece)
				require.NoError(t, err)
				require.Equal(t, len(piece), written)
			}
			require.Equal(t, plain.Hex(), sprinkled.Hash().Hex())
		})
	}
}

// Digests match the standard library implementations bit-for-bit over a
// random corpus, including inputs spanning many blocks.
func TestReferenceEquivalence(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 4242))

	for _, alg := range algorithms {
		t.Run(alg.name, func(t *testing.T) {
			for trial := 0; trial < 100; trial++ {
				message := make([]byte, rng.IntN(8192))
				for i := range message {
					message[i] = byte(rng.UintN(256))
				}
				digest, err := sha2.HashBytes(alg.construct(), message)
				require.NoError(t, err)
				require.Equal(t, referenceHex(alg.reference, message), digest.Hex(),
					"diverged from reference on trial %d (%d bytes)", trial, len(message))
			}
		})
	}
}

// Two fresh hashers agree on identical inputs.
func TestFreshHasherDeterminism(t *testing.T) {
	for _, alg := range algorithms {
		first, err := sha2.HashBytes(alg.construct(), []byte("determinism"))
		require.NoError(t, err)
		second, err := sha2.HashBytes(alg.construct(), []byte("determinism"))
		require.NoError(t, err)
		require.Equal(t, first.Hex(), second.Hex())
	}
}
