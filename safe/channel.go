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
// github.com:SymbolNotFound/gosha2/safe/channel.go

package safe

type SafeRandom interface {
	Channel() <-chan []byte
	Close()
}

// Provides a channel-based wrapper around a random source, allowing multiple
// callers to retrieve the next random value concurrently (without shearing
// or repetition).  This is very useful where simulations need many random
// values drawn in separate goroutines, without the overhead of making many
// generator instances or performing the calls within a mutex.  You can also
// select {...} from multiple of these channels, i.e., many generators for
// each simulator, to obtain higher throughput on a multiprocessor system.
func New(source Source, bits uint8) SafeRandom {
	saferandom := &randchan{source, bits, make(chan []byte), make(chan struct{})}
	saferandom.start()
	return saferandom
}

type randchan struct {
	source  Source
	bits    uint8
	channel chan []byte
	done    chan struct{}
}

// Starts the feeder goroutine.  Draws from the source happen only here, so
// the source itself never sees concurrent access.
func (rng *randchan) start() {
	go func() {
		defer close(rng.channel)
		for {
			next := rng.source.Bytes(rng.bits)
			select {
			case rng.channel <- next:
			case <-rng.done:
				return
			}
		}
	}()
}

func (rng *randchan) Channel() <-chan []byte {
	return rng.channel
}

// Stops the feeder; the channel is closed once the goroutine exits.  Close
// must be called exactly once.
func (rng *randchan) Close() {
	close(rng.done)
}

// A source of random numbers, modeled after math/rand.Source.
type RandSource interface {
	Uint64() uint64
}

// An extension of math/rand.Source that also generates byte slices.
type Source interface {
	RandSource
	Bytes(bits uint8) []byte
}

// Convenience method for extending a math/rand.Source for compatibility.
func ExtendSource(source RandSource) Source {
	return extendedSource{source}
}

type extendedSource struct {
	RandSource
}

// Draws enough 64-bit values to cover the requested number of bits; the
// final byte is masked down when bits is not a multiple of eight.
func (source extendedSource) Bytes(bits uint8) []byte {
	if bits == 0 {
		return []byte{}
	}
	countBytes := int(bits) / 8
	if bits&0x07 > 0 {
		countBytes += 1
	}
	bytes := make([]byte, countBytes)

	remaining := uint(bits)
	offset := 0
	for remaining > 0 {
		next := source.RandSource.Uint64()
		for i := 0; i < 8 && remaining > 0; i++ {
			if remaining < 8 {
				mask := byte(1<<remaining) - 1
				bytes[offset] = byte(next) & mask
				remaining = 0
				break
			}
			bytes[offset] = byte(next)
			next >>= 8
			offset += 1
			remaining -= 8
		}
	}

	return bytes
}
