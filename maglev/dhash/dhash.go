/*
Copyright (c) 2018 Simon Schmidt

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

/*
Keyed 64 bit hash functions used to place nodes and keys into a Maglev
lookup table. Every function is a pure function of (key, bytes); the same
input always yields the same digest, across runs and across machines.

The default implementation is SipHash-2-4:
	"github.com/dchest/siphash"

FarmHash and xxHash variants are available for callers that prefer raw speed
over SipHash's resistance to crafted inputs.
*/
package dhash

import "github.com/dchest/siphash"
import farm "github.com/dgryski/go-farm"
import "github.com/cespare/xxhash/v2"

// The two independent keys. A node's offset is derived with OffsetKey, its
// skip with SkipKey. Lookup keys are hashed with OffsetKey as well.
const (
	OffsetKey uint64 = 0xdeadbabe
	SkipKey   uint64 = 0xdeadbeef
)

type Hasher interface {
	Hash64(key uint64, p []byte) uint64
}

type HasherFunc func(key uint64, p []byte) uint64

func (f HasherFunc) Hash64(key uint64, p []byte) uint64 { return f(key, p) }

/*
SipHash-2-4 keyed with (key, 0).
*/
type SipHash struct{}

func (SipHash) Hash64(key uint64, p []byte) uint64 {
	return siphash.Hash(key, 0, p)
}

/*
FarmHash64, using the key as seed.
*/
type FarmHash struct{}

func (FarmHash) Hash64(key uint64, p []byte) uint64 {
	return farm.Hash64WithSeed(p, key)
}

/*
xxHash64, using the key as seed.
*/
type XXHash struct{}

func (XXHash) Hash64(key uint64, p []byte) uint64 {
	d := xxhash.NewWithSeed(key)
	d.Write(p)
	return d.Sum64()
}

var Default Hasher = SipHash{}

// Offset returns the first slot of the permutation of p in a table of size m.
func Offset(h Hasher, p []byte, m uint64) uint64 {
	return h.Hash64(OffsetKey, p) % m
}

// Skip returns the permutation stride of p in a table of size m. The result
// is in [1, m-1], so it is never zero. m must be at least 2.
func Skip(h Hasher, p []byte, m uint64) uint64 {
	return h.Hash64(SkipKey, p)%(m-1) + 1
}
