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
An implementation of Maglev consistent hashing, as described in
"Maglev: A Fast and Reliable Software Network Load Balancer"
(Eisenbud et al., NSDI 2016).

A Maglev table maps arbitrary keys onto a dynamic set of nodes through a
fixed-size lookup table of M slots, M being prime. Every node owns a
permutation of the slots, derived from two keyed hashes of its identifier.
The table is filled round-robin: each node in turn claims the next free slot
in its permutation, until every slot is taken. This gives every node either
floor(M/N) or ceil(M/N) slots, and a change to the node set only moves a
small fraction of the slots.

Lookups are lock-free reads of an immutable snapshot. Mutations build a new
snapshot and swap it in.
*/
package maglev

import "errors"

// Preset table sizes. M should exceed the node count at least 100 fold.
const (
	SmallM uint64 = 65537
	BigM   uint64 = 655373
)

// MaxM bounds the table size, so that slots and node indices fit in 32 bits.
const MaxM uint64 = 1<<31 - 1

var (
	ErrInvalidSize  = errors.New("maglev: table size must be an odd prime")
	ErrTooManyNodes = errors.New("maglev: too many nodes for table size")
	ErrEncode       = errors.New("maglev: cannot encode identifier")
)
