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

package maglev

import "math/bits"
import "github.com/noxiouz/maglevhash/maglev/dhash"

/*
A permutation row of a table of size m. The j-th slot of the row is
(offset + j*skip) mod m. As m is prime and skip is in [1, m-1], the row
visits every slot exactly once.

Only the three parameters are kept; the slots are computed as the populator
walks the row.
*/
type permutation struct {
	offset uint64
	skip   uint64
	m      uint64
}

func newPermutation(h dhash.Hasher, p []byte, m uint64) permutation {
	return permutation{
		offset: dhash.Offset(h, p, m),
		skip:   dhash.Skip(h, p, m),
		m:      m,
	}
}

// at returns the j-th slot of the row.
func (p permutation) at(j uint64) uint64 {
	hi, lo := bits.Mul64(j%p.m, p.skip)
	_, r := bits.Div64(hi, lo, p.m)
	r += p.offset
	if r >= p.m {
		r -= p.m
	}
	return r
}

// next returns the slot following slot c in the row.
func (p permutation) next(c uint64) uint64 {
	c += p.skip
	if c >= p.m {
		c -= p.m
	}
	return c
}

// slots materialises the whole row.
func (p permutation) slots() []uint64 {
	row := make([]uint64, p.m)
	for j := range row {
		row[j] = p.at(uint64(j))
	}
	return row
}
