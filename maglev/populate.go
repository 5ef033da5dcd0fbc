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

const unassigned int32 = -1

/*
Fills a lookup table of m slots from the permutation rows, in node index
order. In every round each node claims the first still unassigned slot of
its row. Population stops as soon as all m slots are taken, which may be in
the middle of a round. The lowest index wins when two nodes prefer the same
slot at the same time.

Returns nil for zero rows.
*/
func populate(rows []permutation, m uint64) []int32 {
	if len(rows) == 0 {
		return nil
	}

	// next[i] is the slot at node i's cursor into its row.
	next := make([]uint64, len(rows))
	for i, r := range rows {
		next[i] = r.offset
	}

	entry := make([]int32, m)
	for j := range entry {
		entry[j] = unassigned
	}

	var n uint64
	for {
		for i, r := range rows {
			c := next[i]
			for entry[c] != unassigned {
				c = r.next(c)
			}
			entry[c] = int32(i)
			next[i] = r.next(c)
			n++
			if n == m {
				return entry
			}
		}
	}
}
