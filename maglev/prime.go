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

import "fmt"
import "math/big"

// isPrime is exact for every uint64.
func isPrime(m uint64) bool {
	return new(big.Int).SetUint64(m).ProbablyPrime(0)
}

func validateSize(m uint64) error {
	if m < 3 || m > MaxM || m%2 == 0 || !isPrime(m) {
		return fmt.Errorf("%w: %d", ErrInvalidSize, m)
	}
	return nil
}

/*
SizeFor returns the smallest preset table size that is at least 100 times
the given node count.
*/
func SizeFor(nodes int) (uint64, error) {
	n := uint64(max(nodes, 0))
	switch {
	case n <= SmallM/100:
		return SmallM, nil
	case n <= BigM/100:
		return BigM, nil
	}
	return 0, fmt.Errorf("%w: %d nodes, largest preset is %d", ErrTooManyNodes, nodes, BigM)
}
