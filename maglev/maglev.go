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

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/sirupsen/logrus"

	"github.com/noxiouz/maglevhash/maglev/dhash"
)

// An immutable snapshot: node i owns row i and every slot holding i.
type table[T comparable] struct {
	nodes  []T
	rows   []permutation
	lookup []int32
}

/*
Maglev maps keys onto a set of nodes. Readers (Get, Lookup, Nodes, ...) may
run concurrently with each other and with one writer. Writers (Add, Remove,
SetNodes) are serialised.

When T is an interface type, every dynamic value must be comparable. Add
and SetNodes reject other values with ErrEncode; Remove reports false.
*/
type Maglev[T comparable] struct {
	m      uint64
	config Config[T]

	mu    sync.Mutex
	order *arraylist.List   // node identifiers, in index order
	rows  map[T]permutation // per node, computed once

	snap atomic.Pointer[table[T]]
}

// New creates an empty table of size m. m must be an odd prime.
func New[T comparable](m uint64, opts ...Option[T]) (*Maglev[T], error) {
	if err := validateSize(m); err != nil {
		return nil, err
	}
	mh := &Maglev[T]{
		m:      m,
		config: DefaultConfig[T](),
		order:  arraylist.New(),
		rows:   make(map[T]permutation),
	}
	for _, opt := range opts {
		opt(&mh.config)
	}
	mh.snap.Store(&table[T]{})
	return mh, nil
}

// Size returns the number of slots of the lookup table.
func (mh *Maglev[T]) Size() uint64 { return mh.m }

func (mh *Maglev[T]) Len() int { return len(mh.snap.Load().nodes) }

// Nodes returns the nodes in index order.
func (mh *Maglev[T]) Nodes() []T {
	return append([]T(nil), mh.snap.Load().nodes...)
}

/*
Add adds node and rebuilds the table. It reports false, and changes
nothing, if node is already present.
*/
func (mh *Maglev[T]) Add(node T) (bool, error) {
	if err := checkComparable(node); err != nil {
		return false, err
	}

	mh.mu.Lock()
	defer mh.mu.Unlock()

	if _, ok := mh.rows[node]; ok {
		return false, nil
	}
	if uint64(mh.order.Size()) >= mh.m {
		return false, fmt.Errorf("%w: table of %d slots is full", ErrTooManyNodes, mh.m)
	}
	row, err := mh.permutation(node)
	if err != nil {
		return false, err
	}
	mh.rows[node] = row
	mh.order.Add(node)
	mh.rebuild()
	return true, nil
}

/*
Remove removes node and rebuilds the table. The remaining nodes keep their
relative order. It reports false, and changes nothing, if node is absent.
*/
func (mh *Maglev[T]) Remove(node T) bool {
	if checkComparable(node) != nil {
		return false
	}

	mh.mu.Lock()
	defer mh.mu.Unlock()

	if _, ok := mh.rows[node]; !ok {
		return false
	}
	mh.order.Remove(mh.order.IndexOf(node))
	delete(mh.rows, node)
	mh.rebuild()
	return true
}

/*
SetNodes replaces the node set with nodes, in that order, with a single
rebuild. Later duplicates are ignored. It reports false if the resulting set
and order equal the current ones. On error the table is left untouched.
*/
func (mh *Maglev[T]) SetNodes(nodes []T) (bool, error) {
	mh.mu.Lock()
	defer mh.mu.Unlock()

	uniq := make([]T, 0, len(nodes))
	rows := make(map[T]permutation, len(nodes))
	for _, node := range nodes {
		if err := checkComparable(node); err != nil {
			return false, err
		}
		if _, ok := rows[node]; ok {
			continue
		}
		row, ok := mh.rows[node]
		if !ok {
			var err error
			if row, err = mh.permutation(node); err != nil {
				return false, err
			}
		}
		rows[node] = row
		uniq = append(uniq, node)
	}
	if uint64(len(uniq)) > mh.m {
		return false, fmt.Errorf("%w: %d nodes for %d slots", ErrTooManyNodes, len(uniq), mh.m)
	}
	if mh.sameOrder(uniq) {
		return false, nil
	}

	mh.order.Clear()
	for _, node := range uniq {
		mh.order.Add(node)
	}
	mh.rows = rows
	mh.rebuild()
	return true, nil
}

func (mh *Maglev[T]) sameOrder(nodes []T) bool {
	if len(nodes) != mh.order.Size() {
		return false
	}
	for i, node := range nodes {
		if v, _ := mh.order.Get(i); v != any(node) {
			return false
		}
	}
	return true
}

// checkComparable guards map and == use of interface-typed identifiers.
func checkComparable[T comparable](node T) error {
	rv := reflect.ValueOf(any(node))
	if rv.IsValid() && !rv.Comparable() {
		return fmt.Errorf("%w %T: not comparable", ErrEncode, node)
	}
	return nil
}

func (mh *Maglev[T]) permutation(node T) (permutation, error) {
	b, err := mh.config.Encoder(node)
	if err != nil {
		if !errors.Is(err, ErrEncode) {
			err = fmt.Errorf("%w %v: %w", ErrEncode, node, err)
		}
		return permutation{}, err
	}
	return newPermutation(mh.config.Hasher, b, mh.m), nil
}

// rebuild populates a new snapshot from the current node order and publishes it.
func (mh *Maglev[T]) rebuild() {
	start := time.Now()

	t := &table[T]{
		nodes: make([]T, 0, mh.order.Size()),
		rows:  make([]permutation, 0, mh.order.Size()),
	}
	mh.order.Each(func(_ int, v interface{}) {
		node, _ := v.(T)
		t.nodes = append(t.nodes, node)
		t.rows = append(t.rows, mh.rows[node])
	})
	t.lookup = populate(t.rows, mh.m)
	mh.snap.Store(t)

	mh.config.Logger.WithFields(logrus.Fields{
		"nodes":   len(t.nodes),
		"size":    mh.m,
		"elapsed": time.Since(start),
	}).Debug("maglev: table rebuilt")
}

/*
Get returns the node owning key. It reports false if the table has no nodes,
or if key cannot be encoded.
*/
func (mh *Maglev[T]) Get(key T) (T, bool) {
	t := mh.snap.Load()
	if len(t.nodes) == 0 {
		var zero T
		return zero, false
	}
	b, err := mh.config.Encoder(key)
	if err != nil {
		mh.config.Logger.WithError(err).Warn("maglev: lookup key not encodable")
		var zero T
		return zero, false
	}
	return t.owner(mh.config.Hasher, b, mh.m), true
}

// Lookup is like Get, for a key given as raw bytes.
func (mh *Maglev[T]) Lookup(key []byte) (T, bool) {
	t := mh.snap.Load()
	if len(t.nodes) == 0 {
		var zero T
		return zero, false
	}
	return t.owner(mh.config.Hasher, key, mh.m), true
}

func (t *table[T]) owner(h dhash.Hasher, key []byte, m uint64) T {
	return t.nodes[t.lookup[dhash.Offset(h, key, m)]]
}

// Distribution returns the number of slots each node owns.
func (mh *Maglev[T]) Distribution() map[T]int {
	t := mh.snap.Load()
	dist := make(map[T]int, len(t.nodes))
	for _, node := range t.nodes {
		dist[node] = 0
	}
	for _, i := range t.lookup {
		dist[t.nodes[i]]++
	}
	return dist
}
