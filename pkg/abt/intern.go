// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package abt

// Interner is a hash-consing table which maps structurally equal trees onto a
// single canonical instance.  Interning a tree interns all of its subtrees, so
// that equal subtrees across all interned trees are physically shared.  An
// interner is not safe for concurrent use.
type Interner[O comparable, S comparable] struct {
	// buckets maps hashcodes to the canonical trees with that hashcode.
	buckets map[uint64][]Abt[O, S]
}

// NewInterner constructs an empty interner.
func NewInterner[O comparable, S comparable]() *Interner[O, S] {
	return &Interner[O, S]{make(map[uint64][]Abt[O, S])}
}

// Size returns the number of canonical trees held by this interner.
func (p *Interner[O, S]) Size() uint {
	var count uint
	//
	for _, b := range p.buckets {
		count += uint(len(b))
	}
	//
	return count
}

// Intern returns the canonical instance of a given tree, registering it (and
// its subtrees) if no equal tree has been seen before.
func (p *Interner[O, S]) Intern(tree Abt[O, S]) Abt[O, S] {
	if op := tree.AsOperation(); op != nil {
		tree = op.rebuild(p.Intern)
	}
	//
	hash := Hash(tree)
	bucket := p.buckets[hash]
	//
	for _, t := range bucket {
		if Equal(t, tree) {
			return t
		}
	}
	//
	p.buckets[hash] = append(bucket, tree)
	//
	return tree
}
