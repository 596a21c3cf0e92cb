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

import (
	"fmt"
	"hash/maphash"
	"slices"
)

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Seed used for hashing operators.  This is fixed for the lifetime of the
// process, meaning hashes are not stable across processes.
var operatorSeed = maphash.MakeSeed()

// Equal checks whether two trees are structurally equal.  Since bound
// variables are identified by position rather than by name, this corresponds
// to alpha-equivalence.  Display names of bound variables are ignored.
func Equal[O comparable, S comparable](lhs Abt[O, S], rhs Abt[O, S]) bool {
	if lhs == rhs {
		return true
	}
	//
	switch l := lhs.(type) {
	case *Bound[O, S]:
		r := rhs.AsBound()
		return r != nil && l.depth == r.depth && l.slot == r.slot
	case *Free[O, S]:
		r := rhs.AsFree()
		return r != nil && l.variable.id == r.variable.id
	case *Operation[O, S]:
		r := rhs.AsOperation()
		//
		if r == nil || l.operator != r.operator || l.sort != r.sort || len(l.operands) != len(r.operands) {
			return false
		}
		//
		for i := range l.operands {
			if !slices.Equal(l.operands[i].sorts, r.operands[i].sorts) ||
				!Equal(l.operands[i].body, r.operands[i].body) {
				return false
			}
		}
		//
		return true
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", lhs))
	}
}

// Hash computes a hashcode for a given tree which is consistent with Equal.
// That is, structurally equal trees always have the same hashcode.
func Hash[O comparable, S comparable](tree Abt[O, S]) uint64 {
	switch t := tree.(type) {
	case *Bound[O, S]:
		return mix(mix(mix(offset64, 1), uint64(t.depth)), uint64(t.slot))
	case *Free[O, S]:
		return mix(mix(offset64, 2), t.variable.id)
	case *Operation[O, S]:
		hash := mix(mix(offset64, 3), maphash.Comparable(operatorSeed, t.operator))
		//
		for _, operand := range t.operands {
			hash = mix(hash, uint64(len(operand.sorts)))
			hash = mix(hash, Hash(operand.body))
		}
		//
		return hash
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", tree))
	}
}

// FNV1a style mixing step
func mix(hash uint64, value uint64) uint64 {
	hash ^= value
	hash *= prime64
	//
	return hash
}
