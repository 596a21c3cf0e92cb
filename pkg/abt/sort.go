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

import "fmt"

// Context records the sorts bound by the scopes enclosing some point in a tree,
// with the innermost scope first.  A nil context is the empty context.
// Contexts are persistent, so pushing a scope never affects the original.
type Context[S comparable] struct {
	sorts  []S
	parent *Context[S]
}

// Push returns a new context extending this one with an innermost scope
// binding variables of the given sorts.
func (p *Context[S]) Push(sorts []S) *Context[S] {
	return &Context[S]{sorts, p}
}

// Depth returns the number of scopes in this context.
func (p *Context[S]) Depth() uint {
	var n uint
	//
	for c := p; c != nil; c = c.parent {
		n++
	}
	//
	return n
}

// Lookup the sort of the variable in a given slot of the scope at a given
// depth.  Since bound references are never exposed outside their scopes, an
// out-of-bounds lookup indicates a malformed tree and results in a panic.
func (p *Context[S]) Lookup(depth uint, slot uint) S {
	var c = p
	//
	for i := uint(0); i < depth && c != nil; i++ {
		c = c.parent
	}
	//
	if c == nil {
		panic(fmt.Sprintf("bound reference ^%d.%d escapes its context of %d scope(s)", depth, slot, p.Depth()))
	} else if slot >= uint(len(c.sorts)) {
		panic(fmt.Sprintf("bound reference ^%d.%d out-of-bounds for scope of %d variable(s)", depth, slot, len(c.sorts)))
	}
	//
	return c.sorts[slot]
}

// SortOf determines the sort of a tree under a given context of enclosing
// scopes (which may be nil for a closed tree).  The sort of an operation is the
// result sort declared by its operator, and is not recomputed from its
// operands.
func SortOf[O comparable, S comparable](ctx *Context[S], tree Abt[O, S]) S {
	switch t := tree.(type) {
	case *Bound[O, S]:
		return ctx.Lookup(t.depth, t.slot)
	case *Free[O, S]:
		return t.variable.sort
	case *Operation[O, S]:
		return t.sort
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", tree))
	}
}

// Validate checks a given (closed) tree in its entirety against a signature.
// Trees built through this package are valid for the signature they were built
// against, hence this is only necessary for trees checked against a different
// signature, or which have crossed some boundary (e.g. were decoded by some
// external means).
func Validate[O comparable, S comparable](sig Signature[O, S], tree Abt[O, S]) error {
	_, err := validate(sig, nil, tree)
	//
	return err
}

func validate[O comparable, S comparable](sig Signature[O, S], ctx *Context[S], tree Abt[O, S]) (S, error) {
	var empty S
	//
	switch t := tree.(type) {
	case *Bound[O, S]:
		return ctx.Lookup(t.depth, t.slot), nil
	case *Free[O, S]:
		return t.variable.sort, nil
	case *Operation[O, S]:
		arity := sig.Arity(t.operator)
		//
		if len(arity.Operands) != len(t.operands) {
			return empty, arityMismatch(t.operator, len(arity.Operands), len(t.operands))
		}
		//
		for i, operand := range t.operands {
			valence := arity.Operands[i]
			//
			if len(valence.Bound) != len(operand.sorts) {
				return empty, bindingShapeMismatch(t.operator, i, len(valence.Bound), len(operand.sorts))
			}
			//
			for j, s := range operand.sorts {
				if s != valence.Bound[j] {
					return empty, boundSortMismatch(t.operator, i, j, valence.Bound[j], s)
				}
			}
			//
			s, err := validate(sig, ctx.Push(operand.sorts), operand.body)
			if err != nil {
				return empty, err
			} else if s != valence.Sort {
				return empty, operandSortMismatch(t.operator, i, valence.Sort, s)
			}
		}
		// Sanity check recorded sort
		if t.sort != arity.Sort {
			return empty, resultSortMismatch(t.operator, arity.Sort, t.sort)
		}
		//
		return t.sort, nil
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", tree))
	}
}
