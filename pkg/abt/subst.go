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

// Subs represents a (simultaneous) substitution mapping variables, by identity,
// to the trees which should replace them.
type Subs[O comparable, S comparable] map[uint64]Abt[O, S]

// NewSubs constructs an empty substitution.
func NewSubs[O comparable, S comparable]() Subs[O, S] {
	return make(Subs[O, S])
}

// Add a mapping to this substitution, returning the updated substitution.
func (s Subs[O, S]) Add(v Variable[S], tree Abt[O, S]) Subs[O, S] {
	s[v.id] = tree
	return s
}

// Get the replacement for a given variable (if any).
func (s Subs[O, S]) Get(v Variable[S]) (Abt[O, S], bool) {
	tree, ok := s[v.id]
	return tree, ok
}

// Apply this substitution to a given tree.
func (s Subs[O, S]) Apply(tree Abt[O, S]) Abt[O, S] {
	if len(s) == 0 {
		return tree
	}
	//
	return substitute(tree, s)
}

// Subst replaces every free occurrence of a given variable within a tree by a
// given (closed) replacement.  Since bound variables are not named, they can
// never be confused with the free variables of the replacement, so no renaming
// is ever required.  Observe that the sort of the replacement is not checked
// against that of the variable (see SubstChecked).
func Subst[O comparable, S comparable](tree Abt[O, S], target Variable[S], replacement Abt[O, S]) Abt[O, S] {
	return NewSubs[O, S]().Add(target, replacement).Apply(tree)
}

// SubstAll applies a simultaneous substitution to a given tree.
func SubstAll[O comparable, S comparable](tree Abt[O, S], subs Subs[O, S]) Abt[O, S] {
	return subs.Apply(tree)
}

// SubstChecked is a variant of Subst which first checks the sort of the
// replacement matches that of the target variable.
func SubstChecked[O comparable, S comparable](tree Abt[O, S], target Variable[S],
	replacement Abt[O, S]) (Abt[O, S], error) {
	//
	if sort := SortOf[O, S](nil, replacement); sort != target.sort {
		return nil, &StructuralError{SortMismatch, nil, -1, -1, fmt.Sprint(target.sort), fmt.Sprint(sort)}
	}
	//
	return Subst(tree, target, replacement), nil
}

func substitute[O comparable, S comparable](tree Abt[O, S], subs Subs[O, S]) Abt[O, S] {
	switch t := tree.(type) {
	case *Bound[O, S]:
		return t
	case *Free[O, S]:
		if r, ok := subs[t.variable.id]; ok {
			return r
		}
		//
		return t
	case *Operation[O, S]:
		return t.rebuild(func(body Abt[O, S]) Abt[O, S] {
			return substitute(body, subs)
		})
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", tree))
	}
}

// FreeVars returns the free variables of a given tree, in order of first
// occurrence and without duplicates.
func FreeVars[O comparable, S comparable](tree Abt[O, S]) []Variable[S] {
	var (
		vars []Variable[S]
		seen = make(map[uint64]bool)
	)
	//
	Walk(tree, func(t Abt[O, S]) {
		if f := t.AsFree(); f != nil && !seen[f.variable.id] {
			seen[f.variable.id] = true
			vars = append(vars, f.variable)
		}
	})
	//
	return vars
}

// Occurs checks whether a given variable occurs free within a given tree.
func Occurs[O comparable, S comparable](tree Abt[O, S], v Variable[S]) bool {
	switch t := tree.(type) {
	case *Bound[O, S]:
		return false
	case *Free[O, S]:
		return t.variable.id == v.id
	case *Operation[O, S]:
		for _, operand := range t.operands {
			if Occurs(operand.body, v) {
				return true
			}
		}
		//
		return false
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", tree))
	}
}

// Walk visits every node of a given tree in depth-first (pre-order) order.
// Observe that operand bodies are visited as they are, meaning visitors will
// encounter bound references.
func Walk[O comparable, S comparable](tree Abt[O, S], visitor func(Abt[O, S])) {
	visitor(tree)
	//
	if op := tree.AsOperation(); op != nil {
		for _, operand := range op.operands {
			Walk(operand.body, visitor)
		}
	}
}
