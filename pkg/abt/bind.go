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

// Bind abstracts zero or more variables over a given tree, producing a scope.
// Every free occurrence of the ith variable becomes a bound reference to slot i
// of the new scope.  Bound references which point outside the given tree are
// shifted to account for the newly introduced scope.  Free occurrences of any
// other variable are unaffected.  Should the same variable appear more than
// once, its first position determines its slot.
//
// Observe that the sorts of the resulting scope are taken from the variables
// themselves.
func Bind[O comparable, S comparable](tree Abt[O, S], vars ...Variable[S]) Abs[O, S] {
	var (
		sorts = make([]S, len(vars))
		names = make([]string, len(vars))
	)
	//
	for i, v := range vars {
		sorts[i] = v.sort
		names[i] = v.name
	}
	//
	return Abs[O, S]{sorts, names, bind(tree, vars, 0)}
}

// Bind a given set of variables within a tree where depth is the number of
// scopes which have been entered since the scope being introduced.
func bind[O comparable, S comparable](tree Abt[O, S], vars []Variable[S], depth uint) Abt[O, S] {
	switch t := tree.(type) {
	case *Bound[O, S]:
		if t.depth < depth {
			// Bound within the tree itself
			return t
		}
		// Points beyond the new scope
		return &Bound[O, S]{t.depth + 1, t.slot}
	case *Free[O, S]:
		for i, v := range vars {
			if v.id == t.variable.id {
				return &Bound[O, S]{depth, uint(i)}
			}
		}
		//
		return t
	case *Operation[O, S]:
		return t.rebuild(func(body Abt[O, S]) Abt[O, S] {
			return bind(body, vars, depth+1)
		})
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", tree))
	}
}

// Unbind opens a scope by allocating a fresh variable for each variable it
// binds, and returning these along with the body in which bound references to
// the scope are replaced by free references to the fresh variables.  Each fresh
// variable inherits the display name recorded for its slot.
func Unbind[O comparable, S comparable](abs Abs[O, S], supply Supply) ([]Variable[S], Abt[O, S]) {
	var (
		vars   = make([]Variable[S], len(abs.sorts))
		images = make([]Abt[O, S], len(abs.sorts))
	)
	//
	for i, sort := range abs.sorts {
		var name string
		//
		if i < len(abs.names) {
			name = abs.names[i]
		}
		//
		vars[i] = FreshNamed(supply, sort, name)
		images[i] = &Free[O, S]{vars[i]}
	}
	//
	return vars, open(abs.body, images, 0)
}

// Instantiate opens a scope by replacing bound references to it with the given
// trees (in slot order).  The given trees must be closed, meaning they contain
// no dangling bound references (as is the case for any tree obtained through
// this package).  This panics if the number of trees does not match the arity
// of the scope.
func Instantiate[O comparable, S comparable](abs Abs[O, S], images ...Abt[O, S]) Abt[O, S] {
	if len(images) != len(abs.sorts) {
		panic(fmt.Sprintf("cannot instantiate scope of %d variable(s) with %d tree(s)", len(abs.sorts), len(images)))
	}
	//
	return open(abs.body, images, 0)
}

// Open a given tree by replacing bound references to the scope at the given
// depth with the corresponding images.  References to scopes further out are
// adjusted to account for the removed scope.
func open[O comparable, S comparable](tree Abt[O, S], images []Abt[O, S], depth uint) Abt[O, S] {
	switch t := tree.(type) {
	case *Bound[O, S]:
		switch {
		case t.depth < depth:
			return t
		case t.depth > depth:
			return &Bound[O, S]{t.depth - 1, t.slot}
		case t.slot >= uint(len(images)):
			panic(fmt.Sprintf("bound reference %s out-of-bounds for scope of %d variable(s)", t, len(images)))
		default:
			return images[t.slot]
		}
	case *Free[O, S]:
		return t
	case *Operation[O, S]:
		return t.rebuild(func(body Abt[O, S]) Abt[O, S] {
			return open(body, images, depth+1)
		})
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", tree))
	}
}
