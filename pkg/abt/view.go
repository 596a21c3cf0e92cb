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

// View is a one-layer, capture-safe projection of a tree.  A view is either a
// variable or an operator applied to a sequence of operands, where each operand
// names the variables it binds explicitly (as fresh variables).  Views are
// intended for pattern matching and for constructing trees, and are never kept
// as the canonical representation.  The type T gives the representation of
// operand bodies which, typically, is simply a tree one level down.
type View[O comparable, S comparable, T any] interface {
	// AsVar checks whether this view is a variable and, if so, returns it.
	// Otherwise, it returns nil.
	AsVar() *Var[O, S, T]
	// AsOp checks whether this view is an operator application and, if so,
	// returns it.  Otherwise, it returns nil.
	AsOp() *Op[O, S, T]
}

// Var is a view of a variable.
type Var[O comparable, S comparable, T any] struct {
	Variable Variable[S]
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ View[uint, uint, any] = (*Var[uint, uint, any])(nil)

// AsVar returns this variable.
func (p *Var[O, S, T]) AsVar() *Var[O, S, T] { return p }

// AsOp returns nil for a variable.
func (p *Var[O, S, T]) AsOp() *Op[O, S, T] { return nil }

// Op is a view of an operator applied to a sequence of operands.
type Op[O comparable, S comparable, T any] struct {
	Operator O
	Operands []AbsView[S, T]
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ View[uint, uint, any] = (*Op[uint, uint, any])(nil)

// AsVar returns nil for an operator application.
func (p *Op[O, S, T]) AsVar() *Var[O, S, T] { return nil }

// AsOp returns this operator application.
func (p *Op[O, S, T]) AsOp() *Op[O, S, T] { return p }

// AbsView is a view of a scope, which names the variables it binds explicitly.
type AbsView[S comparable, T any] struct {
	Vars []Variable[S]
	Body T
}

// Closed constructs the view of a scope which binds no variables.
func Closed[S comparable, T any](body T) AbsView[S, T] {
	return AbsView[S, T]{nil, body}
}

// Scope constructs the view of a scope which binds the given variables.
func Scope[S comparable, T any](body T, vars ...Variable[S]) AbsView[S, T] {
	return AbsView[S, T]{vars, body}
}

// ViewOf projects the top layer of a given (closed) tree into a view.  Every
// operand of an operation is opened using fresh variables drawn from the
// supply, whilst the operand bodies themselves remain trees.  This panics if
// given a tree which is not closed, such as a bound reference.
func ViewOf[O comparable, S comparable](tree Abt[O, S], supply Supply) View[O, S, Abt[O, S]] {
	switch t := tree.(type) {
	case *Bound[O, S]:
		panic(fmt.Sprintf("cannot view dangling bound reference %s", t))
	case *Free[O, S]:
		return &Var[O, S, Abt[O, S]]{t.variable}
	case *Operation[O, S]:
		if t.scope != 0 {
			panic(fmt.Sprintf("cannot view open tree %s", t))
		}
		//
		operands := make([]AbsView[S, Abt[O, S]], len(t.operands))
		//
		for i, operand := range t.operands {
			vars, body := Unbind(operand, supply)
			operands[i] = AbsView[S, Abt[O, S]]{vars, body}
		}
		//
		return &Op[O, S, Abt[O, S]]{t.operator, operands}
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", tree))
	}
}

// MapView applies a given function to the body of every operand in a view,
// leaving its variables untouched.
func MapView[O comparable, S comparable, T any, U any](view View[O, S, T], fn func(T) U) View[O, S, U] {
	if v := view.AsVar(); v != nil {
		return &Var[O, S, U]{v.Variable}
	}
	//
	op := view.AsOp()
	operands := make([]AbsView[S, U], len(op.Operands))
	//
	for i, operand := range op.Operands {
		operands[i] = MapAbsView(operand, fn)
	}
	//
	return &Op[O, S, U]{op.Operator, operands}
}

// MapAbsView applies a given function to the body of a scope view.
func MapAbsView[S comparable, T any, U any](view AbsView[S, T], fn func(T) U) AbsView[S, U] {
	return AbsView[S, U]{view.Vars, fn(view.Body)}
}
