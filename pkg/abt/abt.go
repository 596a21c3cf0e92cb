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
	"strings"
)

// Abt is an abstract binding tree over operators O and sorts S.  A tree is
// either a bound reference (identified by scope depth and slot), a free
// reference (identified by a variable) or an operator applied to a fixed number
// of scopes.  Trees are immutable and may be freely shared.
//
// Observe that operations and bound references cannot be constructed directly.
// Instead, trees are built from views using Build, which ensures every tree is
// well-formed with respect to its signature.
type Abt[O comparable, S comparable] interface {
	// AsBound checks whether this tree is a bound reference and, if so, returns
	// it.  Otherwise, it returns nil.
	AsBound() *Bound[O, S]
	// AsFree checks whether this tree is a free reference and, if so, returns
	// it.  Otherwise, it returns nil.
	AsFree() *Free[O, S]
	// AsOperation checks whether this tree is an operator application and, if
	// so, returns it.  Otherwise, it returns nil.
	AsOperation() *Operation[O, S]
	// String returns a (debugging) representation of this tree in which bound
	// references are shown as depth/slot pairs.
	String() string
}

// ===================================================================
// Bound
// ===================================================================

// Bound represents a reference to a variable bound by an enclosing scope.  The
// depth identifies the scope, counting outwards from the innermost enclosing
// scope (which has depth 0), whilst the slot identifies the variable within
// that scope.
type Bound[O comparable, S comparable] struct {
	depth uint
	slot  uint
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Abt[uint, uint] = (*Bound[uint, uint])(nil)

// Depth returns the number of scopes between this reference and its binder.
func (p *Bound[O, S]) Depth() uint { return p.depth }

// Slot returns the position of the referenced variable within its binder.
func (p *Bound[O, S]) Slot() uint { return p.slot }

// AsBound returns this bound reference.
func (p *Bound[O, S]) AsBound() *Bound[O, S] { return p }

// AsFree returns nil for a bound reference.
func (p *Bound[O, S]) AsFree() *Free[O, S] { return nil }

// AsOperation returns nil for a bound reference.
func (p *Bound[O, S]) AsOperation() *Operation[O, S] { return nil }

func (p *Bound[O, S]) String() string {
	return fmt.Sprintf("^%d.%d", p.depth, p.slot)
}

// ===================================================================
// Free
// ===================================================================

// Free represents a reference to a free variable.
type Free[O comparable, S comparable] struct {
	variable Variable[S]
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Abt[uint, uint] = (*Free[uint, uint])(nil)

// NewFree constructs a tree referring to a given (free) variable.  This is the
// only tree which can be constructed directly, since it is always well-formed.
func NewFree[O comparable, S comparable](variable Variable[S]) *Free[O, S] {
	return &Free[O, S]{variable}
}

// Variable returns the variable being referenced.
func (p *Free[O, S]) Variable() Variable[S] { return p.variable }

// AsBound returns nil for a free reference.
func (p *Free[O, S]) AsBound() *Bound[O, S] { return nil }

// AsFree returns this free reference.
func (p *Free[O, S]) AsFree() *Free[O, S] { return p }

// AsOperation returns nil for a free reference.
func (p *Free[O, S]) AsOperation() *Operation[O, S] { return nil }

func (p *Free[O, S]) String() string {
	return p.variable.String()
}

// ===================================================================
// Operation
// ===================================================================

// Operation represents an operator applied to a sequence of operands, each of
// which is a scope.  The number of operands always matches the arity of the
// operator in the signature against which this operation was built.
type Operation[O comparable, S comparable] struct {
	operator O
	operands []Abs[O, S]
	// Result sort, as declared by the operator's arity.
	sort S
	// Number of enclosing scopes this operation refers into (0 when closed).
	scope uint
}

// Construct an operation, determining how far its bound references escape.
func newOperation[O comparable, S comparable](operator O, operands []Abs[O, S], sort S) *Operation[O, S] {
	var scope uint
	//
	for _, operand := range operands {
		// Discount the operand's own scope
		if s := scopeOf(operand.body); s > 1 {
			scope = max(scope, s-1)
		}
	}
	//
	return &Operation[O, S]{operator, operands, sort, scope}
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Abt[uint, uint] = (*Operation[uint, uint])(nil)

// Operator returns the operator being applied.
func (p *Operation[O, S]) Operator() O { return p.operator }

// Operands returns the operands of this operation.  The returned slice must not
// be modified.
func (p *Operation[O, S]) Operands() []Abs[O, S] { return p.operands }

// Operand returns the ith operand of this operation.
func (p *Operation[O, S]) Operand(i uint) Abs[O, S] { return p.operands[i] }

// Sort returns the sort of this operation, as declared by the arity of its
// operator.
func (p *Operation[O, S]) Sort() S { return p.sort }

// AsBound returns nil for an operation.
func (p *Operation[O, S]) AsBound() *Bound[O, S] { return nil }

// AsFree returns nil for an operation.
func (p *Operation[O, S]) AsFree() *Free[O, S] { return nil }

// AsOperation returns this operation.
func (p *Operation[O, S]) AsOperation() *Operation[O, S] { return p }

func (p *Operation[O, S]) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("%v(", p.operator))
	//
	for i, operand := range p.operands {
		if i != 0 {
			builder.WriteString("; ")
		}
		//
		builder.WriteString(operand.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// rebuild constructs a copy of this operation with new operands, or returns the
// operation itself when no operand body actually changed.  This allows
// unmodified subtrees to be shared.
func (p *Operation[O, S]) rebuild(fn func(Abt[O, S]) Abt[O, S]) Abt[O, S] {
	var operands []Abs[O, S]
	//
	for i, operand := range p.operands {
		body := fn(operand.body)
		// Copy on first change
		if operands == nil && body != operand.body {
			operands = make([]Abs[O, S], len(p.operands))
			copy(operands, p.operands[:i])
		}
		//
		if operands != nil {
			operands[i] = Abs[O, S]{operand.sorts, operand.names, body}
		}
	}
	// Check whether anything changed
	if operands == nil {
		return p
	}
	//
	return newOperation(p.operator, operands, p.sort)
}

// IsClosed checks whether a tree contains no bound references escaping it.  A
// closed tree can be used as the body of a view, and is the only kind of tree
// which can be obtained by building or viewing.
func IsClosed[O comparable, S comparable](tree Abt[O, S]) bool {
	return scopeOf(tree) == 0
}

// Determine the number of enclosing scopes a tree refers into.
func scopeOf[O comparable, S comparable](tree Abt[O, S]) uint {
	switch t := tree.(type) {
	case *Bound[O, S]:
		return t.depth + 1
	case *Free[O, S]:
		return 0
	case *Operation[O, S]:
		return t.scope
	default:
		panic(fmt.Sprintf("unknown tree \"%T\"", tree))
	}
}

// ===================================================================
// Abs
// ===================================================================

// Abs represents a scope, binding zero or more variables of given sorts over a
// body.  Within the body, the variables bound here are referred to by bound
// references whose depth equals the number of scopes crossed since this one.
type Abs[O comparable, S comparable] struct {
	sorts []S
	// Display names of the bound variables.  These are hints for printing only
	// and play no part in equality.
	names []string
	body  Abt[O, S]
}

// Sorts returns the sorts of the variables bound by this scope.
func (p Abs[O, S]) Sorts() []S { return p.sorts }

// Arity returns the number of variables bound by this scope.
func (p Abs[O, S]) Arity() uint { return uint(len(p.sorts)) }

// Names returns the display name hints of the variables bound by this scope.
func (p Abs[O, S]) Names() []string { return p.names }

// Body returns the body of this scope.  The body is not closed, in the sense
// that it may contain bound references to this scope (and, hence, it cannot be
// viewed directly).  Use Unbind to obtain a closed body.
func (p Abs[O, S]) Body() Abt[O, S] { return p.body }

func (p Abs[O, S]) String() string {
	if len(p.sorts) == 0 {
		return p.body.String()
	}
	//
	return fmt.Sprintf("%s.%s", sortsString(p.sorts), p.body.String())
}
