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

// Build constructs a tree from a given view, checking that it is well-formed
// with respect to a given signature.  A variable always succeeds.  An operator
// application succeeds when it has the expected number of operands, each
// operand binds the expected number of (distinct) variables of the expected
// sorts, and each operand body has the expected sort.  On success, each operand
// is converted into a scope by binding its variables within its body.
//
// This is the only way an operation can be constructed, hence every tree
// containing an operation was checked against a signature at some point.
// Operand bodies must be closed (see IsClosed), and this panics otherwise
// since an open body can only arise from a scope which was never opened.
func Build[O comparable, S comparable](sig Signature[O, S], view View[O, S, Abt[O, S]]) (Abt[O, S], error) {
	if v := view.AsVar(); v != nil {
		return &Free[O, S]{v.Variable}, nil
	}
	//
	var (
		op       = view.AsOp()
		arity    = sig.Arity(op.Operator)
		operands = make([]Abs[O, S], len(op.Operands))
	)
	// Check operand count
	if len(op.Operands) != len(arity.Operands) {
		return nil, arityMismatch(op.Operator, len(arity.Operands), len(op.Operands))
	}
	//
	for i, operand := range op.Operands {
		if err := checkOperand(op.Operator, i, arity.Operands[i], operand); err != nil {
			return nil, err
		}
		//
		operands[i] = Bind(operand.Body, operand.Vars...)
	}
	//
	return newOperation(op.Operator, operands, arity.Sort), nil
}

// MustBuild constructs a tree from a given view, and panics if the view is
// malformed.  This is intended for views whose shape is fixed by construction.
func MustBuild[O comparable, S comparable](sig Signature[O, S], view View[O, S, Abt[O, S]]) Abt[O, S] {
	tree, err := Build(sig, view)
	//
	if err != nil {
		panic(err.Error())
	}
	//
	return tree
}

// Check a given operand view against its expected valence.
func checkOperand[O comparable, S comparable](op O, index int, valence Valence[S],
	operand AbsView[S, Abt[O, S]]) error {
	if !IsClosed(operand.Body) {
		panic(fmt.Sprintf("operand %d of %v has unopened body %s", index, op, operand.Body))
	}
	// Check binding shape
	if len(operand.Vars) != len(valence.Bound) {
		return bindingShapeMismatch(op, index, len(valence.Bound), len(operand.Vars))
	}
	//
	for j, v := range operand.Vars {
		if v.sort != valence.Bound[j] {
			return boundSortMismatch(op, index, j, valence.Bound[j], v.sort)
		}
		// Check variable not bound twice
		for k := 0; k < j; k++ {
			if operand.Vars[k].id == v.id {
				return duplicateBinder(op, index, j, v)
			}
		}
	}
	// Check body sort
	if sort := SortOf[O, S](nil, operand.Body); sort != valence.Sort {
		return operandSortMismatch(op, index, valence.Sort, sort)
	}
	//
	return nil
}
