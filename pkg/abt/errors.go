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

// ErrorKind classifies the ways in which a tree can be malformed with respect
// to a signature.
type ErrorKind uint8

const (
	// ArityMismatch indicates an operator was given the wrong number of
	// operands.
	ArityMismatch ErrorKind = iota + 1
	// BindingShapeMismatch indicates an operand bound the wrong number of
	// variables (or bound the same variable twice).
	BindingShapeMismatch
	// SortMismatch indicates either a bound variable or an operand body had the
	// wrong sort.
	SortMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case ArityMismatch:
		return "arity mismatch"
	case BindingShapeMismatch:
		return "binding shape mismatch"
	case SortMismatch:
		return "sort mismatch"
	default:
		return "unknown error"
	}
}

var (
	// ErrArityMismatch matches (via errors.Is) any structural error of kind
	// ArityMismatch.
	ErrArityMismatch = &StructuralError{Kind: ArityMismatch, Operand: -1, Slot: -1}
	// ErrBindingShape matches (via errors.Is) any structural error of kind
	// BindingShapeMismatch.
	ErrBindingShape = &StructuralError{Kind: BindingShapeMismatch, Operand: -1, Slot: -1}
	// ErrSortMismatch matches (via errors.Is) any structural error of kind
	// SortMismatch.
	ErrSortMismatch = &StructuralError{Kind: SortMismatch, Operand: -1, Slot: -1}
)

// StructuralError reports that a view cannot be turned into a tree because it
// is malformed with respect to the signature being used.
type StructuralError struct {
	// Kind of error.
	Kind ErrorKind
	// Operator being applied.
	Operator any
	// Operand where the error arose, or -1 if the error concerns the operator
	// application as a whole.
	Operand int
	// Bound variable where the error arose, or -1 if the error does not
	// concern a specific bound variable.
	Slot int
	// Expected and Actual describe the mismatch itself.
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	switch {
	case e.Operator == nil:
		return e.Kind.String()
	case e.Slot >= 0:
		return fmt.Sprintf("%s for variable %d of operand %d of %v (expected %s, found %s)", e.Kind, e.Slot,
			e.Operand, e.Operator, e.Expected, e.Actual)
	case e.Operand >= 0:
		return fmt.Sprintf("%s for operand %d of %v (expected %s, found %s)", e.Kind, e.Operand, e.Operator,
			e.Expected, e.Actual)
	default:
		return fmt.Sprintf("%s for %v (expected %s, found %s)", e.Kind, e.Operator, e.Expected, e.Actual)
	}
}

// Is allows structural errors to be matched by kind using errors.Is.
func (e *StructuralError) Is(target error) bool {
	t, ok := target.(*StructuralError)
	//
	return ok && t.Kind == e.Kind
}

func arityMismatch(op any, expected int, actual int) *StructuralError {
	return &StructuralError{ArityMismatch, op, -1, -1, plural(expected, "operand"), plural(actual, "operand")}
}

func bindingShapeMismatch(op any, operand int, expected int, actual int) *StructuralError {
	return &StructuralError{BindingShapeMismatch, op, operand, -1, plural(expected, "bound variable"),
		plural(actual, "bound variable")}
}

func duplicateBinder(op any, operand int, slot int, v any) *StructuralError {
	return &StructuralError{BindingShapeMismatch, op, operand, slot, "distinct variables",
		fmt.Sprintf("%v twice", v)}
}

func boundSortMismatch(op any, operand int, slot int, expected any, actual any) *StructuralError {
	return &StructuralError{SortMismatch, op, operand, slot, fmt.Sprint(expected), fmt.Sprint(actual)}
}

func operandSortMismatch(op any, operand int, expected any, actual any) *StructuralError {
	return &StructuralError{SortMismatch, op, operand, -1, fmt.Sprint(expected), fmt.Sprint(actual)}
}

func resultSortMismatch(op any, expected any, actual any) *StructuralError {
	return &StructuralError{SortMismatch, op, -1, -1, fmt.Sprint(expected), fmt.Sprint(actual)}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	//
	return fmt.Sprintf("%d %ss", n, noun)
}
