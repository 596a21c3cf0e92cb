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

// Valence describes the shape expected of a single operand of an operator.
// That is, the sorts of the variables bound by the operand (in order) and the
// sort of its body.
type Valence[S comparable] struct {
	// Bound holds the sorts of the variables bound in this operand.
	Bound []S
	// Sort of the operand's body.
	Sort S
}

// NewValence constructs a valence binding zero or more variables of the given
// sorts over a body of the given sort.
func NewValence[S comparable](sort S, bound ...S) Valence[S] {
	return Valence[S]{bound, sort}
}

func (p Valence[S]) String() string {
	if len(p.Bound) == 0 {
		return fmt.Sprintf("%v", p.Sort)
	}
	//
	return fmt.Sprintf("%s.%v", sortsString(p.Bound), p.Sort)
}

// Arity is the signature entry for a single operator, consisting of one valence
// for each operand (in order) and the sort of the application as a whole.
type Arity[S comparable] struct {
	// Operands gives the expected valence of each operand.
	Operands []Valence[S]
	// Sort of an application of the operator.
	Sort S
}

// NewArity constructs an arity with the given result sort and operands.
func NewArity[S comparable](sort S, operands ...Valence[S]) Arity[S] {
	return Arity[S]{operands, sort}
}

func (p Arity[S]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, v := range p.Operands {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(v.String())
	}
	//
	builder.WriteString(fmt.Sprintf(") -> %v", p.Sort))
	//
	return builder.String()
}

// Signature declares the binding structure of a language.  Every operator
// admitted by the operator type O must have an arity.  This is the only place
// where a language tells this package anything about its operators.
type Signature[O comparable, S comparable] interface {
	// Arity returns the arity of a given operator.
	Arity(O) Arity[S]
}

// SignatureFunc adapts an ordinary function into a Signature.
type SignatureFunc[O comparable, S comparable] func(O) Arity[S]

// Arity implementation for the Signature interface.
func (f SignatureFunc[O, S]) Arity(op O) Arity[S] {
	return f(op)
}

func sortsString[S comparable](sorts []S) string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, s := range sorts {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("%v", s))
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}
