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
package lambda

import (
	"fmt"

	"github.com/consensys/go-abt/pkg/abt"
)

// Operator identifies the constructs of the untyped lambda calculus.
type Operator uint8

const (
	// LAM is lambda abstraction, which binds one variable in its body.
	LAM Operator = iota
	// APP is function application.
	APP
	// LET binds the value of its first operand to one variable in its second.
	LET
	// LET2 binds the values of its first two operands simultaneously to two
	// variables in its third.
	LET2
)

func (o Operator) String() string {
	switch o {
	case LAM:
		return "lam"
	case APP:
		return "app"
	case LET:
		return "let"
	case LET2:
		return "let2"
	default:
		return fmt.Sprintf("op%d", uint8(o))
	}
}

// Sort classifies terms.  Since the calculus is untyped, there is only one.
type Sort uint8

// EXP is the sort of all terms.
const EXP Sort = 0

func (s Sort) String() string {
	return "exp"
}

// Term is a lambda term represented as an abstract binding tree.
type Term = abt.Abt[Operator, Sort]

// Var is a variable of a lambda term.
type Var = abt.Variable[Sort]

// Signature gives the arity of every operator in the calculus.
var Signature abt.Signature[Operator, Sort] = abt.SignatureFunc[Operator, Sort](arityOf)

func arityOf(op Operator) abt.Arity[Sort] {
	switch op {
	case LAM:
		return abt.NewArity(EXP, abt.NewValence(EXP, EXP))
	case APP:
		return abt.NewArity(EXP, abt.NewValence(EXP), abt.NewValence(EXP))
	case LET:
		return abt.NewArity(EXP, abt.NewValence(EXP), abt.NewValence(EXP, EXP))
	case LET2:
		return abt.NewArity(EXP, abt.NewValence(EXP), abt.NewValence(EXP), abt.NewValence(EXP, EXP, EXP))
	default:
		panic(fmt.Sprintf("unknown operator \"%s\"", op))
	}
}

// NewVar constructs a term consisting of just a given variable.
func NewVar(v Var) Term {
	return abt.NewFree[Operator](v)
}

// NewLam constructs the abstraction of a given variable over a body.
func NewLam(x Var, body Term) Term {
	return mustBuild(LAM, abt.Scope(body, x))
}

// NewApp constructs the application of a function to an argument.
func NewApp(fn Term, arg Term) Term {
	return mustBuild(APP, abt.Closed[Sort](fn), abt.Closed[Sort](arg))
}

// NewApps constructs the left-nested application of a function to zero or
// more arguments.
func NewApps(fn Term, args ...Term) Term {
	for _, arg := range args {
		fn = NewApp(fn, arg)
	}
	//
	return fn
}

// NewLet constructs a term binding a given variable to the value of one term
// within another.
func NewLet(x Var, value Term, body Term) Term {
	return mustBuild(LET, abt.Closed[Sort](value), abt.Scope(body, x))
}

// NewLet2 constructs a term binding two variables simultaneously.
func NewLet2(x Var, y Var, v1 Term, v2 Term, body Term) Term {
	return mustBuild(LET2, abt.Closed[Sort](v1), abt.Closed[Sort](v2), abt.Scope(body, x, y))
}

func build(op Operator, operands ...abt.AbsView[Sort, Term]) (Term, error) {
	return abt.Build[Operator, Sort](Signature, &abt.Op[Operator, Sort, Term]{Operator: op, Operands: operands})
}

func mustBuild(op Operator, operands ...abt.AbsView[Sort, Term]) Term {
	return abt.MustBuild[Operator, Sort](Signature, &abt.Op[Operator, Sort, Term]{Operator: op, Operands: operands})
}
