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
	"github.com/consensys/go-abt/pkg/util/source/sexp"
)

// Print converts a given term into an S-Expression which can be read back to
// obtain an equivalent term.  Each scope is opened one layer at a time using
// fresh variables from the supply, which are then named by their display
// names.  A numeric suffix is added to any name which would otherwise clash
// with a different variable in scope (including the free variables of the
// term).  Applications are printed using the sugared form "(f a b ...)".
func Print(supply abt.Supply, term Term) sexp.SExp {
	p := printer{supply, make(map[uint64]string), make(map[string]uint)}
	// Reserve keywords
	for _, kw := range keywords {
		p.used[kw]++
	}
	// Free variables are in scope throughout.
	for _, v := range abt.FreeVars(term) {
		p.declare(v)
	}
	//
	return p.print(term)
}

// Formatter returns a formatter suited to printed terms, which aims to fit
// within the given width.
func Formatter(width uint) *sexp.Formatter {
	return sexp.NewFormatter(width).Inline("lam", 1).Inline("let", 1).Inline("let2", 2).Inline("def", 1)
}

type printer struct {
	supply abt.Supply
	// Display names given to variables currently in scope.
	names map[uint64]string
	// Number of variables in scope using each name.
	used map[string]uint
}

func (p *printer) print(term Term) sexp.SExp {
	switch view := abt.ViewOf(term, p.supply); {
	case view.AsVar() != nil:
		return sexp.NewSymbol(p.nameOf(view.AsVar().Variable))
	default:
		return p.printOp(view.AsOp())
	}
}

func (p *printer) printOp(op *abt.Op[Operator, Sort, Term]) sexp.SExp {
	switch op.Operator {
	case LAM:
		body := op.Operands[0]
		x := p.declare(body.Vars[0])
		defer p.undeclare(body.Vars...)
		//
		return list(LAM.String(), x, p.print(body.Body))
	case APP:
		return p.printApp(op)
	case LET:
		value := p.print(op.Operands[0].Body)
		body := op.Operands[1]
		x := p.declare(body.Vars[0])
		defer p.undeclare(body.Vars...)
		//
		return list(LET.String(), x, value, p.print(body.Body))
	case LET2:
		v1 := p.print(op.Operands[0].Body)
		v2 := p.print(op.Operands[1].Body)
		body := op.Operands[2]
		x := p.declare(body.Vars[0])
		y := p.declare(body.Vars[1])
		defer p.undeclare(body.Vars...)
		//
		return list(LET2.String(), x, y, v1, v2, p.print(body.Body))
	default:
		panic(fmt.Sprintf("unknown operator \"%s\"", op.Operator))
	}
}

// Print a (left-nested) application in its flattened form.
func (p *printer) printApp(op *abt.Op[Operator, Sort, Term]) sexp.SExp {
	var (
		args []Term
		head Term
	)
	// Walk down the spine
	for op != nil && op.Operator == APP {
		args = append(args, op.Operands[1].Body)
		head = op.Operands[0].Body
		op = abt.ViewOf(head, p.supply).AsOp()
	}
	//
	elements := []sexp.SExp{p.print(head)}
	//
	for i := len(args) - 1; i >= 0; i-- {
		elements = append(elements, p.print(args[i]))
	}
	//
	return sexp.NewList(elements...)
}

// Declare a variable as being in scope, and return its display name as a
// symbol.
func (p *printer) declare(v Var) sexp.SExp {
	var (
		base = v.Name()
		name = base
	)
	//
	if base == "" {
		base = "x"
		name = fmt.Sprintf("x%d", v.Id())
	}
	//
	for i := 1; p.used[name] > 0; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	//
	p.names[v.Id()] = name
	p.used[name]++
	//
	return sexp.NewSymbol(name)
}

// Remove one or more variables from scope.
func (p *printer) undeclare(vars ...Var) {
	for _, v := range vars {
		name := p.names[v.Id()]
		delete(p.names, v.Id())
		p.used[name]--
	}
}

func (p *printer) nameOf(v Var) string {
	if name, ok := p.names[v.Id()]; ok {
		return name
	}
	// Should be unreachable, since free variables are declared up front.
	panic(fmt.Sprintf("undeclared variable %s", v))
}

func list(head string, elements ...sexp.SExp) *sexp.List {
	return sexp.NewList(append([]sexp.SExp{sexp.NewSymbol(head)}, elements...)...)
}
