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
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func Test_RoundTrip_01(t *testing.T) {
	// λx. x
	supply := NewSupply()
	x := FreshNamed(supply, sExp, "x")
	id := mkOp(t, opLam, Scope(mkVar(x), x))
	// Check internal representation
	body := id.AsOperation().Operand(0).Body().AsBound()
	require.NotNil(t, body)
	require.Equal(t, uint(0), body.Depth())
	require.Equal(t, uint(0), body.Slot())
	//
	check_RoundTrip(t, supply, id)
}

func Test_RoundTrip_02(t *testing.T) {
	// app (λx. x) (λy. y)
	supply := NewSupply()
	x := FreshNamed(supply, sExp, "x")
	y := FreshNamed(supply, sExp, "y")
	lx := mkOp(t, opLam, Scope(mkVar(x), x))
	ly := mkOp(t, opLam, Scope(mkVar(y), y))
	app := mkOp(t, opApp, Closed[testSort](lx), Closed[testSort](ly))
	//
	check_RoundTrip(t, supply, app)
}

func Test_RoundTrip_03(t *testing.T) {
	// let2 a b (x y. app (λz. app z x) y)
	supply := NewSupply()
	a := FreshNamed(supply, sExp, "a")
	b := FreshNamed(supply, sExp, "b")
	x := FreshNamed(supply, sExp, "x")
	y := FreshNamed(supply, sExp, "y")
	z := FreshNamed(supply, sExp, "z")
	inner := mkOp(t, opLam, Scope(mkOp(t, opApp, Closed[testSort](mkVar(z)), Closed[testSort](mkVar(x))), z))
	body := mkOp(t, opApp, Closed[testSort](inner), Closed[testSort](mkVar(y)))
	let := mkOp(t, opLet2, Closed[testSort](mkVar(a)), Closed[testSort](mkVar(b)), Scope(body, x, y))
	// Depths count scopes, not bound variables.  Here z is one scope out from
	// its use, whilst x is three scopes out.
	require.Equal(t, "let2(a#1; b#2; [exp,exp].app(lam([exp].app(^1.0; ^3.0)); ^1.1))", let.String())
	//
	check_RoundTrip(t, supply, let)
	check_DeepRoundTrip(t, supply, let)
}

func Test_RoundTrip_04(t *testing.T) {
	// ∀α. ∀β. α → β
	supply := NewSupply()
	alpha := FreshNamed(supply, sTyp, "α")
	beta := FreshNamed(supply, sTyp, "β")
	arrow := mkOp(t, opArrow, Closed[testSort](mkVar(alpha)), Closed[testSort](mkVar(beta)))
	all := mkOp(t, opAll, Scope(mkOp(t, opAll, Scope(arrow, beta)), alpha))
	//
	require.Equal(t, "all([typ].all([typ].arrow(^2.0; ^1.0)))", all.String())
	check_RoundTrip(t, supply, all)
	check_DeepRoundTrip(t, supply, all)
}

func Test_Unbind_01(t *testing.T) {
	supply := NewSupply()
	x := FreshNamed(supply, sExp, "x")
	y := FreshNamed(supply, sExp, "y")
	z := FreshNamed(supply, sExp, "z")
	inner := mkOp(t, opLam, Scope(mkOp(t, opApp, Closed[testSort](mkVar(z)), Closed[testSort](mkVar(x))), z))
	body := mkOp(t, opApp, Closed[testSort](inner), Closed[testSort](mkVar(y)))
	abs := Bind(body, x, y)
	// Open the scope again
	vars, opened := Unbind(abs, supply)
	require.Len(t, vars, 2)
	require.Equal(t, "x#4", vars[0].String())
	require.Equal(t, "y#5", vars[1].String())
	require.Equal(t, "app(lam([exp].app(^1.0; x#4)); y#5)", opened.String())
	// Rebinding gives back the original scope
	requireEqualTree(t, abs.Body(), Bind(opened, vars...).Body())
}

func Test_Unbind_02(t *testing.T) {
	// Slot beyond the scope's variables
	abs := Abs[testOp, testSort]{[]testSort{sExp}, nil, &Bound[testOp, testSort]{0, 1}}
	//
	require.Panics(t, func() { Unbind(abs, NewSupply()) })
}

func Test_Bind_01(t *testing.T) {
	// A dangling reference is shifted past the new scope, and shifted back
	// when the scope is opened again.
	supply := NewSupply()
	x := Fresh(supply, sExp)
	dangling := &Bound[testOp, testSort]{1, 0}
	app := newOperation(opApp, []Abs[testOp, testSort]{
		{nil, nil, dangling}, {nil, nil, mkVar(x)}}, sExp)
	abs := Bind[testOp, testSort](app, x)
	//
	require.False(t, IsClosed[testOp, testSort](app))
	require.False(t, IsClosed(abs.Body()))
	require.Equal(t, "app(^2.0; ^1.0)", abs.Body().String())
	require.Equal(t, "app(^1.0; #1)", Instantiate(abs, mkVar(x)).String())
}

func Test_Bind_02(t *testing.T) {
	// Binding variables which do not occur leaves the tree shared.
	supply := NewSupply()
	x := Fresh(supply, sExp)
	y := Fresh(supply, sExp)
	id := mkOp(t, opLam, Scope(mkVar(x), x))
	abs := Bind(id, y)
	//
	require.True(t, abs.Body() == id)
	require.Equal(t, []testSort{sExp}, abs.Sorts())
}

func Test_Instantiate_01(t *testing.T) {
	supply := NewSupply()
	x := Fresh(supply, sExp)
	y := Fresh(supply, sExp)
	abs := Bind(mkOp(t, opApp, Closed[testSort](mkVar(x)), Closed[testSort](mkVar(y))), x, y)
	//
	require.Panics(t, func() { Instantiate(abs, mkVar(x)) })
	requireEqualTree(t, mkOp(t, opApp, Closed[testSort](mkVar(y)), Closed[testSort](mkVar(x))),
		Instantiate(abs, mkVar(y), mkVar(x)))
}

func Test_Build_01(t *testing.T) {
	// λ. x (no bound variables)
	supply := NewSupply()
	x := Fresh(supply, sExp)
	_, err := Build[testOp, testSort](testSig, mkView(opLam, Closed[testSort](mkVar(x))))
	//
	require.ErrorIs(t, err, ErrBindingShape)
	require.NotErrorIs(t, err, ErrSortMismatch)
}

func Test_Build_02(t *testing.T) {
	// app with one operand
	supply := NewSupply()
	x := Fresh(supply, sExp)
	_, err := Build[testOp, testSort](testSig, mkView(opApp, Closed[testSort](mkVar(x))))
	//
	require.ErrorIs(t, err, ErrArityMismatch)
	require.Equal(t, "arity mismatch for app (expected 2 operands, found 1 operand)", err.Error())
}

func Test_Build_03(t *testing.T) {
	// ann x y, where y should be a type
	supply := NewSupply()
	x := Fresh(supply, sExp)
	y := Fresh(supply, sExp)
	_, err := Build[testOp, testSort](testSig, mkView(opAnn, Closed[testSort](mkVar(x)), Closed[testSort](mkVar(y))))
	//
	require.ErrorIs(t, err, ErrSortMismatch)
	//
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 1, serr.Operand)
	require.Equal(t, -1, serr.Slot)
	require.Equal(t, "typ", serr.Expected)
	require.Equal(t, "exp", serr.Actual)
}

func Test_Build_04(t *testing.T) {
	// λα. x, where α is a type variable
	supply := NewSupply()
	alpha := Fresh(supply, sTyp)
	x := Fresh(supply, sExp)
	_, err := Build[testOp, testSort](testSig, mkView(opLam, Scope(mkVar(x), alpha)))
	//
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, SortMismatch, serr.Kind)
	require.Equal(t, 0, serr.Slot)
}

func Test_Build_05(t *testing.T) {
	// ∀α. x, where the body should be a type
	supply := NewSupply()
	alpha := Fresh(supply, sTyp)
	x := Fresh(supply, sExp)
	_, err := Build[testOp, testSort](testSig, mkView(opAll, Scope(mkVar(x), alpha)))
	//
	require.ErrorIs(t, err, ErrSortMismatch)
	// whilst ∀α. α is fine
	_, err = Build[testOp, testSort](testSig, mkView(opAll, Scope(mkVar(alpha), alpha)))
	require.NoError(t, err)
}

func Test_Build_06(t *testing.T) {
	// let2 binding the same variable twice
	supply := NewSupply()
	x := Fresh(supply, sExp)
	_, err := Build[testOp, testSort](testSig,
		mkView(opLet2, Closed[testSort](mkVar(x)), Closed[testSort](mkVar(x)), Scope(mkVar(x), x, x)))
	//
	require.ErrorIs(t, err, ErrBindingShape)
}

func Test_Build_07(t *testing.T) {
	// unit takes no operands
	unit := mkOp(t, opUnit)
	//
	require.Equal(t, sTyp, SortOf[testOp](nil, unit))
	require.Equal(t, "unit()", unit.String())
}

func Test_Build_08(t *testing.T) {
	// The raw body of λy. app x y refers to x, hence is not closed and cannot
	// be used as an operand.
	supply := NewSupply()
	x := FreshNamed(supply, sExp, "x")
	y := FreshNamed(supply, sExp, "y")
	z := FreshNamed(supply, sExp, "z")
	inner := mkOp(t, opLam, Scope(mkOp(t, opApp, Closed[testSort](mkVar(x)), Closed[testSort](mkVar(y))), y))
	konst := mkOp(t, opLam, Scope(inner, x))
	raw := konst.AsOperation().Operand(0).Body()
	//
	require.True(t, IsClosed(konst))
	require.False(t, IsClosed(raw))
	require.Panics(t, func() {
		_, _ = Build[testOp, testSort](testSig, mkView(opApp, Closed[testSort](raw), Closed[testSort](mkVar(z))))
	})
	// Opening the scope properly gives a closed body
	view := ViewOf(konst, supply).AsOp()
	require.True(t, IsClosed(view.Operands[0].Body))
	mkOp(t, opApp, Closed[testSort](view.Operands[0].Body), Closed[testSort](mkVar(z)))
}

func Test_Validate_01(t *testing.T) {
	supply := NewSupply()
	x := Fresh(supply, sExp)
	y := Fresh(supply, sExp)
	tree := mkOp(t, opLet2, Closed[testSort](mkOp(t, opLam, Scope(mkVar(x), x))), Closed[testSort](mkVar(y)),
		Scope(mkOp(t, opApp, Closed[testSort](mkVar(y)), Closed[testSort](mkVar(x))), x, y))
	//
	require.NoError(t, Validate[testOp, testSort](testSig, tree))
	// A signature in which lambdas bind types rejects the same tree
	other := SignatureFunc[testOp, testSort](func(op testOp) Arity[testSort] {
		if op == opLam {
			return NewArity(sExp, NewValence(sExp, sTyp))
		}
		//
		return testSig(op)
	})
	require.ErrorIs(t, Validate[testOp, testSort](other, tree), ErrSortMismatch)
}

func Test_SortOf_01(t *testing.T) {
	var ctx *Context[testSort]
	//
	ctx = ctx.Push([]testSort{sExp, sTyp}).Push(nil).Push([]testSort{sTyp})
	require.Equal(t, uint(3), ctx.Depth())
	require.Equal(t, sTyp, SortOf[testOp](ctx, &Bound[testOp, testSort]{0, 0}))
	require.Equal(t, sExp, SortOf[testOp](ctx, &Bound[testOp, testSort]{2, 0}))
	require.Equal(t, sTyp, SortOf[testOp](ctx, &Bound[testOp, testSort]{2, 1}))
	// Out of range
	require.Panics(t, func() { SortOf[testOp](ctx, &Bound[testOp, testSort]{1, 0}) })
	require.Panics(t, func() { SortOf[testOp](ctx, &Bound[testOp, testSort]{3, 0}) })
	require.Panics(t, func() { SortOf[testOp, testSort](nil, &Bound[testOp, testSort]{0, 0}) })
}

// ===================================================================
// Test Helpers
// ===================================================================

type testOp uint8

const (
	opLam testOp = iota
	opApp
	opLet2
	opAll
	opArrow
	opUnit
	opAnn
)

func (o testOp) String() string {
	return [...]string{"lam", "app", "let2", "all", "arrow", "unit", "ann"}[o]
}

type testSort uint8

const (
	sExp testSort = iota
	sTyp
)

func (s testSort) String() string {
	if s == sExp {
		return "exp"
	}
	//
	return "typ"
}

type testTree = Abt[testOp, testSort]

// A small two-sorted language of expressions and types.
var testSig = SignatureFunc[testOp, testSort](func(op testOp) Arity[testSort] {
	switch op {
	case opLam:
		return NewArity(sExp, NewValence(sExp, sExp))
	case opApp:
		return NewArity(sExp, NewValence(sExp), NewValence(sExp))
	case opLet2:
		return NewArity(sExp, NewValence(sExp), NewValence(sExp), NewValence(sExp, sExp, sExp))
	case opAll:
		return NewArity(sTyp, NewValence(sTyp, sTyp))
	case opArrow:
		return NewArity(sTyp, NewValence(sTyp), NewValence(sTyp))
	case opUnit:
		return NewArity(sTyp)
	case opAnn:
		return NewArity(sExp, NewValence(sExp), NewValence(sTyp))
	}
	//
	panic("unreachable")
})

func mkVar(x Variable[testSort]) testTree {
	return NewFree[testOp](x)
}

func mkView(op testOp, operands ...AbsView[testSort, testTree]) View[testOp, testSort, testTree] {
	return &Op[testOp, testSort, testTree]{op, operands}
}

func mkOp(t *testing.T, op testOp, operands ...AbsView[testSort, testTree]) testTree {
	t.Helper()
	//
	tree, err := Build[testOp, testSort](testSig, mkView(op, operands...))
	require.NoError(t, err)
	//
	return tree
}

// Check view then build gives back the same tree.
func check_RoundTrip(t *testing.T, supply Supply, tree testTree) {
	t.Helper()
	//
	back, err := Build[testOp, testSort](testSig, ViewOf(tree, supply))
	require.NoError(t, err)
	requireEqualTree(t, tree, back)
}

// Check unrolling every layer of a tree, and then rebuilding it, gives back the
// same tree.
func check_DeepRoundTrip(t *testing.T, supply Supply, tree testTree) {
	t.Helper()
	//
	requireEqualTree(t, tree, rebuildDeep(t, supply, tree))
}

func rebuildDeep(t *testing.T, supply Supply, tree testTree) testTree {
	view := MapView(ViewOf(tree, supply), func(body Abt[testOp, testSort]) Abt[testOp, testSort] {
		return rebuildDeep(t, supply, body)
	})
	//
	back, err := Build[testOp, testSort](testSig, view)
	require.NoError(t, err)
	//
	return back
}

func requireEqualTree(t *testing.T, expected testTree, actual testTree) {
	t.Helper()
	//
	if !Equal(expected, actual) {
		t.Fatalf("trees differ: expected %s, actual %s\n%s", expected, actual,
			strings.Join(pretty.Diff(expected, actual), "\n"))
	}
}
