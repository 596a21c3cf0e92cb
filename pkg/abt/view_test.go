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
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_View_01(t *testing.T) {
	supply := NewSupply()
	x := Fresh(supply, sExp)
	view := ViewOf(mkVar(x), supply)
	//
	require.Nil(t, view.AsOp())
	require.NotNil(t, view.AsVar())
	require.True(t, view.AsVar().Variable.Equals(x))
}

func Test_View_02(t *testing.T) {
	// Bound references never reach the top of a view
	var dangling testTree = &Bound[testOp, testSort]{0, 0}
	//
	require.Panics(t, func() { ViewOf(dangling, NewSupply()) })
	// Nor can they escape an operation being viewed
	supply := NewSupply()
	x := Fresh(supply, sExp)
	konst := mkOp(t, opLam, Scope(mkOp(t, opLam, Scope(mkVar(x), Fresh(supply, sExp))), x))
	//
	require.Panics(t, func() { ViewOf(konst.AsOperation().Operand(0).Body(), supply) })
}

func Test_View_03(t *testing.T) {
	// Each view opens scopes with fresh variables
	supply := NewSupply()
	x := FreshNamed(supply, sExp, "x")
	id := mkOp(t, opLam, Scope(mkVar(x), x))
	v1 := ViewOf(id, supply).AsOp()
	v2 := ViewOf(id, supply).AsOp()
	//
	require.Equal(t, opLam, v1.Operator)
	require.Len(t, v1.Operands, 1)
	require.False(t, v1.Operands[0].Vars[0].Equals(v2.Operands[0].Vars[0]))
	require.False(t, v1.Operands[0].Vars[0].Equals(x))
	// Display names are preserved
	require.Equal(t, "x", v1.Operands[0].Vars[0].Name())
	// Bodies refer to their own variables
	require.True(t, v1.Operands[0].Body.AsFree().Variable().Equals(v1.Operands[0].Vars[0]))
	require.True(t, v2.Operands[0].Body.AsFree().Variable().Equals(v2.Operands[0].Vars[0]))
}

func Test_View_04(t *testing.T) {
	// Closed operands bind nothing
	supply := NewSupply()
	x := Fresh(supply, sExp)
	y := Fresh(supply, sExp)
	app := mkOp(t, opApp, Closed[testSort](mkVar(x)), Closed[testSort](mkVar(y)))
	view := ViewOf(app, supply).AsOp()
	//
	require.Empty(t, view.Operands[0].Vars)
	require.Empty(t, view.Operands[1].Vars)
	requireEqualTree(t, mkVar(x), view.Operands[0].Body)
	requireEqualTree(t, mkVar(y), view.Operands[1].Body)
	// No identities consumed
	require.Equal(t, uint64(3), Fresh(supply, sExp).Id())
}

func Test_MapView_01(t *testing.T) {
	supply := NewSupply()
	x := FreshNamed(supply, sExp, "x")
	y := FreshNamed(supply, sExp, "y")
	let := mkOp(t, opLet2, Closed[testSort](mkVar(x)), Closed[testSort](mkVar(y)),
		Scope(mkOp(t, opApp, Closed[testSort](mkVar(x)), Closed[testSort](mkVar(y))), x, y))
	//
	strs := MapView(ViewOf(let, supply), func(body testTree) string {
		return body.String()
	}).AsOp()
	//
	require.Equal(t, opLet2, strs.Operator)
	require.Equal(t, "x#1", strs.Operands[0].Body)
	require.Equal(t, "y#2", strs.Operands[1].Body)
	require.Equal(t, "app(x#3; y#4)", strs.Operands[2].Body)
	require.Len(t, strs.Operands[2].Vars, 2)
	// Variables are unaffected
	vars := MapView(ViewOf(mkVar(x), supply), func(body testTree) string { return "" }).AsVar()
	require.True(t, vars.Variable.Equals(x))
}
