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
package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SourceMap_01(t *testing.T) {
	var (
		file   = NewFile("test.lisp", []byte("(f x)\n(g y)"))
		srcmap = NewSourceMap[string](file)
	)
	//
	require.False(t, srcmap.Has("g"))
	srcmap.Put("g", NewSpan(7, 8))
	require.True(t, srcmap.Has("g"))
	require.Equal(t, NewSpan(7, 8), srcmap.Get("g"))
	// Nodes cannot be registered twice
	require.Panics(t, func() { srcmap.Put("g", NewSpan(0, 1)) })
	require.Panics(t, func() { srcmap.Get("f") })
	//
	err := srcmap.SyntaxError("g", "unknown function")
	require.Equal(t, "test.lisp:2: unknown function", err.Error())
	require.Equal(t, "test.lisp:2: unknown function\n(g y)\n ^", err.Highlight())
}
