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
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func Test_Variable_01(t *testing.T) {
	supply := NewSupply()
	x := Fresh(supply, sExp)
	y := Fresh(supply, sExp)
	// Same sort, different identities
	require.False(t, x.Equals(y))
	// Copies are the same variable
	z := x
	require.True(t, z.Equals(x))
	require.Equal(t, sExp, x.Sort())
	require.Equal(t, "", x.Name())
}

func Test_Variable_02(t *testing.T) {
	supply := NewSupply()
	x := FreshNamed(supply, sExp, "x")
	y := FreshNamed(supply, sExp, "x")
	// Names play no part in identity
	require.False(t, x.Equals(y))
	require.Equal(t, "x#1", x.String())
	require.Equal(t, "x#2", y.String())
	require.Equal(t, "#3", Fresh(supply, sTyp).String())
}

func Test_Supply_01(t *testing.T) {
	check_Supply(t, NewSupply(), 1000)
}

func Test_Supply_02(t *testing.T) {
	check_Supply(t, NewSharedSupply(), 1000)
}

func Test_Supply_03(t *testing.T) {
	// Independent supplies do not share state
	s1 := NewSupply()
	s2 := NewSupply()
	//
	require.Equal(t, uint64(1), Fresh(s1, sExp).Id())
	require.Equal(t, uint64(2), Fresh(s1, sExp).Id())
	require.Equal(t, uint64(1), Fresh(s2, sExp).Id())
}

func Test_Supply_04(t *testing.T) {
	var (
		supply = NewSharedSupply()
		group  errgroup.Group
		mutex  sync.Mutex
		seen   = make(map[uint64]bool)
	)
	// Hammer the supply from several goroutines
	for i := 0; i < 8; i++ {
		group.Go(func() error {
			ids := make([]uint64, 1000)
			//
			for j := range ids {
				ids[j] = Fresh(supply, testSort(j%2)).Id()
			}
			//
			mutex.Lock()
			defer mutex.Unlock()
			//
			for _, id := range ids {
				if seen[id] {
					return fmt.Errorf("duplicate identity %d", id)
				}
				//
				seen[id] = true
			}
			//
			return nil
		})
	}
	//
	require.NoError(t, group.Wait())
	require.Len(t, seen, 8000)
}

// ===================================================================
// Test Helpers
// ===================================================================

// Check identities are strictly increasing across sorts.
func check_Supply(t *testing.T, supply Supply, n int) {
	var last uint64
	//
	for i := 0; i < n; i++ {
		v := Fresh(supply, testSort(i%2))
		require.Greater(t, v.Id(), last)
		//
		last = v.Id()
	}
}
