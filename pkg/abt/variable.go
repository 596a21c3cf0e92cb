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

	"go.uber.org/atomic"
)

// Variable represents a sort-tagged variable identity.  Variables can only be
// created through a Supply, and two variables are considered the same variable
// exactly when they share the same identity.  In particular, neither the sort
// nor the display name take part in equality.
type Variable[S comparable] struct {
	// Identity issued by the supply (never 0).
	id uint64
	// Sort of this variable.
	sort S
	// Display name (if any).  This is purely a hint for printing.
	name string
}

// Fresh allocates a new variable of the given sort from a given supply.
func Fresh[S comparable](supply Supply, sort S) Variable[S] {
	return Variable[S]{supply.Next(), sort, ""}
}

// FreshNamed allocates a new variable of the given sort from a given supply,
// whilst attaching a display name to it.  Observe that the name does not need
// to be unique.
func FreshNamed[S comparable](supply Supply, sort S, name string) Variable[S] {
	return Variable[S]{supply.Next(), sort, name}
}

// Id returns the unique identity of this variable.
func (p Variable[S]) Id() uint64 {
	return p.id
}

// Sort returns the sort with which this variable was created.
func (p Variable[S]) Sort() S {
	return p.sort
}

// Name returns the display name of this variable, or the empty string if it has
// none.
func (p Variable[S]) Name() string {
	return p.name
}

// Equals checks whether two variables are the same variable.
func (p Variable[S]) Equals(other Variable[S]) bool {
	return p.id == other.id
}

func (p Variable[S]) String() string {
	if p.name == "" {
		return fmt.Sprintf("#%d", p.id)
	}
	//
	return fmt.Sprintf("%s#%d", p.name, p.id)
}

// ============================================================================
// Supply
// ============================================================================

// Supply is a source of variable identities.  A supply never issues the same
// identity twice, and identities are strictly increasing.  The first identity
// issued is 1.
type Supply interface {
	// Next returns the next unused identity.
	Next() uint64
}

// LocalSupply is a supply intended to be owned by a single analysis pass.  It
// must not be shared between goroutines without external synchronisation.
type LocalSupply struct {
	next uint64
}

// NewSupply constructs a fresh supply for use within a single goroutine.
func NewSupply() *LocalSupply {
	return &LocalSupply{0}
}

// Next implementation for the Supply interface.
func (p *LocalSupply) Next() uint64 {
	p.next++
	//
	return p.next
}

// SharedSupply is a supply which can be safely shared between goroutines.
type SharedSupply struct {
	next *atomic.Uint64
}

// NewSharedSupply constructs a fresh supply which can be used concurrently.
func NewSharedSupply() *SharedSupply {
	return &SharedSupply{atomic.NewUint64(0)}
}

// Next implementation for the Supply interface.
func (p *SharedSupply) Next() uint64 {
	return p.next.Inc()
}
