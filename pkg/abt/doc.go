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

// Package abt provides abstract binding trees: syntax trees whose operators may
// bind variables within their operands.  Trees use a locally nameless
// representation, where bound variables are (depth, slot) references to their
// enclosing scopes and free variables are unique identities drawn from a
// Supply.  Hence, alpha-equivalent trees are structurally identical, and
// substitution never captures.  Trees are constructed from one-layer views via
// Build, which checks them against a Signature, and are deconstructed into
// views via ViewOf, which opens each scope using fresh variables.
package abt
