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

import "fmt"

// Span represents a contiguous region of a source file, identified by the index
// of its first character and one past its last character.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a new span, checking that it is well-formed.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}
	//
	return Span{start, end}
}

// Start returns the index of the first character of this span.
func (p Span) Start() int {
	return p.start
}

// End returns one past the index of the last character of this span.
func (p Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span.
func (p Span) Length() int {
	return p.end - p.start
}

// Map associates nodes (e.g. of a parse tree) with the spans of text in a
// given source file from which they originated.  This is used for reporting
// errors against the original text.
type Map[T comparable] struct {
	mapping map[T]Span
	srcfile *File
}

// NewSourceMap constructs an initially empty source map for a given file.
func NewSourceMap[T comparable](srcfile *File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Source returns the source file to which this map refers.
func (p *Map[T]) Source() *File {
	return p.srcfile
}

// Put registers the span of a given node.  This panics if the node is already
// registered.
func (p *Map[T]) Put(node T, span Span) {
	if p.Has(node) {
		panic(fmt.Sprintf("source map key already exists: %v", node))
	}
	//
	p.mapping[node] = span
}

// Has checks whether a given node is registered with this map.
func (p *Map[T]) Has(node T) bool {
	_, ok := p.mapping[node]
	return ok
}

// Get returns the span of a given node.  This panics if the node is not
// registered.
func (p *Map[T]) Get(node T) Span {
	if s, ok := p.mapping[node]; ok {
		return s
	}
	//
	panic(fmt.Sprintf("invalid source map key: %v", node))
}

// SyntaxError constructs a syntax error for a given node.
func (p *Map[T]) SyntaxError(node T, msg string) *SyntaxError {
	return p.srcfile.SyntaxError(p.Get(node), msg)
}
