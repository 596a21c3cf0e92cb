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
package sexp

import (
	"strings"
	"unicode/utf8"
)

// Formatter lays out S-Expressions so that, where possible, no line exceeds a
// given width.  Lists which do not fit are broken with their head (and any
// inline elements requested for that head) on the first line, and the
// remaining elements each on their own indented line.
type Formatter struct {
	// Maximum desired width
	maxWidth uint
	// Number of spaces per indentation level
	indent uint
	// Number of elements following the head which stay on the head line.
	inline map[string]uint
}

// NewFormatter constructs a new formatter which aims to fit its output within a
// given width.
func NewFormatter(width uint) *Formatter {
	return &Formatter{width, 2, make(map[string]uint)}
}

// Inline requests that lists with the given head keep n elements following the
// head on the same line as the head, when broken over several lines.  For
// example, "(lam x body)" with n=1 is broken as:
//
//	(lam x
//	  body)
func (p *Formatter) Inline(head string, n uint) *Formatter {
	p.inline[head] = n
	return p
}

// Format a given S-Expression into a string which does not end in a newline.
func (p *Formatter) Format(sexp SExp) string {
	var builder strings.Builder
	//
	p.format(sexp, 0, &builder)
	//
	return builder.String()
}

func (p *Formatter) format(sexp SExp, column uint, builder *strings.Builder) {
	var flat = sexp.String()
	// Check whether it fits as is
	if column+uint(len(flat)) <= p.maxWidth {
		builder.WriteString(flat)
		return
	}
	//
	switch sexp := sexp.(type) {
	case *Symbol:
		builder.WriteString(flat)
	case *List:
		p.formatList(sexp, column, builder)
	default:
		panic("unreachable")
	}
}

func (p *Formatter) formatList(list *List, column uint, builder *strings.Builder) {
	var (
		n      = uint(list.Len())
		indent = column + p.indent
		// Always keep the head on the first line.
		first = min(n, 1+p.inline[list.Head()])
	)
	//
	builder.WriteString("(")
	//
	for i := uint(0); i < first; i++ {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		p.format(list.Get(int(i)), currentColumn(builder), builder)
	}
	//
	for i := first; i < n; i++ {
		builder.WriteString("\n")
		builder.WriteString(strings.Repeat(" ", int(indent)))
		p.format(list.Get(int(i)), indent, builder)
	}
	//
	builder.WriteString(")")
}

// Determine the column at which the next character written will appear.
func currentColumn(builder *strings.Builder) uint {
	text := builder.String()
	//
	return uint(utf8.RuneCountInString(text[strings.LastIndexByte(text, '\n')+1:]))
}
