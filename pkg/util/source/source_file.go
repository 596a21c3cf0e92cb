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
	"fmt"
	"strings"
)

// File represents a named piece of source text, typically read from disk.
type File struct {
	// Name of this file.
	filename string
	// Contents of this file, as runes for easier indexing.
	contents []rune
}

// NewFile constructs a new source file from a given byte array.
func NewFile(filename string, bytes []byte) *File {
	return &File{filename, []rune(string(bytes))}
}

// Filename returns the name associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// SyntaxError constructs a syntax error over a given span of this file.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// EnclosingLine determines the line which encloses the start of a given span.
// If the span starts beyond the end of the file, then the last line is
// returned.
func (s *File) EnclosingLine(span Span) Line {
	var (
		num   = 1
		start = 0
	)
	//
	for i := 0; i < len(s.contents) && i < span.start; i++ {
		if s.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	end := start
	for end < len(s.contents) && s.contents[end] != '\n' {
		end++
	}
	//
	return Line{s.contents, Span{start, end}, num}
}

// Line identifies a single line within a source file.
type Line struct {
	text []rune
	// Span of this line within the file.
	span Span
	// Line number (counting from 1).
	number int
}

// Number returns the line number of this line, counting from 1.
func (p Line) Number() int {
	return p.number
}

// Start returns the offset of this line within its file.
func (p Line) Start() int {
	return p.span.start
}

func (p Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// SyntaxError is an error associated with a given span of some source file.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// File returns the source file in which this error arose.
func (p *SyntaxError) File() *File {
	return p.srcfile
}

// Span returns the span of the source file to which this error relates.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message associated with this error.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	line := p.srcfile.EnclosingLine(p.span)
	//
	return fmt.Sprintf("%s:%d: %s", p.srcfile.filename, line.Number(), p.msg)
}

// Highlight renders this error along with the line on which it occurred, and
// markers underneath the offending text.  Only the first line of a span
// covering multiple lines is highlighted.
func (p *SyntaxError) Highlight() string {
	var (
		builder strings.Builder
		line    = p.srcfile.EnclosingLine(p.span)
		offset  = max(0, p.span.start-line.Start())
		width   = max(1, min(p.span.Length(), len(line.String())-offset))
	)
	//
	builder.WriteString(p.Error())
	builder.WriteString("\n")
	builder.WriteString(line.String())
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat(" ", offset))
	builder.WriteString(strings.Repeat("^", width))
	//
	return builder.String()
}
