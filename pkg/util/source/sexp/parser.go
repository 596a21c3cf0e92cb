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
	"unicode"

	"github.com/consensys/go-abt/pkg/util/source"
)

// Parse a given source file into exactly one S-expression, or return an error
// if the file is malformed.  A source map is also returned for error reporting.
func Parse(srcfile *source.File) (SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(srcfile)
	// Parse the input
	term, err := p.Parse()
	//
	if err != nil {
		return nil, nil, err
	} else if term == nil {
		return nil, nil, p.error("unexpected end-of-file")
	} else if p.SkipWhiteSpace(); p.index != len(p.text) {
		return nil, nil, p.error("unexpected remainder")
	}
	// Done
	return term, p.SourceMap(), nil
}

// ParseAll parses a given source file into zero or more S-expressions, or
// returns an error if the file is malformed.  A source map is also returned
// for error reporting.
func ParseAll(srcfile *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	var (
		p     = NewParser(srcfile)
		terms []SExp
	)
	//
	for {
		term, err := p.Parse()
		//
		if err != nil {
			return nil, nil, err
		} else if term == nil {
			// EOF reached
			return terms, p.SourceMap(), nil
		}
		//
		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given source file into
// one or more S-expressions.
type Parser struct {
	// Source file being parsed
	srcfile *source.File
	// Cache (for simplicity)
	text []rune
	// Current position within text
	index int
	// Mapping from constructed S-Expressions to their spans in the original text.
	srcmap *source.Map[SExp]
}

// NewParser constructs a new instance of Parser
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		index:   0,
		srcmap:  source.NewSourceMap[SExp](srcfile),
	}
}

// SourceMap returns the source map constructed during parsing.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression from the input, returning nil when the end of
// the input is reached.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var term SExp
	// Skip whitespace first so that spans start at the term itself.
	p.SkipWhiteSpace()
	// Record start of this term
	start := p.index
	//
	switch {
	case p.index == len(p.text):
		return nil, nil
	case p.text[p.index] == ')':
		return nil, p.error("unexpected end-of-list")
	case p.text[p.index] == '(':
		p.index++
		//
		elements, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		//
		term = &List{elements}
	default:
		term = &Symbol{p.parseSymbol()}
	}
	// Register item in source map
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	//
	return term, nil
}

// SkipWhiteSpace skips over any whitespace, including comments which run from
// ';' to the end of the line.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) {
		switch c := p.text[p.index]; {
		case c == ';':
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		case unicode.IsSpace(c):
			p.index++
		default:
			return
		}
	}
}

func (p *Parser) parseSymbol() string {
	start := p.index
	//
	for p.index < len(p.text) && IsSymbolLetter(p.text[p.index]) {
		p.index++
	}
	//
	return string(p.text[start:p.index])
}

func (p *Parser) parseSequence() ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.SkipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == ')' {
			// Consume terminator
			p.index++
			return elements, nil
		}
		// Parse next element
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) *source.SyntaxError {
	var span source.Span
	//
	if p.index < len(p.text) {
		span = source.NewSpan(p.index, p.index+1)
	} else {
		span = source.NewSpan(p.index, p.index)
	}
	//
	return p.srcfile.SyntaxError(span, msg)
}
