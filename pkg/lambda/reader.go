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
package lambda

import (
	"slices"

	"github.com/consensys/go-abt/pkg/abt"
	"github.com/consensys/go-abt/pkg/util/source"
	"github.com/consensys/go-abt/pkg/util/source/sexp"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DEF is the keyword introducing a top-level definition.
const DEF = "def"

// Identifiers which have special meaning, and cannot be used as variables.
var keywords = []string{LAM.String(), APP.String(), LET.String(), LET2.String(), DEF}

// Item is a top-level term read from a source file, after all definitions it
// refers to have been expanded.
type Item struct {
	// Term itself
	Term Term
	// Span of the term within its source file
	Span source.Span
}

// Reader translates lambda terms written as S-Expressions into abstract
// binding trees.  Definitions are remembered across files, such that a term in
// one file can refer to a definition from any file read before it.
// Identifiers which are neither bound nor defined are treated as free
// variables, where every occurrence of the same identifier (across all files)
// refers to the same variable.
type Reader struct {
	supply abt.Supply
	// Variables standing for definitions, indexed by name.
	defs map[string]Var
	// Expansion of every definition, keyed by variable.
	subs abt.Subs[Operator, Sort]
	// Free variables, indexed by name.
	free map[string]Var
	// Ensures structurally equal definitions share a single representation.
	interner *abt.Interner[Operator, Sort]
}

// NewReader constructs a new reader which draws variables from a given supply.
func NewReader(supply abt.Supply) *Reader {
	return &Reader{
		supply:   supply,
		defs:     make(map[string]Var),
		subs:     abt.NewSubs[Operator, Sort](),
		free:     make(map[string]Var),
		interner: abt.NewInterner[Operator, Sort](),
	}
}

// Definition returns the (expanded) term associated with a given definition.
func (r *Reader) Definition(name string) (Term, bool) {
	if v, ok := r.defs[name]; ok {
		return r.subs.Get(v)
	}
	//
	return nil, false
}

// ReadString reads zero or more top-level terms from a given string.  This is
// primarily useful for testing.
func (r *Reader) ReadString(text string) ([]Item, error) {
	return r.ReadFile(source.NewFile("<input>", []byte(text)))
}

// ReadFile reads zero or more top-level terms and definitions from a given
// source file.  A malformed term or definition does not prevent subsequent
// ones from being read, hence the error returned (if any) accumulates all
// problems found.  Syntax errors are reported as *source.SyntaxError, whilst
// terms rejected by the signature are reported as (wrapped)
// *abt.StructuralError.
func (r *Reader) ReadFile(srcfile *source.File) ([]Item, error) {
	var (
		items []Item
		errs  *multierror.Error
	)
	// Parse the file
	terms, srcmap, perr := sexp.ParseAll(srcfile)
	if perr != nil {
		return nil, perr
	}
	//
	for _, term := range terms {
		t := translator{r, srcmap}
		//
		if list := term.AsList(); list != nil && list.Head() == DEF {
			if err := t.translateDefinition(list); err != nil {
				errs = multierror.Append(errs, err)
			}
		} else if item, err := t.translateTerm(nil, term); err != nil {
			errs = multierror.Append(errs, err)
		} else {
			items = append(items, Item{r.subs.Apply(item), srcmap.Get(term)})
		}
	}
	//
	log.Debugf("read %d term(s) from %s (%d shared definition node(s))", len(items), srcfile.Filename(),
		r.interner.Size())
	//
	return items, errs.ErrorOrNil()
}

// ===================================================================
// Translator
// ===================================================================

// Scope maps identifiers to the variables bound for them by enclosing
// binders.
type scope struct {
	name     string
	variable Var
	parent   *scope
}

func (s *scope) lookup(name string) (Var, bool) {
	for c := s; c != nil; c = c.parent {
		if c.name == name {
			return c.variable, true
		}
	}
	//
	return Var{}, false
}

type translator struct {
	reader *Reader
	srcmap *source.Map[sexp.SExp]
}

func (t *translator) translateDefinition(list *sexp.List) error {
	if !list.MatchSymbols(3, DEF) || list.Get(1).AsSymbol() == nil {
		return t.srcmap.SyntaxError(list, "malformed definition")
	}
	//
	name := list.Get(1).AsSymbol()
	//
	if err := t.checkIdentifier(name); err != nil {
		return err
	} else if _, ok := t.reader.defs[name.Value]; ok {
		return t.srcmap.SyntaxError(name, "duplicate definition")
	}
	//
	body, err := t.translateTerm(nil, list.Get(2))
	if err != nil {
		return err
	}
	// Expand any definitions used, and register.
	v := abt.FreshNamed(t.reader.supply, EXP, name.Value)
	t.reader.defs[name.Value] = v
	t.reader.subs.Add(v, t.reader.interner.Intern(t.reader.subs.Apply(body)))
	//
	return nil
}

func (t *translator) translateTerm(env *scope, term sexp.SExp) (Term, error) {
	if symbol := term.AsSymbol(); symbol != nil {
		return t.translateIdentifier(env, symbol)
	}
	//
	list := term.AsList()
	//
	switch list.Head() {
	case LAM.String():
		return t.translateBinder(env, list, LAM, 1)
	case APP.String():
		return t.translateApp(env, list)
	case LET.String():
		return t.translateBinder(env, list, LET, 2)
	case LET2.String():
		return t.translateBinder(env, list, LET2, 3)
	case DEF:
		return nil, t.srcmap.SyntaxError(list, "definition not permitted here")
	}
	// Application sugar
	if list.Len() < 2 {
		return nil, t.srcmap.SyntaxError(list, "invalid application")
	}
	//
	fn, err := t.translateTerm(env, list.Get(0))
	if err != nil {
		return nil, err
	}
	//
	args, err := t.translateTerms(env, list.Elements[1:])
	if err != nil {
		return nil, err
	}
	//
	return NewApps(fn, args...), nil
}

func (t *translator) translateIdentifier(env *scope, symbol *sexp.Symbol) (Term, error) {
	if err := t.checkIdentifier(symbol); err != nil {
		return nil, err
	} else if v, ok := env.lookup(symbol.Value); ok {
		return NewVar(v), nil
	} else if v, ok := t.reader.defs[symbol.Value]; ok {
		return NewVar(v), nil
	} else if v, ok := t.reader.free[symbol.Value]; ok {
		return NewVar(v), nil
	}
	// Unknown identifiers are free variables.
	v := abt.FreshNamed(t.reader.supply, EXP, symbol.Value)
	t.reader.free[symbol.Value] = v
	//
	return NewVar(v), nil
}

// Translate an explicit application "(app f a)".  The number of operands is
// not checked here, but is left to the signature.
func (t *translator) translateApp(env *scope, list *sexp.List) (Term, error) {
	args, err := t.translateTerms(env, list.Elements[1:])
	if err != nil {
		return nil, err
	}
	//
	operands := make([]abt.AbsView[Sort, Term], len(args))
	for i, arg := range args {
		operands[i] = abt.Closed[Sort](arg)
	}
	//
	return t.build(list, APP, operands...)
}

// Translate a binding form, which consists of zero or more binders followed by
// n operands, the last of which is the scope of the binders.  For example,
// "(let x e body)" has one binder and two operands.  The number of binders is
// not checked here, but is left to the signature.  Repeated binders refer to
// the same variable, and are also left to the signature.
func (t *translator) translateBinder(env *scope, list *sexp.List, op Operator, n int) (Term, error) {
	var (
		nbinders = list.Len() - 1 - n
		vars     []Var
		inner    = env
		operands []abt.AbsView[Sort, Term]
	)
	//
	if nbinders < 0 {
		return t.build(list, op)
	}
	// Allocate binders
	for _, b := range list.Elements[1 : 1+nbinders] {
		symbol := b.AsSymbol()
		//
		if symbol == nil {
			return nil, t.srcmap.SyntaxError(b, "expected identifier")
		} else if err := t.checkIdentifier(symbol); err != nil {
			return nil, err
		}
		//
		var (
			v     Var
			found bool
		)
		// Repeated binders share a variable
		for i, prev := range list.Elements[1 : 1+len(vars)] {
			if prev.AsSymbol().Value == symbol.Value {
				v, found = vars[i], true
				break
			}
		}
		//
		if !found {
			v = abt.FreshNamed(t.reader.supply, EXP, symbol.Value)
		}
		//
		vars = append(vars, v)
		inner = &scope{symbol.Value, v, inner}
	}
	// Translate operands
	for i, e := range list.Elements[1+nbinders:] {
		if i == n-1 {
			body, err := t.translateTerm(inner, e)
			if err != nil {
				return nil, err
			}
			//
			operands = append(operands, abt.Scope(body, vars...))
		} else {
			arg, err := t.translateTerm(env, e)
			if err != nil {
				return nil, err
			}
			//
			operands = append(operands, abt.Closed[Sort](arg))
		}
	}
	//
	return t.build(list, op, operands...)
}

func (t *translator) translateTerms(env *scope, terms []sexp.SExp) ([]Term, error) {
	var (
		trees = make([]Term, len(terms))
		err   error
	)
	//
	for i, term := range terms {
		if trees[i], err = t.translateTerm(env, term); err != nil {
			return nil, err
		}
	}
	//
	return trees, nil
}

// Build a given operator application, attaching the location of the list to
// any structural error arising.
func (t *translator) build(list *sexp.List, op Operator, operands ...abt.AbsView[Sort, Term]) (Term, error) {
	term, err := build(op, operands...)
	//
	if err != nil {
		var (
			srcfile = t.srcmap.Source()
			line    = srcfile.EnclosingLine(t.srcmap.Get(list))
		)
		//
		return nil, errors.Wrapf(err, "%s:%d", srcfile.Filename(), line.Number())
	}
	//
	return term, nil
}

func (t *translator) checkIdentifier(symbol *sexp.Symbol) error {
	if slices.Contains(keywords, symbol.Value) {
		return t.srcmap.SyntaxError(symbol, "reserved identifier")
	}
	//
	return nil
}
