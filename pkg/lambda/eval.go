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
	"fmt"

	"github.com/consensys/go-abt/pkg/abt"
	"github.com/consensys/go-abt/pkg/util"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Strategy determines which redexes are contracted during evaluation.
type Strategy uint8

const (
	// CALL_BY_NAME contracts the leftmost outermost redex, but never reduces
	// under a lambda or within an argument.  Evaluation therefore stops at weak
	// head normal form.
	CALL_BY_NAME Strategy = iota
	// NORMAL_ORDER contracts the leftmost outermost redex anywhere in the term,
	// including under lambdas and within arguments.  Evaluation therefore stops
	// at normal form (if there is one).
	NORMAL_ORDER
)

func (s Strategy) String() string {
	switch s {
	case CALL_BY_NAME:
		return "call-by-name"
	case NORMAL_ORDER:
		return "normal-order"
	default:
		return fmt.Sprintf("strategy%d", uint8(s))
	}
}

// ParseStrategy parses the name of a strategy, as given by its String method
// or abbreviated to "normal" or "cbn".
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "normal", NORMAL_ORDER.String():
		return NORMAL_ORDER, nil
	case "cbn", CALL_BY_NAME.String():
		return CALL_BY_NAME, nil
	default:
		return 0, errors.Errorf("unknown strategy \"%s\"", name)
	}
}

// Config determines how a term is evaluated.
type Config struct {
	// Strategy to use for selecting redexes.
	Strategy Strategy
	// Maximum number of reduction steps to take.
	Fuel uint
	// Trace, when non-nil, is called with every intermediate term produced
	// during evaluation.
	Trace func(step uint, term Term)
}

// DefaultConfig returns a configuration for normal order evaluation with a
// reasonable amount of fuel.
func DefaultConfig() Config {
	return Config{NORMAL_ORDER, 1000, nil}
}

// Step performs a single call-by-name reduction step on a given term, returning
// the reduced term and true, or the original term and false when it is already
// in weak head normal form.  Any variables needed to open scopes are drawn from
// the supply.
func Step(supply abt.Supply, term Term) (Term, bool) {
	op := term.AsOperation()
	//
	if op == nil {
		return term, false
	}
	//
	switch op.Operator() {
	case APP:
		var (
			fn  = op.Operand(0).Body()
			arg = op.Operand(1).Body()
		)
		// Beta reduction
		if lam := fn.AsOperation(); lam != nil && lam.Operator() == LAM {
			return abt.Instantiate(lam.Operand(0), arg), true
		}
		// Reduce in function position
		if nfn, ok := Step(supply, fn); ok {
			return NewApp(nfn, arg), true
		}
	case LET:
		return abt.Instantiate(op.Operand(1), op.Operand(0).Body()), true
	case LET2:
		return abt.Instantiate(op.Operand(2), op.Operand(0).Body(), op.Operand(1).Body()), true
	}
	//
	return term, false
}

// NormalStep performs a single normal order reduction step on a given term,
// returning the reduced term and true, or the original term and false when it
// is already in normal form.
func NormalStep(supply abt.Supply, term Term) (Term, bool) {
	if nterm, ok := Step(supply, term); ok {
		return nterm, true
	}
	// Term is now a variable, an abstraction, or an application whose head is
	// stuck on a variable.
	view := abt.ViewOf(term, supply).AsOp()
	//
	if view == nil {
		return term, false
	}
	//
	switch view.Operator {
	case LAM:
		x, body := view.Operands[0].Vars[0], view.Operands[0].Body
		//
		if nbody, ok := NormalStep(supply, body); ok {
			return NewLam(x, nbody), true
		}
	case APP:
		fn, arg := view.Operands[0].Body, view.Operands[1].Body
		//
		if nfn, ok := NormalStep(supply, fn); ok {
			return NewApp(nfn, arg), true
		} else if narg, ok := NormalStep(supply, arg); ok {
			return NewApp(fn, narg), true
		}
	}
	//
	return term, false
}

// Normalise repeatedly reduces a given term using the configured strategy until
// either no further reduction is possible, or the fuel runs out.  This returns
// the final term, the number of steps taken, and whether or not the final term
// is normal (with respect to the strategy).
func Normalise(supply abt.Supply, term Term, config Config) (Term, uint, bool) {
	var (
		stats = util.NewPerfStats()
		step  = Step
		steps uint
	)
	//
	if config.Strategy == NORMAL_ORDER {
		step = NormalStep
	}
	//
	for ; steps < config.Fuel; steps++ {
		nterm, ok := step(supply, term)
		//
		if !ok {
			stats.Log("normalisation", log.Fields{"steps": steps, "strategy": config.Strategy})
			return term, steps, true
		}
		//
		term = nterm
		//
		if log.IsLevelEnabled(log.DebugLevel) {
			log.WithField("step", steps+1).Debug(Print(supply, term).String())
		}
		//
		if config.Trace != nil {
			config.Trace(steps+1, term)
		}
	}
	// Fuel exhausted, but the final term may still be normal.
	_, more := step(supply, term)
	//
	if more {
		log.WithField("fuel", config.Fuel).Debug("normalisation ran out of fuel")
	}
	//
	stats.Log("normalisation", log.Fields{"steps": steps, "strategy": config.Strategy})
	//
	return term, steps, !more
}
