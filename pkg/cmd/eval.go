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
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-abt/pkg/abt"
	"github.com/consensys/go-abt/pkg/lambda"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] file(s)",
	Short: "evaluate lambda terms.",
	Long: `Read definitions and terms from the given file(s), and reduce each term
	 (in parallel) until it reaches normal form or runs out of fuel.  The final
	 term is then printed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			config  = getEvalConfig(cmd)
			supply  = abt.NewSharedSupply()
			items   = readTerms(supply, args)
			results = make([]lambda.Term, len(items))
			steps   = make([]uint, len(items))
			normal  = make([]bool, len(items))
			group   errgroup.Group
		)
		// Traces are only legible when terms are evaluated one at a time.
		if config.verbose {
			group.SetLimit(1)
			//
			config.lambda.Trace = func(step uint, term lambda.Term) {
				fmt.Printf("[%d] %s\n", step, lambda.Print(supply, term))
			}
		}
		//
		for i, item := range items {
			group.Go(func() error {
				results[i], steps[i], normal[i] = lambda.Normalise(supply, item.Term, config.lambda)
				return nil
			})
		}
		// Cannot fail
		_ = group.Wait()
		//
		formatter := lambda.Formatter(config.width)
		failed := false
		//
		for i := range items {
			fmt.Println(formatter.Format(lambda.Print(supply, results[i])))
			//
			if !normal[i] {
				log.Warnf("term %d not normalised after %d steps", i+1, steps[i])
				//
				failed = true
			}
		}
		//
		if failed {
			os.Exit(1)
		}
	},
}

// evalConfig encapsulates the configuration of the eval command.
type evalConfig struct {
	// Output width
	width uint
	// Print every intermediate term
	verbose bool
	// Evaluation strategy and fuel
	lambda lambda.Config
}

func getEvalConfig(cmd *cobra.Command) evalConfig {
	var (
		config evalConfig
		file   = getFileConfig(cmd)
		err    error
	)
	//
	config.width = getWidth(cmd, file)
	config.verbose = getFlag(cmd, "verbose")
	config.lambda = lambda.DefaultConfig()
	config.lambda.Fuel = getUint(cmd, "fuel")
	// Apply configuration file, unless overridden
	if file.Eval.Fuel != 0 && !cmd.Flags().Changed("fuel") {
		config.lambda.Fuel = file.Eval.Fuel
	}
	//
	if file.Eval.Strategy != "" && !cmd.Flags().Changed("cbn") {
		if config.lambda.Strategy, err = lambda.ParseStrategy(file.Eval.Strategy); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	} else if getFlag(cmd, "cbn") {
		config.lambda.Strategy = lambda.CALL_BY_NAME
	}
	//
	return config
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().Uint("fuel", 1000, "maximum number of reduction steps per term")
	evalCmd.Flags().Bool("cbn", false, "use call-by-name (weak head) reduction rather than normal order")
	evalCmd.Flags().BoolP("verbose", "v", false, "print every intermediate term")
}
