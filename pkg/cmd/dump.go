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

	"github.com/consensys/go-abt/pkg/abt"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] file(s)",
	Short: "print the internal representation of lambda terms.",
	Long: `Read definitions and terms from the given file(s), and print the
	 locally nameless representation of each term.  Bound variables are shown as
	 ^depth.slot, and free variables as name#id.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			supply = abt.NewSupply()
			items  = readTerms(supply, args)
			raw    = getFlag(cmd, "raw")
		)
		//
		for _, item := range items {
			if raw {
				fmt.Printf("%# v\n", pretty.Formatter(item.Term))
			} else {
				fmt.Println(item.Term)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().Bool("raw", false, "print the underlying Go data structures")
}
