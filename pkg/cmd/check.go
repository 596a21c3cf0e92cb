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
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file(s)",
	Short: "check lambda terms are well-formed.",
	Long: `Read definitions and terms from the given file(s), reporting any syntax
	 errors along with any terms which are malformed (e.g. a lambda binding the
	 wrong number of variables).`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			supply = abt.NewSupply()
			items  = readTerms(supply, args)
			failed = false
		)
		// Terms are checked when read, so revalidation should always succeed.
		for i, item := range items {
			if err := abt.Validate(lambda.Signature, item.Term); err != nil {
				log.Errorf("term %d: %s", i+1, err)
				//
				failed = true
			}
		}
		//
		if failed {
			os.Exit(1)
		}
		//
		fmt.Printf("checked %d term(s)\n", len(items))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
