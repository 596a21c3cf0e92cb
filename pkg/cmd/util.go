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
	"github.com/consensys/go-abt/pkg/util/source"
	"github.com/consensys/go-abt/pkg/util/termio"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Get an expected unsigned integer flag, or exit if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Determine the output width, which is either given explicitly, by the
// configuration file, or determined from the terminal.
func getWidth(cmd *cobra.Command, file *fileConfig) uint {
	if width := getUint(cmd, "width"); width != 0 {
		return width
	} else if file.Width != 0 {
		return file.Width
	}
	//
	return termio.TerminalWidth()
}

// Read all terms from the given files, exiting with all errors reported should
// any file fail to read or contain malformed terms.  Files are read from disk
// concurrently, but translated in order since terms can refer to definitions
// given in earlier files.
func readTerms(supply abt.Supply, filenames []string) []lambda.Item {
	var (
		reader = lambda.NewReader(supply)
		items  []lambda.Item
		errs   *multierror.Error
	)
	//
	srcfiles, err := readSourceFiles(filenames)
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}
	//
	for _, srcfile := range srcfiles {
		fitems, err := reader.ReadFile(srcfile)
		items = append(items, fitems...)
		//
		if err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	//
	if errs.ErrorOrNil() != nil {
		printErrors(errs)
		os.Exit(1)
	}
	//
	return items
}

func readSourceFiles(filenames []string) ([]*source.File, error) {
	var (
		srcfiles = make([]*source.File, len(filenames))
		group    errgroup.Group
	)
	//
	for i, filename := range filenames {
		group.Go(func() error {
			bytes, err := os.ReadFile(filename)
			if err != nil {
				return errors.Wrapf(err, "cannot read %s", filename)
			}
			//
			srcfiles[i] = source.NewFile(filename, bytes)
			//
			return nil
		})
	}
	//
	return srcfiles, group.Wait()
}

// Print one or more errors, highlighting the offending text of syntax errors.
func printErrors(err error) {
	var merr *multierror.Error
	//
	if !errors.As(err, &merr) {
		printError(err)
		return
	}
	//
	for _, e := range merr.Errors {
		printError(e)
	}
}

func printError(err error) {
	if serr, ok := err.(*source.SyntaxError); ok {
		fmt.Println(serr.Highlight())
	} else {
		fmt.Println(err)
	}
}
