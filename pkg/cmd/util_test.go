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
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-abt/pkg/abt"
	"github.com/consensys/go-abt/pkg/lambda"
	"github.com/stretchr/testify/require"
)

func Test_ReadSourceFiles_01(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		writeFile(t, dir, "defs.lisp", "(def id (lam x x))"),
		writeFile(t, dir, "main.lisp", "(id y)"),
	}
	//
	srcfiles, err := readSourceFiles(names)
	require.NoError(t, err)
	require.Len(t, srcfiles, 2)
	// Order is preserved
	require.Equal(t, names[0], srcfiles[0].Filename())
	require.Equal(t, "(id y)", string(srcfiles[1].Contents()))
	// Later files see earlier definitions
	supply := abt.NewSupply()
	items := readTerms(supply, names)
	require.Len(t, items, 1)
	require.Equal(t, "((lam x x) y)", lambda.Print(supply, items[0].Term).String())
}

func Test_ReadSourceFiles_02(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		writeFile(t, dir, "defs.lisp", "(def id (lam x x))"),
		filepath.Join(dir, "missing.lisp"),
	}
	//
	_, err := readSourceFiles(names)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "missing.lisp")
}

func Test_FileConfig_01(t *testing.T) {
	var config fileConfig
	//
	filename := writeFile(t, t.TempDir(), "abt.toml", "width = 60\n[eval]\nfuel = 50\nstrategy = \"cbn\"\n")
	require.NoError(t, loadFileConfig(filename, &config))
	require.Equal(t, uint(60), config.Width)
	require.Equal(t, uint(50), config.Eval.Fuel)
	//
	strategy, err := lambda.ParseStrategy(config.Eval.Strategy)
	require.NoError(t, err)
	require.Equal(t, lambda.CALL_BY_NAME, strategy)
}

func Test_FileConfig_02(t *testing.T) {
	var config fileConfig
	//
	filename := writeFile(t, t.TempDir(), "abt.toml", "[eval\nfuel = 50\n")
	err := loadFileConfig(filename, &config)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing "+filename)
}

// ===================================================================
// Test Helpers
// ===================================================================

func writeFile(t *testing.T, dir string, name string, contents string) string {
	t.Helper()
	//
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0600))
	//
	return filename
}
