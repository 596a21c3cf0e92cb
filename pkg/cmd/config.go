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

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CONFIG_FILE is the name of the configuration file loaded from the current
// directory when no other is given.
const CONFIG_FILE = "abt.toml"

// fileConfig represents the contents of an abt.toml configuration file, which
// provides defaults for command-line flags.  A flag given explicitly on the
// command line always overrides the configuration file.
type fileConfig struct {
	// Output width
	Width uint `toml:"width,omitempty"`
	// Defaults for the eval command
	Eval evalFileConfig `toml:"eval"`
}

type evalFileConfig struct {
	// Maximum number of reduction steps per term
	Fuel uint `toml:"fuel,omitempty"`
	// Reduction strategy ("normal-order" or "call-by-name")
	Strategy string `toml:"strategy,omitempty"`
}

// Load the configuration file given by the "--config" flag or, failing that,
// the default configuration file (if it exists).  This exits if the file
// cannot be parsed.
func getFileConfig(cmd *cobra.Command) *fileConfig {
	var (
		config   fileConfig
		filename = getString(cmd, "config")
	)
	//
	if filename == "" {
		if _, err := os.Stat(CONFIG_FILE); errors.Is(err, os.ErrNotExist) {
			return &config
		}
		//
		filename = CONFIG_FILE
	}
	//
	if err := loadFileConfig(filename, &config); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return &config
}

func loadFileConfig(filename string, config *fileConfig) error {
	meta, err := toml.DecodeFile(filename, config)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", filename)
	}
	//
	for _, key := range meta.Undecoded() {
		log.Warnf("%s: unknown configuration key \"%s\"", filename, key)
	}
	//
	return nil
}

// Get an expected string flag, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}
