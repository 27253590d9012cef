//
// DISCLAIMER
//
// Copyright 2017-2026 ArangoDB GmbH, Cologne, Germany
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Copyright holder is ArangoDB GmbH, Cologne, Germany
//

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/ini.v1"
)

// loadCfgFromFile returns config loaded from file if file exists, nil otherwise
func loadCfgFromFile(cfgFilePath string) (*ini.File, error) {
	if _, err := os.Stat(cfgFilePath); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.WithStack(err)
	}

	f, err := ini.Load(cfgFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "while loading config file")
	}

	return f, nil
}

// findFlagByName searches for a flag in provided flag sets
func findFlagByName(n string, flagSets ...*pflag.FlagSet) *pflag.Flag {
	for _, fs := range flagSets {
		if f := fs.Lookup(n); f != nil {
			return f
		}
	}
	return nil
}

// trySetFlagFromConfig tries to find flagName in flag sets and set its value.
// Flags given on the command line win over the config file.
func trySetFlagFromConfig(flagName string, k *ini.Key, flagSets ...*pflag.FlagSet) error {
	f := findFlagByName(flagName, flagSets...)
	if f == nil {
		return fmt.Errorf("unknown key %s", flagName)
	}
	if f.Changed {
		return nil
	}
	if err := f.Value.Set(k.Value()); err != nil {
		return errors.Wrapf(err, "invalid value for key %s", flagName)
	}
	return nil
}

// applyConfig assigns the values of all keys in configFile to flag sets.
// Keys of a named section are prefixed with the section name:
//
//	[logfile]
//	path = /var/log/app.log
//
// is the same as --logfile.path=/var/log/app.log.
func applyConfig(configFile *ini.File, flagSets ...*pflag.FlagSet) error {
	for _, currSection := range configFile.Sections() {
		for _, k := range currSection.Keys() {
			flagName := k.Name()
			if currSection.Name() != ini.DefaultSection {
				flagName = currSection.Name() + "." + flagName
			}

			if err := trySetFlagFromConfig(flagName, k, flagSets...); err != nil {
				return errors.WithStack(err)
			}
		}
	}
	return nil
}

// loadFlagValuesFromConfig loads config and assigns its values to flag sets (only if flag value wasn't changed before)
func loadFlagValuesFromConfig(cfgFilePath string, flagSets ...*pflag.FlagSet) {
	if strings.ToLower(cfgFilePath) == "none" {
		// Skip loading: special value to ignore config
		return
	}

	configFile, err := loadCfgFromFile(mustExpand(cfgFilePath))
	if err != nil || configFile == nil && cfgFilePath != defaultConfigFilePath {
		log.Fatal().Err(err).Msgf("Could not load config file %s", cfgFilePath)
		return
	}
	if configFile == nil {
		return
	}

	if err := applyConfig(configFile, flagSets...); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}
}
