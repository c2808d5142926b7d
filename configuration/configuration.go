// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/bitmark-inc/poolfields/fault"
)

// ParseConfigurationFile - read a configuration file and assign the
// results to a configuration structure, the structure must already
// contain any default values
//
// variables are only visible to Lua configurations
func ParseConfigurationFile(fileName string, config interface{}, variables map[string]string) error {

	// since interface{} is untyped, have to verify type compatibility at run-time
	rv := reflect.ValueOf(config)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fault.InvalidStructPointer
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".lua", ".conf":
		return parseLuaFile(fileName, config, variables)
	case ".toml":
		return parseTOMLFile(fileName, config)
	case ".yaml", ".yml":
		return parseYAMLFile(fileName, config)
	default:
		return fault.UnsupportedConfigurationFormat
	}
}
