// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"

	"go.yaml.in/yaml/v3"
)

// decode a YAML file, unknown fields are an error
func parseYAMLFile(fileName string, config interface{}) error {
	f, err := os.Open(fileName)
	if nil != err {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	return decoder.Decode(config)
}
