// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// decode a TOML file, keys without a matching "toml" tag are
// reported as an error so that misspelt settings are not ignored
func parseTOMLFile(fileName string, config interface{}) error {
	metadata, err := toml.DecodeFile(fileName, config)
	if nil != err {
		return err
	}

	undecoded := metadata.Undecoded()
	if 0 != len(undecoded) {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", fileName, strings.Join(keys, ", "))
	}
	return nil
}
