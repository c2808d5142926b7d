// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/mr-tron/base58"
)

// ToBase58 - encode bytes using the Bitcoin base58 alphabet
func ToBase58(b []byte) string {
	return base58.Encode(b)
}

// FromBase58 - decode a base58 string
// returns an empty slice if the string is not valid base58
func FromBase58(s string) []byte {
	b, err := base58.Decode(s)
	if nil != err {
		return []byte{}
	}
	return b
}
