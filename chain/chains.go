// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Bitmark = "bitmark"
	Testing = "testing"
	Local   = "local"
)

// identity of the whitelist authority consulted on each chain
const (
	bitmarkWhitelistAuthority = "lockup-whitelist.near"
	testingWhitelistAuthority = "whitelist.f863973.m0"
	localWhitelistAuthority   = "whitelist.local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Bitmark, Testing, Local:
		return true
	default:
		return false
	}
}

// IsTesting - true for any chain that uses test accounts
func IsTesting(name string) bool {
	return Bitmark != name
}

// WhitelistAuthority - the default whitelist authority for a chain
// returns empty string for an unknown chain
func WhitelistAuthority(name string) string {
	switch name {
	case Bitmark:
		return bitmarkWhitelistAuthority
	case Testing:
		return testingWhitelistAuthority
	case Local:
		return localWhitelistAuthority
	default:
		return ""
	}
}
