// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/poolfields/chain"
)

func TestValid(t *testing.T) {
	assert.True(t, chain.Valid(chain.Bitmark), "bitmark")
	assert.True(t, chain.Valid(chain.Testing), "testing")
	assert.True(t, chain.Valid(chain.Local), "local")
	assert.False(t, chain.Valid("Bitmark"), "upper case")
	assert.False(t, chain.Valid(""), "empty")
}

func TestWhitelistAuthority(t *testing.T) {
	assert.Equal(t, "lockup-whitelist.near", chain.WhitelistAuthority(chain.Bitmark), "live authority")
	assert.Equal(t, "whitelist.f863973.m0", chain.WhitelistAuthority(chain.Testing), "test authority")
	assert.Equal(t, "whitelist.local", chain.WhitelistAuthority(chain.Local), "local authority")
	assert.Equal(t, "", chain.WhitelistAuthority("nowhere"), "unknown authority")
}

func TestIsTesting(t *testing.T) {
	assert.False(t, chain.IsTesting(chain.Bitmark), "bitmark is live")
	assert.True(t, chain.IsTesting(chain.Testing), "testing")
	assert.True(t, chain.IsTesting(chain.Local), "local")
}
