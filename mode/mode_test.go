// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/chain"
	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/mode"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      fmt.Sprintf("%s.log", testingDirName),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func TestModeLifecycle(t *testing.T) {
	err := mode.Initialise(chain.Testing)
	assert.Nil(t, err, "initialise")

	assert.Equal(t, fault.AlreadyInitialised, mode.Initialise(chain.Testing), "double initialise")

	assert.True(t, mode.Is(mode.Starting), "initial mode")
	assert.True(t, mode.IsTesting(), "testing chain")
	assert.Equal(t, chain.Testing, mode.ChainName(), "chain name")
	assert.Equal(t, "whitelist.f863973.m0", mode.WhitelistAuthority(), "authority")

	mode.Set(mode.Normal)
	assert.True(t, mode.Is(mode.Normal), "normal mode")
	assert.Equal(t, "Normal", mode.String(), "mode string")

	err = mode.Finalise()
	assert.Nil(t, err, "finalise")
	assert.Equal(t, fault.NotInitialised, mode.Finalise(), "double finalise")
}

func TestInvalidChain(t *testing.T) {
	err := mode.Initialise("nowhere")
	assert.Equal(t, fault.InvalidChain, err, "invalid chain accepted")
}
