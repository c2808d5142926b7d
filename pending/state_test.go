// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pending_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/pending"
)

func TestCanTransition(t *testing.T) {
	all := []pending.State{
		pending.Validating,
		pending.AwaitingVerification,
		pending.Resolving,
		pending.Committed,
		pending.Rejected,
	}

	allowed := map[[2]pending.State]bool{
		{pending.Validating, pending.AwaitingVerification}: true,
		{pending.Validating, pending.Rejected}:             true,
		{pending.AwaitingVerification, pending.Resolving}:  true,
		{pending.AwaitingVerification, pending.Rejected}:   true,
		{pending.Resolving, pending.Committed}:             true,
		{pending.Resolving, pending.Rejected}:              true,
	}

	for _, from := range all {
		for _, to := range all {
			expected := allowed[[2]pending.State{from, to}]
			assert.Equal(t, expected, pending.CanTransition(from, to), "%s → %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, pending.Validating.IsTerminal(), "validating")
	assert.False(t, pending.AwaitingVerification.IsTerminal(), "awaiting")
	assert.False(t, pending.Resolving.IsTerminal(), "resolving")
	assert.True(t, pending.Committed.IsTerminal(), "committed")
	assert.True(t, pending.Rejected.IsTerminal(), "rejected")
}

func TestStateText(t *testing.T) {
	s := pending.AwaitingVerification

	buffer, err := json.Marshal(s)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `"awaiting-verification"`, string(buffer), "json")

	var r pending.State
	err = json.Unmarshal([]byte(`"committed"`), &r)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, pending.Committed, r, "state")

	err = json.Unmarshal([]byte(`"finished"`), &r)
	assert.Equal(t, fault.InvalidTransition, err, "unknown name")

	assert.Equal(t, "*unknown*", pending.State(99).String(), "unknown string")
}
