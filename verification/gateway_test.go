// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/verification"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		caller string
		poolId string
		name   string
		value  string
		err    error
	}{
		{"alice", "pool-7", "rate", "0.05", nil},
		{"", "pool-7", "rate", "0.05", fault.MissingParameters},
		{"alice", "", "rate", "0.05", fault.EmptyPoolId},
		{"alice", "pool-7", "", "0.05", fault.EmptyFieldName},
		{"alice", "pool-7", "rate", "", fault.EmptyFieldValue},
		{"alice", "pool-7", strings.Repeat("n", 2000), "0.05", nil},
		{"alice", "pool-7", strings.Repeat("n", 2001), "0.05", fault.FieldNameTooLong},
		{"alice", "pool-7", "rate", strings.Repeat("v", 4000), nil},
		{"alice", "pool-7", "rate", strings.Repeat("v", 4001), fault.FieldValueTooLong},

		// limits are in bytes: 1334 × 3 bytes = 4002
		{"alice", "pool-7", "rate", strings.Repeat("€", 1334), fault.FieldValueTooLong},
		{"alice", "pool-7", strings.Repeat("é", 1000), "0.05", nil},
		{"alice", "pool-7", strings.Repeat("é", 1001), "0.05", fault.FieldNameTooLong},
	}

	for i, item := range tests {
		err := verification.Validate(item.caller, item.poolId, item.name, item.value)
		assert.Equal(t, item.err, err, "%d: error", i)
		if nil != item.err {
			assert.True(t, fault.IsErrInvalid(err), "%d: class", i)
		}
	}
}

func TestRequestUpdateAccepted(t *testing.T) {
	tracker := pending.NewTracker(time.Minute)
	g := verification.NewGateway(logger.New("test"), tracker, 10)

	accepted, err := g.RequestUpdate("alice", "pool-7", "rate", "0.05")
	assert.Nil(t, err, "request")
	if !assert.NotNil(t, accepted, "accepted") {
		return
	}

	s, err := tracker.State(accepted.Id)
	assert.Nil(t, err, "state")
	assert.Equal(t, pending.AwaitingVerification, s, "state")

	assert.Equal(t, 1, len(g.Queue()), "queued")
	a := <-g.Queue()
	assert.Equal(t, accepted.Id, a.Id, "id")
	assert.Equal(t, "alice", a.Caller, "caller")
	assert.Equal(t, "pool-7", a.PoolId, "pool")
	assert.Equal(t, "rate", a.Name, "name")
	assert.Equal(t, "0.05", a.Value, "value")
}

func TestRequestUpdateInvalidIsNotQueued(t *testing.T) {
	tracker := pending.NewTracker(time.Minute)
	g := verification.NewGateway(logger.New("test"), tracker, 10)

	accepted, err := g.RequestUpdate("alice", "", "rate", "0.05")
	assert.Equal(t, fault.EmptyPoolId, err, "error")
	assert.Nil(t, accepted, "accepted")
	assert.Equal(t, 0, len(g.Queue()), "queued")

	assert.Equal(t, pending.Counters{Live: 0, Committed: 0, Rejected: 1}, tracker.Counters(), "counters")
}

func TestRequestUpdateQueueFull(t *testing.T) {
	tracker := pending.NewTracker(time.Minute)
	g := verification.NewGateway(logger.New("test"), tracker, 1)

	_, err := g.RequestUpdate("alice", "pool-1", "rate", "0.05")
	assert.Nil(t, err, "first")

	accepted, err := g.RequestUpdate("alice", "pool-2", "rate", "0.05")
	assert.Equal(t, fault.QueueFull, err, "second")
	assert.Nil(t, accepted, "accepted")

	assert.Equal(t, 1, len(g.Queue()), "queued")
	assert.Equal(t, pending.Counters{Live: 1, Committed: 0, Rejected: 1}, tracker.Counters(), "counters")
}
