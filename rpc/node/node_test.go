// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/chain"
	"github.com/bitmark-inc/poolfields/counter"
	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/mode"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/rpc/fixtures"
	"github.com/bitmark-inc/poolfields/rpc/node"
	"github.com/bitmark-inc/poolfields/storage/mocks"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	_ = mode.Initialise(chain.Testing)
	defer mode.Finalise()

	key, _ := account.NewPrivateKey(true)

	tracker := pending.NewTracker(time.Minute)
	a := tracker.Begin("alice", "pool-7", "rate", "0.05")
	_ = tracker.Transition(a.Id, pending.Validating, pending.Rejected)
	_ = tracker.Begin("alice", "pool-8", "rate", "0.05")

	r := mocks.NewMockReader(ctl)
	r.EXPECT().Count().Return(uint64(42), nil).Times(1)

	c := counter.Counter(5)

	n := node.New(
		logger.New(fixtures.LogCategory),
		r,
		tracker,
		key.Account(),
		time.Now(),
		"100",
		&c,
	)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, mode.Starting.String(), reply.Mode, "wrong mode")
	assert.Equal(t, uint64(42), reply.Pools, "wrong pool count")
	assert.Equal(t, c.Uint64(), reply.RPCs, "wrong connection count")
	assert.Equal(t, pending.Counters{Live: 1, Committed: 0, Rejected: 1}, reply.Authorisations, "wrong counters")
	assert.Equal(t, n.Version, reply.Version, "wrong version")
	assert.Equal(t, key.Account().String(), reply.Account, "wrong account")
}

func TestNodeInfoWhenStoreNotSet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	c := counter.Counter(0)
	n := node.New(logger.New(fixtures.LogCategory), nil, nil, nil, time.Now(), "1", &c)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Equal(t, fault.DatabaseIsNotSet, err, "wrong error")
}
