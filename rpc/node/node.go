// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/counter"
	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/mode"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/rpc/ratelimit"
	"github.com/bitmark-inc/poolfields/storage"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Store   storage.Reader
	Tracker *pending.Tracker
	Self    *account.Account
	counter *counter.Counter
}

// New - create the Node RPC handler
func New(log *logger.L, store storage.Reader, tracker *pending.Tracker, self *account.Account, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Store:   store,
		Tracker: tracker,
		Self:    self,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain          string           `json:"chain"`
	Mode           string           `json:"mode"`
	Pools          uint64           `json:"pools"`
	RPCs           uint64           `json:"rpcs"`
	Authorisations pending.Counters `json:"authorisations"`
	Version        string           `json:"version"`
	Uptime         string           `json:"uptime"`
	Account        string           `json:"account"`
}

// Info - return some information about this node
// only enough for clients to determine node state
// for more detail information use HTTP GET requests
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if node.Store == nil {
		return fault.DatabaseIsNotSet
	}

	pools, err := node.Store.Count()
	if nil != err {
		return err
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Pools = pools
	reply.RPCs = node.counter.Uint64()
	if nil != node.Tracker {
		reply.Authorisations = node.Tracker.Counters()
	}
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	if nil != node.Self {
		reply.Account = node.Self.String()
	}
	return nil
}
