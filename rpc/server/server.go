// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/counter"
	"github.com/bitmark-inc/poolfields/mode"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/rpc/fields"
	"github.com/bitmark-inc/poolfields/rpc/node"
	"github.com/bitmark-inc/poolfields/storage"
)

// Handles - the components that RPC handlers operate on
type Handles struct {
	Gateway fields.Gateway
	Store   storage.Reader
	Tracker *pending.Tracker
	Self    *account.Account
}

// Create - an RPC server with all handlers registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, handles Handles) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(fields.New(log, handles.Gateway, handles.Store, mode.IsTesting))
	_ = server.Register(node.New(log, handles.Store, handles.Tracker, handles.Self, start, version, rpcCount))

	return server
}
