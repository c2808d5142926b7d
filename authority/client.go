// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
)

// remote method names
const (
	whitelistMethod = "Whitelist.IsWhitelisted"
	ownerMethod     = "Pool.GetOwnerId"
)

// used when the context carries no deadline
const defaultCallTimeout = 10 * time.Second

// WhitelistArguments - arguments for the whitelist query
type WhitelistArguments struct {
	Authority string `json:"authority"`
	PoolId    string `json:"staking_pool_account_id"`
}

// WhitelistReply - result of the whitelist query
type WhitelistReply struct {
	Whitelisted bool `json:"whitelisted"`
}

// OwnerArguments - arguments for the owner query
type OwnerArguments struct {
	PoolId string `json:"pool_id"`
}

// OwnerReply - result of the owner query
type OwnerReply struct {
	OwnerId string `json:"owner_id"`
}

// Client - JSON-RPC over TLS connection to an authority
//
// a new connection is made for each call so that a failed call
// leaves no state behind
type Client struct {
	log       *logger.L
	connect   string
	authority string
	tlsConfig *tls.Config
}

// NewClient - create a client for the authority at connect
//
// authority is the account id of the whitelist contract and is only
// used for whitelist queries
func NewClient(log *logger.L, connect string, authority string, tlsConfig *tls.Config) *Client {
	if nil == tlsConfig {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}
	return &Client{
		log:       log,
		connect:   connect,
		authority: authority,
		tlsConfig: tlsConfig,
	}
}

// IsWhitelisted - ask the whitelist authority about a pool
func (c *Client) IsWhitelisted(ctx context.Context, poolId string) (bool, error) {
	if "" == c.authority {
		return false, fault.WhitelistAuthorityNotSet
	}

	arguments := WhitelistArguments{
		Authority: c.authority,
		PoolId:    poolId,
	}
	var reply WhitelistReply
	if err := c.call(ctx, whitelistMethod, &arguments, &reply); nil != err {
		return false, err
	}
	return reply.Whitelisted, nil
}

// GetOwnerId - ask a pool for its owner
func (c *Client) GetOwnerId(ctx context.Context, poolId string) (string, error) {
	arguments := OwnerArguments{
		PoolId: poolId,
	}
	var reply OwnerReply
	if err := c.call(ctx, ownerMethod, &arguments, &reply); nil != err {
		return "", err
	}
	return reply.OwnerId, nil
}

func (c *Client) call(ctx context.Context, method string, arguments interface{}, reply interface{}) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultCallTimeout)
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Deadline: deadline},
		Config:    c.tlsConfig,
	}
	conn, err := dialer.DialContext(ctx, "tcp", c.connect)
	if nil != err {
		c.log.Errorf("%s: dial: %q  error: %s", method, c.connect, err)
		return fmt.Errorf("%w: %s", fault.TransportFailure, err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(deadline)

	client := jsonrpc.NewClient(conn)
	defer client.Close()

	pending := client.Go(method, arguments, reply, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		c.log.Warnf("%s: abandoned: %s", method, ctx.Err())
		return fmt.Errorf("%w: %s", fault.TransportFailure, ctx.Err())
	case call := <-pending.Done:
		if nil != call.Error {
			c.log.Errorf("%s: error: %s", method, call.Error)
			return fmt.Errorf("%w: %s", fault.TransportFailure, call.Error)
		}
	}
	return nil
}
