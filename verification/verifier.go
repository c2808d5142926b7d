// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/authority"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/resolver"
)

// DefaultTimeout - base budget for one authority call
const DefaultTimeout = 30 * time.Second

// Verifier - obtains both authority answers for queued authorisations
//
// Run may be started several times to give a pool of workers
type Verifier struct {
	log       *logger.L
	whitelist authority.Whitelist
	pools     authority.Pools
	key       *account.PrivateKey
	tracker   *pending.Tracker
	timeout   time.Duration
	queue     <-chan *pending.Authorisation
	dispatch  chan<- *resolver.Invocation
}

// NewVerifier - create a verifier
//
// invocations are signed with key, which must be the daemon's own
// identity; tracker is the table the gateway queued into
func NewVerifier(log *logger.L, whitelist authority.Whitelist, pools authority.Pools, key *account.PrivateKey, tracker *pending.Tracker, timeout time.Duration, queue <-chan *pending.Authorisation, dispatch chan<- *resolver.Invocation) *Verifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Verifier{
		log:       log,
		whitelist: whitelist,
		pools:     pools,
		key:       key,
		tracker:   tracker,
		timeout:   timeout,
		queue:     queue,
		dispatch:  dispatch,
	}
}

// Verify - ask both authorities and wait for both answers
//
// the calls are independent, a failure of one does not cancel the
// other
func (v *Verifier) Verify(ctx context.Context, a *pending.Authorisation) *resolver.Invocation {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	whitelisted := false
	ownerId := ""

	var g errgroup.Group
	g.Go(func() error {
		ok, err := v.whitelist.IsWhitelisted(ctx, a.PoolId)
		whitelisted = ok
		return err
	})
	g.Go(func() error {
		owner, err := v.pools.GetOwnerId(ctx, a.PoolId)
		ownerId = owner
		return err
	})

	results := resolver.Results{}
	if err := g.Wait(); nil != err {
		v.log.Warnf("verify: %s  pool: %q  error: %s", a.Id, a.PoolId, err)
		results.Failure = err.Error()
	} else {
		results.Whitelisted = whitelisted
		results.OwnerId = ownerId
	}

	v.log.Debugf("verified: %s  results: %+v", a.Id, results)
	return resolver.NewInvocation(v.key, a, results)
}

// Run - worker loop
func (v *Verifier) Run(args interface{}, shutdown <-chan struct{}) {
	log := v.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case a := <-v.queue:
			// expired or already decided while queued
			state, err := v.tracker.State(a.Id)
			if nil != err || pending.AwaitingVerification != state {
				log.Warnf("skip: %s  pool: %q  state: %s  error: %v", a.Id, a.PoolId, state, err)
				continue loop
			}

			inv := v.Verify(context.Background(), a)
			select {
			case v.dispatch <- inv:
			case <-shutdown:
				log.Warnf("shutdown: dropped: %s", a.Id)
				break loop
			}
		}
	}

	log.Info("stopped")
}
