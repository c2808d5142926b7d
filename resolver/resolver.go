// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/storage"
)

// Resolver - applies authorised updates to the store
type Resolver struct {
	log     *logger.L
	self    *account.Account
	store   storage.Store
	tracker *pending.Tracker
	budget  time.Duration
	queue   <-chan *Invocation
}

// New - create a resolver
//
// self is the daemon's own account, only invocations sent and signed
// by it are accepted; the budget is twice the base verification timeout
func New(log *logger.L, self *account.Account, store storage.Store, tracker *pending.Tracker, base time.Duration, queue <-chan *Invocation) *Resolver {
	return &Resolver{
		log:     log,
		self:    self,
		store:   store,
		tracker: tracker,
		budget:  2 * base,
		queue:   queue,
	}
}

// Resolve - decide a single authorisation and apply it if permitted
//
// every error is terminal
func (r *Resolver) Resolve(ctx context.Context, inv *Invocation) error {
	if err := r.guard(inv); nil != err {
		return err
	}

	a := &inv.Authorisation

	if err := r.tracker.Transition(a.Id, pending.AwaitingVerification, pending.Resolving); nil != err {
		r.log.Errorf("resolve: %s  error: %s", a.Id, err)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.budget)
	defer cancel()

	err := r.apply(ctx, a, &inv.Results)
	if nil != err {
		r.log.Warnf("rejected: %s  error: %s", a.Id, err)
		_ = r.tracker.Transition(a.Id, pending.Resolving, pending.Rejected)
		return err
	}

	_ = r.tracker.Transition(a.Id, pending.Resolving, pending.Committed)
	r.log.Infof("field: %q added for pool: %q", a.Name, a.PoolId)
	return nil
}

// the invocation must come from this daemon and carry its signature
func (r *Resolver) guard(inv *Invocation) error {
	if nil == inv || !r.self.Equal(inv.Sender) {
		r.log.Critical("invocation from foreign sender")
		return fault.UnauthorisedCallback
	}
	if err := inv.Sender.CheckSignature(inv.Pack(), inv.Signature); nil != err {
		r.log.Criticalf("invocation: %s  signature error: %s", inv.Authorisation.Id, err)
		return fault.UnauthorisedCallback
	}
	return nil
}

func (r *Resolver) apply(ctx context.Context, a *pending.Authorisation, results *Results) error {
	if "" != results.Failure {
		return fmt.Errorf("%w: %s", fault.TransportFailure, results.Failure)
	}

	if !results.Whitelisted {
		return fmt.Errorf("%w: %q", fault.NotWhitelisted, a.PoolId)
	}

	if results.OwnerId != a.Caller {
		return fmt.Errorf("%w: expected: %q  pool: %q  caller: %q", fault.NotOwner, results.OwnerId, a.PoolId, a.Caller)
	}

	if err := ctx.Err(); nil != err {
		return fault.ResolutionTimeout
	}

	return r.store.Upsert(a.PoolId, a.Name, a.Value)
}

// Run - the single resolution loop
func (r *Resolver) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case inv := <-r.queue:
			_ = r.Resolve(context.Background(), inv)
		}
	}

	log.Info("stopped")
}
