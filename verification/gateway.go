// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package verification

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/pending"
)

// limits on field sizes in bytes
const (
	MaximumNameLength  = 2000
	MaximumValueLength = 4000
)

// DefaultQueueSize - used when no queue size is configured
const DefaultQueueSize = 1000

// Accepted - an update request was queued for verification
type Accepted struct {
	Id string `json:"id"`
}

// Gateway - entry point for field updates
type Gateway struct {
	log     *logger.L
	tracker *pending.Tracker
	queue   chan *pending.Authorisation
}

// NewGateway - create a gateway with a bounded queue
func NewGateway(log *logger.L, tracker *pending.Tracker, queueSize int) *Gateway {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Gateway{
		log:     log,
		tracker: tracker,
		queue:   make(chan *pending.Authorisation, queueSize),
	}
}

// Queue - authorisations waiting for verification
func (g *Gateway) Queue() <-chan *pending.Authorisation {
	return g.queue
}

// Validate - check an update request before anything is sent
func Validate(caller string, poolId string, name string, value string) error {
	if "" == caller {
		return fault.MissingParameters
	}
	if "" == poolId {
		return fault.EmptyPoolId
	}
	if "" == name {
		return fault.EmptyFieldName
	}
	if "" == value {
		return fault.EmptyFieldValue
	}
	if len(name) > MaximumNameLength {
		return fault.FieldNameTooLong
	}
	if len(value) > MaximumValueLength {
		return fault.FieldValueTooLong
	}
	return nil
}

// RequestUpdate - validate and queue an update, never waits for
// the verification
//
// the caller must already be authenticated
func (g *Gateway) RequestUpdate(caller string, poolId string, name string, value string) (*Accepted, error) {
	a := g.tracker.Begin(caller, poolId, name, value)

	if err := Validate(caller, poolId, name, value); nil != err {
		g.log.Debugf("invalid: %s  error: %s", a.Id, err)
		_ = g.tracker.Transition(a.Id, pending.Validating, pending.Rejected)
		return nil, err
	}

	if err := g.tracker.Transition(a.Id, pending.Validating, pending.AwaitingVerification); nil != err {
		return nil, err
	}

	select {
	case g.queue <- a:
	default:
		g.log.Warnf("queue full: %s  pool: %q", a.Id, poolId)
		_ = g.tracker.Transition(a.Id, pending.AwaitingVerification, pending.Rejected)
		return nil, fault.QueueFull
	}

	g.log.Infof("accepted: %s  pool: %q  name: %q", a.Id, poolId, name)
	return &Accepted{
		Id: a.Id,
	}, nil
}
