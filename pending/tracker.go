// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pending

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
)

// the maximum time an authorisation is remembered, this must be longer
// than the verification and resolution timeouts combined
const (
	DefaultExpiry   = 60 * time.Minute
	cleanupInterval = 5 * time.Minute
)

type entry struct {
	authorisation *Authorisation
	state         State
}

// Counters - totals since start
type Counters struct {
	Live      int    `json:"live"`
	Committed uint64 `json:"committed"`
	Rejected  uint64 `json:"rejected"`
}

// Tracker - table of authorisations in progress
type Tracker struct {
	sync.Mutex
	log       *logger.L
	table     *cache.Cache
	committed uint64
	rejected  uint64
}

// NewTracker - create an empty table
func NewTracker(expiry time.Duration) *Tracker {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	log := logger.New("pending")

	t := &Tracker{
		log:   log,
		table: cache.New(expiry, cleanupInterval),
	}
	t.table.OnEvicted(func(id string, item interface{}) {
		e := item.(*entry)
		if !e.state.IsTerminal() {
			log.Warnf("expired: %s  state: %s  pool: %q", id, e.state, e.authorisation.PoolId)
		}
	})
	return t
}

// Begin - record a new authorisation in the Validating state
func (t *Tracker) Begin(caller string, poolId string, name string, value string) *Authorisation {
	a := &Authorisation{
		Id:      uuid.New().String(),
		Caller:  caller,
		PoolId:  poolId,
		Name:    name,
		Value:   value,
		Created: time.Now().UTC(),
	}

	t.table.SetDefault(a.Id, &entry{
		authorisation: a,
		state:         Validating,
	})
	t.log.Debugf("begin: %s  pool: %q  name: %q", a.Id, poolId, name)
	return a
}

// Transition - move an authorisation from one state to another
//
// fails if the authorisation is not in the expected state or if
// the edge is not permitted
func (t *Tracker) Transition(id string, from State, to State) error {
	if !CanTransition(from, to) {
		return fault.InvalidTransition
	}

	t.Lock()
	defer t.Unlock()

	item, found := t.table.Get(id)
	if !found {
		return fault.AuthorisationNotFound
	}
	e := item.(*entry)
	if e.state != from {
		t.log.Errorf("transition: %s  from: %s  to: %s  actual: %s", id, from, to, e.state)
		return fault.InvalidTransition
	}
	e.state = to

	switch to {
	case Committed:
		atomic.AddUint64(&t.committed, 1)
	case Rejected:
		atomic.AddUint64(&t.rejected, 1)
	}

	t.log.Debugf("transition: %s  %s → %s", id, from, to)
	return nil
}

// State - current state of an authorisation
func (t *Tracker) State(id string) (State, error) {
	t.Lock()
	defer t.Unlock()

	item, found := t.table.Get(id)
	if !found {
		return Validating, fault.AuthorisationNotFound
	}
	return item.(*entry).state, nil
}

// Get - the authorisation for an id
func (t *Tracker) Get(id string) (*Authorisation, error) {
	item, found := t.table.Get(id)
	if !found {
		return nil, fault.AuthorisationNotFound
	}
	return item.(*entry).authorisation, nil
}

// Counters - number of live authorisations and terminal totals
func (t *Tracker) Counters() Counters {
	t.Lock()
	live := 0
	for _, item := range t.table.Items() {
		if !item.Object.(*entry).state.IsTerminal() {
			live += 1
		}
	}
	t.Unlock()

	return Counters{
		Live:      live,
		Committed: atomic.LoadUint64(&t.committed),
		Rejected:  atomic.LoadUint64(&t.rejected),
	}
}
