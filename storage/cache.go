// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	defaultExpiration = 2 * time.Minute
	cleanupInterval   = 1 * time.Minute
)

// read through cache of single pool lookups
type cachedStore struct {
	Store
	sync.RWMutex // guards fill against invalidation
	cache        *cache.Cache
}

// NewCached - wrap a store so that Get is served from memory
//
// Upsert invalidates the pool's entry; pools that are not found are
// not cached since they may be created at any time
func NewCached(s Store, expiration time.Duration) Store {
	if expiration <= 0 {
		expiration = defaultExpiration
	}
	return &cachedStore{
		Store: s,
		cache: cache.New(expiration, cleanupInterval),
	}
}

// Get - fields for a pool, returned map is owned by the caller
func (c *cachedStore) Get(poolId string) (Fields, bool, error) {
	if obj, found := c.cache.Get(poolId); found {
		return obj.(Fields).Copy(), true, nil
	}

	c.RLock()
	defer c.RUnlock()

	fields, found, err := c.Store.Get(poolId)
	if nil != err || !found {
		return fields, found, err
	}

	c.cache.SetDefault(poolId, fields.Copy())
	return fields, true, nil
}

// Upsert - write through and drop any cached copy
func (c *cachedStore) Upsert(poolId string, name string, value string) error {
	c.Lock()
	defer c.Unlock()

	err := c.Store.Upsert(poolId, name, value)
	c.cache.Delete(poolId)
	return err
}

// Close - empty the cache and close the underlying store
func (c *cachedStore) Close() error {
	c.cache.Flush()
	return c.Store.Close()
}
