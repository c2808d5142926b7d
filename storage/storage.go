// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/poolfields/fault"
)

// database engines
const (
	LevelDB = "leveldb"
	Bolt    = "bolt"
)

// access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// MaximumPageCount - largest number of records returned by one Page call
const MaximumPageCount = 100

// Entry - one record as returned by Page
type Entry struct {
	PoolId string `json:"pool_id"`
	Fields Fields `json:"fields"`
}

// Reader - read only view of the record store
type Reader interface {
	// Get - fields for a pool, false if the pool has no record
	Get(poolId string) (Fields, bool, error)

	// Count - number of pools holding at least one field
	Count() (uint64, error)

	// Page - up to count records in creation order beginning at
	// start, and the start value for the following page
	Page(start uint64, count int) ([]Entry, uint64, error)
}

// Store - read/write record store
type Store interface {
	Reader

	// Upsert - insert or overwrite a single field of a pool's
	// record, creating the record if necessary
	Upsert(poolId string, name string, value string) error

	Close() error
}

// Open - open or create a record store using the selected engine
func Open(engine string, fileName string, readOnly bool) (Store, error) {
	switch engine {
	case LevelDB, "":
		return openLevelDB(fileName, readOnly)
	case Bolt:
		return openBolt(fileName, readOnly)
	default:
		return nil, fault.DatabaseEngineInvalid
	}
}

// reject page sizes outside 0..MaximumPageCount
func checkCount(count int) error {
	if count < 0 || count > MaximumPageCount {
		return fault.InvalidCount
	}
	return nil
}

// true if the page can hold any records
func checkPage(start uint64, count int, total uint64) bool {
	return 0 != count && start < total
}
