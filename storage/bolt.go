// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
)

// bucket names
var (
	fieldsBucket = []byte("fields")
	orderBucket  = []byte("order")
)

const boltOpenTimeout = 2 * time.Second

type boltStore struct {
	sync.RWMutex
	log *logger.L
	db  *bolt.DB
}

func openBolt(fileName string, readOnly bool) (Store, error) {
	log := logger.New("storage")

	options := &bolt.Options{
		Timeout:  boltOpenTimeout,
		ReadOnly: readOnly,
	}
	db, err := bolt.Open(fileName, 0600, options)
	if nil != err {
		return nil, err
	}

	if !readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			for _, name := range [][]byte{fieldsBucket, orderBucket} {
				if _, err := tx.CreateBucketIfNotExists(name); nil != err {
					return err
				}
			}
			return nil
		})
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	log.Infof("opened: %q  read only: %t", fileName, readOnly)

	return &boltStore{
		log: log,
		db:  db,
	}, nil
}

func orderKey(index uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, index)
	return key
}

func boltFields(tx *bolt.Tx, poolId string) (Fields, bool, error) {
	b := tx.Bucket(fieldsBucket)
	if nil == b {
		return nil, false, nil
	}
	buffer := b.Get([]byte(poolId))
	if nil == buffer {
		return nil, false, nil
	}
	fields, err := UnpackFields(buffer)
	if nil != err {
		return nil, false, err
	}
	return fields, true, nil
}

func boltCount(tx *bolt.Tx) uint64 {
	b := tx.Bucket(orderBucket)
	if nil == b {
		return 0
	}
	return b.Sequence()
}

// Get - fields for a pool
func (s *boltStore) Get(poolId string) (fields Fields, found bool, err error) {
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return nil, false, fault.DatabaseIsNotSet
	}

	err = s.db.View(func(tx *bolt.Tx) error {
		fields, found, err = boltFields(tx, poolId)
		return err
	})
	return
}

// Count - number of records
func (s *boltStore) Count() (n uint64, err error) {
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return 0, fault.DatabaseIsNotSet
	}

	err = s.db.View(func(tx *bolt.Tx) error {
		n = boltCount(tx)
		return nil
	})
	return
}

// Page - records in creation order, a View transaction gives a
// consistent snapshot
func (s *boltStore) Page(start uint64, count int) ([]Entry, uint64, error) {
	if err := checkCount(count); nil != err {
		return nil, start, err
	}

	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return nil, start, fault.DatabaseIsNotSet
	}

	entries := []Entry{}
	err := s.db.View(func(tx *bolt.Tx) error {
		if !checkPage(start, count, boltCount(tx)) {
			return nil
		}

		cursor := tx.Bucket(orderBucket).Cursor()
		for k, v := cursor.Seek(orderKey(start)); nil != k && len(entries) < count; k, v = cursor.Next() {
			poolId := string(v)
			fields, found, err := boltFields(tx, poolId)
			if nil != err {
				return err
			}
			if !found {
				logger.Panicf("storage: order entry: %x has no record for: %q", k, poolId)
			}
			entries = append(entries, Entry{
				PoolId: poolId,
				Fields: fields,
			})
		}
		return nil
	})
	if nil != err {
		return nil, start, err
	}
	return entries, start + uint64(len(entries)), nil
}

// Upsert - insert or overwrite one field in a single transaction
func (s *boltStore) Upsert(poolId string, name string, value string) error {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return fault.DatabaseIsNotSet
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		fields, found, err := boltFields(tx, poolId)
		if nil != err {
			return err
		}

		if !found {
			order := tx.Bucket(orderBucket)
			n, err := order.NextSequence()
			if nil != err {
				return err
			}
			// sequence starts at 1, index starts at 0
			if err := order.Put(orderKey(n-1), []byte(poolId)); nil != err {
				return err
			}
			fields = make(Fields)
		}

		fields[name] = value
		return tx.Bucket(fieldsBucket).Put([]byte(poolId), fields.Pack())
	})
}

// Close - close the database
func (s *boltStore) Close() error {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return fault.NotInitialised
	}
	err := s.db.Close()
	s.db = nil
	s.log.Info("closed")
	return err
}
