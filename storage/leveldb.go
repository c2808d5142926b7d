// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
)

// key prefixes
const (
	fieldsPrefix = 'F'
	indexPrefix  = 'I'
	countPrefix  = 'N'
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

type levelDBStore struct {
	sync.RWMutex
	log *logger.L
	db  *leveldb.DB
}

func openLevelDB(fileName string, readOnly bool) (Store, error) {
	log := logger.New("storage")

	db, version, err := getDB(fileName, readOnly)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		db.Close()
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	log.Infof("opened: %q  version: 0x%x  read only: %t", fileName, version, readOnly)

	return &levelDBStore{
		log: log,
		db:  db,
	}, nil
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// prepend the prefix onto the key
func prefixKey(prefix byte, key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = prefix
	return append(prefixedKey, key...)
}

func indexKey(index uint64) []byte {
	key := make([]byte, 9)
	key[0] = indexPrefix
	binary.BigEndian.PutUint64(key[1:], index)
	return key
}

// anything that can read: the database or one of its snapshots
type ldbGetter interface {
	Get(key []byte, ro *ldb_opt.ReadOptions) ([]byte, error)
}

func getFields(db ldbGetter, poolId string) (Fields, bool, error) {
	buffer, err := db.Get(prefixKey(fieldsPrefix, []byte(poolId)), nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, err
	}
	fields, err := UnpackFields(buffer)
	if nil != err {
		return nil, false, err
	}
	return fields, true, nil
}

func getCount(db ldbGetter) (uint64, error) {
	buffer, err := db.Get([]byte{countPrefix}, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	if 8 != len(buffer) {
		return 0, fmt.Errorf("corrupt record count length: %d", len(buffer))
	}
	return binary.BigEndian.Uint64(buffer), nil
}

// Get - fields for a pool
func (s *levelDBStore) Get(poolId string) (Fields, bool, error) {
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return nil, false, fault.DatabaseIsNotSet
	}
	return getFields(s.db, poolId)
}

// Count - number of records
func (s *levelDBStore) Count() (uint64, error) {
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return 0, fault.DatabaseIsNotSet
	}
	return getCount(s.db)
}

// Page - records in creation order from a consistent snapshot
func (s *levelDBStore) Page(start uint64, count int) ([]Entry, uint64, error) {
	if err := checkCount(count); nil != err {
		return nil, start, err
	}

	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return nil, start, fault.DatabaseIsNotSet
	}

	snapshot, err := s.db.GetSnapshot()
	if nil != err {
		return nil, start, err
	}
	defer snapshot.Release()

	total, err := getCount(snapshot)
	if nil != err {
		return nil, start, err
	}

	if !checkPage(start, count, total) {
		return []Entry{}, start, nil
	}

	maxRange := ldb_util.Range{
		Start: indexKey(start),         // Start of key range, included in the range
		Limit: []byte{indexPrefix + 1}, // Limit of key range, excluded from the range
	}
	iter := snapshot.NewIterator(&maxRange, nil)
	defer iter.Release()

	entries := make([]Entry, 0, count)
	for len(entries) < count && iter.Next() {
		poolId := string(iter.Value())
		fields, found, err := getFields(snapshot, poolId)
		if nil != err {
			return nil, start, err
		}
		if !found {
			logger.Panicf("storage: index entry: %x has no record for: %q", iter.Key(), poolId)
		}
		entries = append(entries, Entry{
			PoolId: poolId,
			Fields: fields,
		})
	}
	if err := iter.Error(); nil != err {
		return nil, start, err
	}

	return entries, start + uint64(len(entries)), nil
}

// Upsert - insert or overwrite one field in a single atomic batch
func (s *levelDBStore) Upsert(poolId string, name string, value string) error {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return fault.DatabaseIsNotSet
	}

	fields, found, err := getFields(s.db, poolId)
	if nil != err {
		return err
	}

	batch := new(leveldb.Batch)

	if !found {
		n, err := getCount(s.db)
		if nil != err {
			return err
		}
		fields = make(Fields)

		next := make([]byte, 8)
		binary.BigEndian.PutUint64(next, n+1)

		batch.Put(indexKey(n), []byte(poolId))
		batch.Put([]byte{countPrefix}, next)
	}

	fields[name] = value
	batch.Put(prefixKey(fieldsPrefix, []byte(poolId)), fields.Pack())

	return s.db.Write(batch, nil)
}

// Close - close the database
func (s *levelDBStore) Close() error {
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
