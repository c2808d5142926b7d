// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk record store
//
// Each record maps a pool id to a set of named field values.  Records
// are created on first write, never deleted, and are enumerated in
// the order they were first created.
//
// Two engines are available, LevelDB (default) and Bolt.
//
// LevelDB layout:
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++      = concatenation of byte data
// 3. index   = creation order as big endian uint64 (8 bytes)
// 4. fields  = count(varint) ++ [ len(varint) ++ name ++ len(varint) ++ value ]
//              sorted by name
//
//   F ++ pool id               - field record
//                                data: fields
//   I ++ index                 - creation order
//                                data: pool id
//   N                          - number of records
//                                data: big endian uint64 (8 bytes)
//   0x00 ++ "VERSION"          - database version
//                                data: big endian uint32 (4 bytes)
//
// Bolt layout:
//
//   bucket "fields"  pool id -> fields
//   bucket "order"   index   -> pool id  (index from the bucket sequence)
package storage
