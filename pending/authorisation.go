// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pending

import (
	"time"

	"github.com/bitmark-inc/poolfields/util"
)

// Authorisation - the continuation captured when an update is
// requested and carried unchanged to its resolution
type Authorisation struct {
	Id      string    `json:"id"`
	Caller  string    `json:"caller"`
	PoolId  string    `json:"pool_id"`
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Created time.Time `json:"created"`
}

// Pack - deterministic binary form for signing
func (a *Authorisation) Pack() []byte {
	buffer := util.AppendBytes(nil, []byte(a.Id))
	buffer = util.AppendBytes(buffer, []byte(a.Caller))
	buffer = util.AppendBytes(buffer, []byte(a.PoolId))
	buffer = util.AppendBytes(buffer, []byte(a.Name))
	buffer = util.AppendBytes(buffer, []byte(a.Value))
	return append(buffer, util.ToVarint64(uint64(a.Created.UnixNano()))...)
}
