// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fields

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/rpc/ratelimit"
	"github.com/bitmark-inc/poolfields/storage"
	"github.com/bitmark-inc/poolfields/util"
	"github.com/bitmark-inc/poolfields/verification"
)

const (
	rateLimitFields = 200
	rateBurstFields = 100
)

// MaximumClockSkew - accepted difference between a request timestamp
// and local time
const MaximumClockSkew = 5 * time.Minute

// Gateway - the part of the verification gateway used here
type Gateway interface {
	RequestUpdate(caller string, poolId string, name string, value string) (*verification.Accepted, error)
}

// Fields - type for RPC calls
type Fields struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Gateway   Gateway
	Store     storage.Reader
	IsTesting func() bool
}

// New - create the Fields RPC handler
func New(log *logger.L, gateway Gateway, store storage.Reader, isTestingFunc func() bool) *Fields {
	return &Fields{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitFields, rateBurstFields),
		Gateway:   gateway,
		Store:     store,
		IsTesting: isTestingFunc,
	}
}

// ---

// UpdateArguments - signed field update request
type UpdateArguments struct {
	Caller    *account.Account  `json:"caller"`
	PoolId    string            `json:"pool_id"`
	Name      string            `json:"name"`
	Value     string            `json:"value"`
	Timestamp int64             `json:"timestamp,string"`
	Signature account.Signature `json:"signature"`
}

// UpdateReply - result of an update request
type UpdateReply struct {
	Accepted bool   `json:"accepted"`
	Id       string `json:"id"`
}

// Pack - the portion of the arguments covered by the signature
func (arguments *UpdateArguments) Pack() []byte {
	var caller []byte
	if nil != arguments.Caller {
		caller = arguments.Caller.Bytes()
	}
	buffer := util.AppendBytes(nil, caller)
	buffer = util.AppendBytes(buffer, []byte(arguments.PoolId))
	buffer = util.AppendBytes(buffer, []byte(arguments.Name))
	buffer = util.AppendBytes(buffer, []byte(arguments.Value))
	return append(buffer, util.ToVarint64(uint64(arguments.Timestamp))...)
}

// Sign - fill in caller, timestamp and signature
func (arguments *UpdateArguments) Sign(key *account.PrivateKey, now time.Time) {
	arguments.Caller = key.Account()
	arguments.Timestamp = now.Unix()
	arguments.Signature = key.Sign(arguments.Pack())
}

// Update - request a field update, the result only reports whether
// the request was accepted for verification
func (f *Fields) Update(arguments *UpdateArguments, reply *UpdateReply) error {

	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Caller {
		return fault.MissingParameters
	}

	if arguments.Caller.IsTesting() != f.IsTesting() {
		return fault.WrongNetworkForPublicKey
	}

	requested := time.Unix(arguments.Timestamp, 0)
	skew := time.Since(requested)
	if skew > MaximumClockSkew || skew < -MaximumClockSkew {
		return fault.RequestExpired
	}

	if err := arguments.Caller.CheckSignature(arguments.Pack(), arguments.Signature); nil != err {
		f.Log.Warnf("update: caller: %s  signature error: %s", arguments.Caller, err)
		return err
	}

	accepted, err := f.Gateway.RequestUpdate(arguments.Caller.String(), arguments.PoolId, arguments.Name, arguments.Value)
	if nil != err {
		return err
	}

	reply.Accepted = true
	reply.Id = accepted.Id

	return nil
}

// ---

// GetArguments - arguments for a single pool
type GetArguments struct {
	PoolId string `json:"pool_id"`
}

// GetReply - fields of a pool, null if the pool has no record
type GetReply struct {
	Fields storage.Fields `json:"fields"`
}

// Get - fields for one pool
func (f *Fields) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	fields, found, err := f.Store.Get(arguments.PoolId)
	if nil != err {
		return err
	}
	if found {
		reply.Fields = fields
	}

	return nil
}

// ---

// ListArguments - page of records
type ListArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// ListReply - records in creation order
type ListReply struct {
	Pools []storage.Entry `json:"pools"`
	Next  uint64          `json:"next,string"`
}

// List - records from Start, at most MaximumPageCount
func (f *Fields) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.LimitPage(f.Limiter, arguments.Count, storage.MaximumPageCount); nil != err {
		return err
	}

	entries, next, err := f.Store.Page(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Pools = entries
	reply.Next = next

	return nil
}

// ---

// CountArguments - empty arguments
type CountArguments struct{}

// CountReply - number of pools
type CountReply struct {
	Count uint64 `json:"count"`
}

// Count - number of pools holding at least one field
func (f *Fields) Count(_ *CountArguments, reply *CountReply) error {

	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	n, err := f.Store.Count()
	if nil != err {
		return err
	}
	reply.Count = n

	return nil
}
