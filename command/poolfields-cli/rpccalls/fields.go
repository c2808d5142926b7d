// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"time"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/rpc/fields"
)

// UpdateData - a field update to be signed by the caller
type UpdateData struct {
	Caller *account.PrivateKey
	PoolId string
	Name   string
	Value  string
}

// Update - request a field update, the result is only an acceptance
// and the outcome is visible later through Get
func (client *Client) Update(data *UpdateData) (*fields.UpdateReply, error) {

	arguments := &fields.UpdateArguments{
		PoolId: data.PoolId,
		Name:   data.Name,
		Value:  data.Value,
	}
	arguments.Sign(data.Caller, time.Now())

	client.printJson("Update Request", arguments)

	var reply fields.UpdateReply
	if err := client.client.Call("Fields.Update", arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("Update Reply", reply)

	return &reply, nil
}

// Get - fields of a single pool
func (client *Client) Get(poolId string) (*fields.GetReply, error) {
	arguments := &fields.GetArguments{
		PoolId: poolId,
	}

	client.printJson("Get Request", arguments)

	var reply fields.GetReply
	if err := client.client.Call("Fields.Get", arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// List - a page of pools in insertion order
func (client *Client) List(start uint64, count int) (*fields.ListReply, error) {
	arguments := &fields.ListArguments{
		Start: start,
		Count: count,
	}

	client.printJson("List Request", arguments)

	var reply fields.ListReply
	if err := client.client.Call("Fields.List", arguments, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}

// Count - number of pools with fields
func (client *Client) Count() (*fields.CountReply, error) {
	var reply fields.CountReply
	if err := client.client.Call("Fields.Count", &fields.CountArguments{}, &reply); nil != err {
		return nil, err
	}

	return &reply, nil
}
