// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resolver

import (
	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/util"
)

// Results - the answers from the two authorities
//
// a non-empty Failure means that at least one authority did not give
// a definite answer and the other fields must be ignored
type Results struct {
	Whitelisted bool   `json:"whitelisted"`
	OwnerId     string `json:"owner_id"`
	Failure     string `json:"failure,omitempty"`
}

// Invocation - request to resolve one authorisation
type Invocation struct {
	Sender        *account.Account      `json:"sender"`
	Authorisation pending.Authorisation `json:"authorisation"`
	Results       Results               `json:"results"`
	Signature     account.Signature     `json:"signature,omitempty"`
}

// NewInvocation - create an invocation signed by key
func NewInvocation(key *account.PrivateKey, authorisation *pending.Authorisation, results Results) *Invocation {
	inv := &Invocation{
		Sender:        key.Account(),
		Authorisation: *authorisation,
		Results:       results,
	}
	inv.Signature = key.Sign(inv.Pack())
	return inv
}

// Pack - the signed portion of an invocation
func (inv *Invocation) Pack() []byte {
	var sender []byte
	if nil != inv.Sender {
		sender = inv.Sender.Bytes()
	}
	buffer := util.AppendBytes(nil, sender)
	buffer = append(buffer, inv.Authorisation.Pack()...)
	if inv.Results.Whitelisted {
		buffer = append(buffer, 1)
	} else {
		buffer = append(buffer, 0)
	}
	buffer = util.AppendBytes(buffer, []byte(inv.Results.OwnerId))
	return util.AppendBytes(buffer, []byte(inv.Results.Failure))
}
