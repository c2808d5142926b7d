// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pending

import (
	"github.com/bitmark-inc/poolfields/fault"
)

// State - position of an authorisation in the protocol
type State int

// all possible states
const (
	Validating State = iota
	AwaitingVerification
	Resolving
	Committed
	Rejected
)

var stateNames = map[State]string{
	Validating:           "validating",
	AwaitingVerification: "awaiting-verification",
	Resolving:            "resolving",
	Committed:            "committed",
	Rejected:             "rejected",
}

// permitted transitions
var edges = map[State][]State{
	Validating:           {AwaitingVerification, Rejected},
	AwaitingVerification: {Resolving, Rejected},
	Resolving:            {Committed, Rejected},
}

// String - printable state name
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "*unknown*"
}

// IsTerminal - true if no further transition is possible
func (s State) IsTerminal() bool {
	return Committed == s || Rejected == s
}

// CanTransition - true if from → to is a permitted edge
func CanTransition(from State, to State) bool {
	for _, s := range edges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// MarshalText - convert state to text
func (s State) MarshalText() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fault.InvalidTransition
	}
	return []byte(name), nil
}

// UnmarshalText - convert text to state
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fault.InvalidTransition
}
