// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/poolfields/fault"
)

// StaticOwners - fixed pool → owner table, for local deployments
type StaticOwners map[string]string

// GetOwnerId - owner from the table
//
// an unknown pool cannot answer so this is a transport failure and
// not a negative result
func (s StaticOwners) GetOwnerId(ctx context.Context, poolId string) (string, error) {
	if err := ctx.Err(); nil != err {
		return "", fmt.Errorf("%w: %s", fault.TransportFailure, err)
	}
	owner, ok := s[poolId]
	if !ok {
		return "", fmt.Errorf("%w: %w: %q", fault.TransportFailure, fault.PoolNotFound, poolId)
	}
	return owner, nil
}
