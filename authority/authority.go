// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority

import (
	"context"
)

// Whitelist - the whitelist authority
type Whitelist interface {
	// IsWhitelisted - true if the pool is approved, an error
	// means that no definite answer was obtained
	IsWhitelisted(ctx context.Context, poolId string) (bool, error)
}

// Pools - the pool authority
type Pools interface {
	// GetOwnerId - the administrative owner of the pool
	GetOwnerId(ctx context.Context, poolId string) (string, error)
}
