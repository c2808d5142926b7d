// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authority provides access to the two external services
// consulted before a field update is applied
//
// the whitelist authority answers whether a pool is approved and the
// pool itself answers who its administrative owner is
package authority
