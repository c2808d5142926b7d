// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resolver applies field updates once both verification
// results are known
//
// this is the only code that writes to the record store and all
// resolutions run on a single loop
package resolver
