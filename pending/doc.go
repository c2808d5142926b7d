// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pending tracks field updates that have been accepted but
// not yet resolved
//
// Each authorisation moves through:
//
//   Validating → AwaitingVerification → Resolving → Committed
//        ↓                ↓                   ↓
//     Rejected         Rejected            Rejected
//
// entries are held in memory only and expire after a fixed time
package pending
