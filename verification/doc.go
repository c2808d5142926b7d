// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package verification accepts field update requests and obtains the
// two authority answers needed to resolve them
//
// the Gateway validates and queues a request then returns at once; a
// pool of Verifier workers asks both authorities concurrently and
// forwards a signed invocation to the resolver when both have replied
package verification
