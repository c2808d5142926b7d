// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a configuration file into a structure
//
// The reader is selected by the file extension:
//
//   .lua          executed as a Lua script that must return a table
//   .toml         TOML document
//   .yaml, .yml   YAML document
//
// For Lua most of base Lua is available such as reading files to set
// key data and getenv to extract environment supplied items.
package configuration
