// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"

	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/util"
)

// Fields - the named values attached to a pool
type Fields map[string]string

// errors local to decoding
const (
	errTruncatedFields = fault.ProcessError("truncated field record")
)

// Pack - deterministic binary form, names in sorted order
func (fields Fields) Pack() []byte {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	buffer := util.ToVarint64(uint64(len(names)))
	for _, name := range names {
		buffer = util.AppendBytes(buffer, []byte(name))
		buffer = util.AppendBytes(buffer, []byte(fields[name]))
	}
	return buffer
}

// UnpackFields - decode the output of Pack
func UnpackFields(buffer []byte) (Fields, error) {
	count, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, errTruncatedFields
	}
	buffer = buffer[n:]

	fields := make(Fields)
	for i := uint64(0); i < count; i += 1 {
		name, n := util.ExtractBytes(buffer)
		if 0 == n {
			return nil, errTruncatedFields
		}
		buffer = buffer[n:]

		value, n := util.ExtractBytes(buffer)
		if 0 == n {
			return nil, errTruncatedFields
		}
		buffer = buffer[n:]

		fields[string(name)] = string(value)
	}
	return fields, nil
}

// Copy - independent copy of the fields
func (fields Fields) Copy() Fields {
	c := make(Fields, len(fields))
	for k, v := range fields {
		c[k] = v
	}
	return c
}
