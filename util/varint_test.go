// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/poolfields/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{137, []byte{0x89, 0x01}},
	{255, []byte{0xff, 0x01}},
	{256, []byte{0x80, 0x02}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
	{0xfffffffffffffffe, []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

var varint64TruncatedTests = [][]byte{
	{},
	{0x80},
	{0xff},
	{0x80, 0x80},
	{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
}

func TestToVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		if result := util.ToVarint64(item.value); !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%x) -> %x  expected: %x", i, item.value, result, item.encoded)
		}
	}
}

func TestFromVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		b := append([]byte{}, item.encoded...)
		b = append(b, 0xff, 0x97, 0x23)

		result, count := util.FromVarint64(b)
		if result != item.value {
			t.Errorf("%d: FromVarint64(%x) -> %d  expected: %d", i, b, result, item.value)
		}
		if count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) count: %d  expected: %d", i, b, count, len(item.encoded))
		}
	}
}

func TestFromVarint64Truncated(t *testing.T) {
	for i, b := range varint64TruncatedTests {
		result, count := util.FromVarint64(b)
		if 0 != result || 0 != count {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: 0, 0", i, b, result, count)
		}
	}
}

func TestAppendExtractBytes(t *testing.T) {
	buffer := util.AppendBytes(nil, []byte("rate"))
	buffer = util.AppendBytes(buffer, []byte("0.05"))
	buffer = util.AppendBytes(buffer, []byte{})

	first, n1 := util.ExtractBytes(buffer)
	assert.Equal(t, []byte("rate"), first, "first item")
	assert.Equal(t, 5, n1, "first length")

	second, n2 := util.ExtractBytes(buffer[n1:])
	assert.Equal(t, []byte("0.05"), second, "second item")

	third, n3 := util.ExtractBytes(buffer[n1+n2:])
	assert.Equal(t, 0, len(third), "empty item")
	assert.Equal(t, 1, n3, "empty item length")

	truncated, n := util.ExtractBytes([]byte{0x05, 'a', 'b'})
	assert.Nil(t, truncated, "truncated data")
	assert.Equal(t, 0, n, "truncated count")
}
