// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/poolfields/account"
)

func TestSignatureText(t *testing.T) {
	s := account.Signature{0x01, 0xab, 0xff}

	assert.Equal(t, "01abff", s.String(), "string")
	assert.Equal(t, "<signature:01abff>", fmt.Sprintf("%#v", s), "go string")

	buffer, err := json.Marshal(s)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `"01abff"`, string(buffer), "JSON")

	var s2 account.Signature
	err = json.Unmarshal(buffer, &s2)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, s, s2, "round trip")

	err = json.Unmarshal([]byte(`"0g"`), &s2)
	assert.NotNil(t, err, "invalid hex accepted")
}
