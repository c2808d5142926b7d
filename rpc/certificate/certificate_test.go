// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"encoding/hex"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/rpc/certificate"
	"github.com/bitmark-inc/poolfields/rpc/fixtures"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer := fixtures.Certificate()
	key := fixtures.Key()

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		cer,
		key,
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair, tlsConfig.Certificates[0], "wrong config")
}

func TestGetWhenInvalidPair(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, _, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		fixtures.Certificate(),
		"not a key",
	)
	assert.NotNil(t, err, "wrong Get")
}

func TestLoad(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	certificateFile := filepath.Join("testing", "test.crt")
	keyFile := filepath.Join("testing", "test.key")
	_ = ioutil.WriteFile(certificateFile, []byte(fixtures.Certificate()), 0600)
	_ = ioutil.WriteFile(keyFile, []byte(fixtures.Key()), 0600)

	_, fingerprint, err := certificate.Load(logger.New(fixtures.LogCategory), "test", certificateFile, keyFile)
	assert.Nil(t, err, "wrong Load")

	_, expected, _ := certificate.Get(logger.New(fixtures.LogCategory), "test", fixtures.Certificate(), fixtures.Key())
	assert.Equal(t, expected, fingerprint, "wrong fingerprint")

	_, _, err = certificate.Load(logger.New(fixtures.LogCategory), "test", "testing/missing.crt", keyFile)
	assert.NotNil(t, err, "missing file")
}

func TestPinnedClientConfig(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, fingerprint, _ := certificate.Get(logger.New(fixtures.LogCategory), "test", fixtures.Certificate(), fixtures.Key())
	pair, _ := tls.X509KeyPair([]byte(fixtures.Certificate()), []byte(fixtures.Key()))

	config, err := certificate.PinnedClientConfig(hex.EncodeToString(fingerprint[:]))
	assert.Nil(t, err, "pinned config")
	assert.Nil(t, config.VerifyPeerCertificate(pair.Certificate, nil), "matching certificate")

	other := sha3.Sum256([]byte("other"))
	config, _ = certificate.PinnedClientConfig(hex.EncodeToString(other[:]))
	assert.Equal(t, fault.FingerprintMismatch, config.VerifyPeerCertificate(pair.Certificate, nil), "mismatch")

	config, err = certificate.PinnedClientConfig("")
	assert.Nil(t, err, "empty fingerprint")
	assert.Nil(t, config.VerifyPeerCertificate, "no verification")

	_, err = certificate.PinnedClientConfig("zz")
	assert.Equal(t, fault.InvalidFingerprint, err, "bad hex")
}
