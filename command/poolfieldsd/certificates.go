// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/util"
)

const (
	certificateLifetime = 10 * 365 * 24 * time.Hour
	identityPrefix      = "PRIVATE:"
)

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if util.EnsureFileExists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "poolfieldsd self signed cert for: " + name
	validUntil := time.Now().Add(certificateLifetime)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// create a new identity key file
func makeIdentity(testnet bool, fileName string) (*account.PrivateKey, error) {
	if util.EnsureFileExists(fileName) {
		return nil, fault.IdentityFileAlreadyExists
	}

	key, err := account.NewPrivateKey(testnet)
	if nil != err {
		return nil, err
	}

	data := identityPrefix + key.String() + "\n"
	if err = ioutil.WriteFile(fileName, []byte(data), 0600); nil != err {
		return nil, err
	}

	return key, nil
}

// read an identity key file
func readIdentity(fileName string) (*account.PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	text := strings.TrimSpace(string(data))
	if !strings.HasPrefix(text, identityPrefix) {
		return nil, fault.NotPrivateKey
	}

	return account.PrivateKeyFromBase58(strings.TrimPrefix(text, identityPrefix))
}
