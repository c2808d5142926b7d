// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"io/ioutil"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
)

// Get - verify that a set of listener parameters are valid
// and return the certificate
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fin = Fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Load - read PEM files and call Get
func Load(log *logger.L, name, certificateFileName, keyFileName string) (*tls.Config, [32]byte, error) {
	certificate, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s: read certificate: %q  error: %s", name, certificateFileName, err)
		return nil, [32]byte{}, err
	}
	key, err := ioutil.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s: read private key: %q  error: %s", name, keyFileName, err)
		return nil, [32]byte{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// Fingerprint - compute the fingerprint of a certificate
//
// FreeBSD: openssl x509 -outform DER -in poolfieldsd-local-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

// PinnedClientConfig - client TLS configuration accepting only a
// server whose certificate has the given hex fingerprint
//
// an empty fingerprint accepts any certificate
func PinnedClientConfig(fingerprint string) (*tls.Config, error) {
	config := &tls.Config{
		InsecureSkipVerify: true,
	}
	if "" == fingerprint {
		return config, nil
	}

	expected, err := hex.DecodeString(strings.TrimSpace(fingerprint))
	if nil != err || 32 != len(expected) {
		return nil, fault.InvalidFingerprint
	}

	config.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if 0 == len(rawCerts) {
			return fault.InvalidFingerprint
		}
		actual := Fingerprint(rawCerts[0])
		if !bytes.Equal(expected, actual[:]) {
			return fault.FingerprintMismatch
		}
		return nil
	}
	return config, nil
}
