// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/authority"
	"github.com/bitmark-inc/poolfields/background"
	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/rpc/certificate"
)

// select the whitelist and pool owner sources from the configuration
//
// any background processes the sources need are returned so that
// they start and stop with the verification workers
func authorities(configuration *VerificationType) (authority.Whitelist, authority.Pools, background.Processes, error) {

	processes := background.Processes{}

	var whitelist authority.Whitelist
	if "" != configuration.Whitelist.File {
		w, err := authority.NewFileWhitelist(configuration.Whitelist.File)
		if nil != err {
			return nil, nil, nil, err
		}
		whitelist = w
		processes = append(processes, w)
	} else {
		if "" == configuration.Whitelist.Connect {
			return nil, nil, nil, fault.MissingParameters
		}
		tlsConfig, err := clientTLS(configuration.Whitelist.Fingerprint)
		if nil != err {
			return nil, nil, nil, err
		}
		whitelist = authority.NewClient(
			logger.New("whitelist"),
			configuration.Whitelist.Connect,
			configuration.Whitelist.Authority,
			tlsConfig,
		)
	}

	var pools authority.Pools
	if 0 != len(configuration.Pools.Owners) {
		pools = authority.StaticOwners(configuration.Pools.Owners)
	} else {
		if "" == configuration.Pools.Connect {
			return nil, nil, nil, fault.MissingParameters
		}
		tlsConfig, err := clientTLS(configuration.Pools.Fingerprint)
		if nil != err {
			return nil, nil, nil, err
		}
		pools = authority.NewClient(
			logger.New("pools"),
			configuration.Pools.Connect,
			"",
			tlsConfig,
		)
	}

	return whitelist, pools, processes, nil
}

// a blank fingerprint leaves the certificate unchecked
func clientTLS(fingerprint string) (*tls.Config, error) {
	if "" == fingerprint {
		return nil, nil
	}
	return certificate.PinnedClientConfig(fingerprint)
}
