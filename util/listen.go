// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/poolfields/fault"
)

// ListenAddress - a validated listen address with its network type
type ListenAddress struct {
	Network string // tcp4, tcp6 or tcp for dual stack
	Address string // canonical IP:Port
}

// ParseListen - convert a configured listen string to canonical form
//
// examples:
//   IPv4:        127.0.0.1:1234
//   IPv6:        [::1]:1234
//   dual stack:  *:1234  (becomes [::]:1234 on network "tcp")
func ParseListen(listen string) (*ListenAddress, error) {
	listen = strings.TrimSpace(listen)
	if "" == listen {
		return nil, fault.InvalidIpAddress
	}

	dualStack := false
	if '*' == listen[0] {
		dualStack = true
		listen = "[::]" + strings.TrimPrefix(listen, "*")
	}

	host, port, err := net.SplitHostPort(listen)
	if nil != err {
		return nil, fault.InvalidIpAddress
	}

	ip := net.ParseIP(strings.TrimSpace(host))
	if nil == ip {
		return nil, fault.InvalidIpAddress
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return nil, fault.InvalidPortNumber
	}

	p := strconv.Itoa(numericPort)
	switch {
	case dualStack:
		return &ListenAddress{Network: "tcp", Address: "[::]:" + p}, nil
	case nil != ip.To4():
		return &ListenAddress{Network: "tcp4", Address: ip.String() + ":" + p}, nil
	default:
		return &ListenAddress{Network: "tcp6", Address: "[" + ip.String() + "]:" + p}, nil
	}
}
