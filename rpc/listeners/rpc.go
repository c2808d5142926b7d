// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/counter"
	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/util"
)

const (
	logName = "client_rpc"
)

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections" toml:"maximum_connections" yaml:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen" toml:"listen" yaml:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate" toml:"certificate" yaml:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key" toml:"private_key" yaml:"private_key"`
}

type rpcListener struct {
	sync.Mutex
	log            *logger.L
	count          *counter.Counter
	server         *rpc.Server
	maxConnections uint64
	tlsConfig      *tls.Config
	addresses      []*util.ListenAddress
	listeners      []net.Listener
}

// NewRPC - create a JSON-RPC over TLS listener
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	addresses, err := parseListenAddresses(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	r := &rpcListener{
		log:            log,
		count:          count,
		server:         server,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      tlsConfig,
		addresses:      addresses,
	}
	return r, nil
}

// Serve - start accepting on every listen address
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for _, address := range r.addresses {
		r.log.Infof("starting RPC server: %s", address.Address)
		listener, err := tls.Listen(address.Network, address.Address, r.tlsConfig)
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			r.closeAll()
			return err
		}
		r.listeners = append(r.listeners, listener)

		go doServeRPC(listener, r.server, r.maxConnections, r.log, r.count)
	}
	return nil
}

// Close - stop accepting new connections
func (r *rpcListener) Close() error {
	r.Lock()
	defer r.Unlock()
	r.closeAll()
	return nil
}

func (r *rpcListener) closeAll() {
	for _, listener := range r.listeners {
		_ = listener.Close()
	}
	r.listeners = nil
}

func doServeRPC(listen net.Listener, server *rpc.Server, maximumConnections uint64, log *logger.L, count *counter.Counter) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			log.Infof("rpc accept terminated: %s", err)
			break
		}
		if !count.Acquire(maximumConnections) {
			log.Warnf("connection limit reached, rejecting: %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		go func() {
			server.ServeCodec(jsonrpc.NewServerCodec(conn))
			_ = conn.Close()
			count.Decrement()
		}()
	}
}

func parseListenAddresses(listen []string, log *logger.L) ([]*util.ListenAddress, error) {
	addresses := make([]*util.ListenAddress, 0, len(listen))
	for _, l := range listen {
		address, err := util.ParseListen(l)
		if nil != err {
			log.Errorf("listen: %q  error: %s", l, err)
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}
