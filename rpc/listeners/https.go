// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/rpc/handler"
	"github.com/bitmark-inc/poolfields/util"
)

const (
	httpsLogName       = "http_rpc"
	minConnectionCount = 1
	readWriteTimeout   = 10 * time.Second
	shutdownTimeout    = 5 * time.Second
	keepAlivePeriod    = 3 * time.Minute
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections" toml:"maximum_connections" yaml:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen" toml:"listen" yaml:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate" toml:"certificate" yaml:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key" toml:"private_key" yaml:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow" toml:"allow" yaml:"allow"`
}

type httpsListener struct {
	sync.Mutex
	log       *logger.L
	addresses []*util.ListenAddress
	tlsConfig *tls.Config
	mux       *http.ServeMux
	servers   []*http.Server
}

// NewHTTPS - create the HTTPS listener, returns nil if no listen addresses
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	addresses, err := parseListenAddresses(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	// create access control and format strings to match http.Request.RemoteAddr
	local := make(map[string][]*net.IPNet)
	for path, cidrs := range configuration.Allow {
		set := make([]*net.IPNet, len(cidrs))
		local[path] = set
		for i, ip := range cidrs {
			_, cidr, err := net.ParseCIDR(strings.Trim(ip, " "))
			if nil != err {
				log.Errorf("allow: %q  error: %s", ip, err)
				return nil, err
			}
			set[i] = cidr
		}
	}

	hdlr.SetAllow(local)

	h := &httpsListener{
		log:       log,
		addresses: addresses,
		tlsConfig: tlsConfig,
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc("/poolfields/rpc", hdlr.RPC)
	h.mux.HandleFunc("/poolfields/details", hdlr.Details)
	h.mux.HandleFunc("/", hdlr.Root)

	return h, nil
}

// Serve - start a server on every listen address
func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	cfg := h.tlsConfig.Clone()
	cfg.NextProtos = []string{"http/1.1"}

	for _, address := range h.addresses {
		h.log.Infof("starting server: %s on: %q", httpsLogName, address.Address)

		ln, err := net.Listen(address.Network, address.Address)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			h.shutdown()
			return err
		}

		s := &http.Server{
			Handler:        h.mux,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		h.servers = append(h.servers, s)

		tlsListener := tls.NewListener(tcpKeepAliveListener{ln.(*net.TCPListener)}, cfg)
		go func() {
			err := s.Serve(tlsListener)
			if http.ErrServerClosed != err {
				h.log.Errorf("%s serve error: %s", httpsLogName, err)
			}
		}()
	}

	return nil
}

// Close - gracefully stop all servers
func (h *httpsListener) Close() error {
	h.Lock()
	defer h.Unlock()
	h.shutdown()
	return nil
}

func (h *httpsListener) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range h.servers {
		_ = s.Shutdown(ctx)
	}
	h.servers = nil
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if nil != err {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(keepAlivePeriod)
	return tc, nil
}
