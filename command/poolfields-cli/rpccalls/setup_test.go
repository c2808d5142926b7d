// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls_test

import (
	"context"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net/rpc"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/authority"
	"github.com/bitmark-inc/poolfields/background"
	"github.com/bitmark-inc/poolfields/chain"
	"github.com/bitmark-inc/poolfields/counter"
	"github.com/bitmark-inc/poolfields/mode"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/resolver"
	"github.com/bitmark-inc/poolfields/rpc/certificate"
	"github.com/bitmark-inc/poolfields/rpc/fixtures"
	"github.com/bitmark-inc/poolfields/rpc/listeners"
	"github.com/bitmark-inc/poolfields/rpc/server"
	"github.com/bitmark-inc/poolfields/storage"
	"github.com/bitmark-inc/poolfields/verification"
)

const (
	whitelistedPool = "pool-1.local"
	secondPool      = "pool-2.local"
	unlistedPool    = "pool-3.local"
	baseTimeout     = time.Second
)

var (
	connect     string
	fingerprint string
	alice       *account.PrivateKey
	bob         *account.PrivateKey
)

// whitelist held in memory
type allowList map[string]bool

func (a allowList) IsWhitelisted(_ context.Context, poolId string) (bool, error) {
	return a[poolId], nil
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	rc := run(m)

	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// the complete daemon pipeline behind a TLS JSON-RPC listener
func run(m *testing.M) int {
	log := logger.New(fixtures.LogCategory)

	_ = mode.Initialise(chain.Local)
	defer mode.Finalise()

	dir, err := ioutil.TempDir("", "poolfields-rpccalls")
	if nil != err {
		panic(err)
	}
	defer os.RemoveAll(dir)

	store, err := storage.Open(storage.LevelDB, filepath.Join(dir, "local.leveldb"), storage.ReadWrite)
	if nil != err {
		panic(err)
	}
	defer store.Close()

	self, _ := account.NewPrivateKey(true)
	alice, _ = account.NewPrivateKey(true)
	bob, _ = account.NewPrivateKey(true)

	whitelist := allowList{
		whitelistedPool: true,
		secondPool:      true,
	}
	owners := authority.StaticOwners{
		whitelistedPool: alice.Account().String(),
		secondPool:      alice.Account().String(),
		unlistedPool:    alice.Account().String(),
	}

	tracker := pending.NewTracker(time.Minute)
	gateway := verification.NewGateway(log, tracker, 10)
	dispatch := make(chan *resolver.Invocation, 2)

	verifier := verification.NewVerifier(log, whitelist, owners, self, tracker, baseTimeout, gateway.Queue(), dispatch)
	processes := background.Processes{
		verifier,
		verifier,
		resolver.New(log, self.Account(), store, tracker, baseTimeout, dispatch),
	}
	workers := background.Start(processes, nil)
	defer workers.Stop()

	count := counter.Counter(0)
	s := server.Create(log, "1.0", &count, server.Handles{
		Gateway: gateway,
		Store:   store,
		Tracker: tracker,
		Self:    self.Account(),
	})

	tlsConfig, fin, err := certificate.Get(log, "test", fixtures.Certificate(), fixtures.Key())
	if nil != err {
		panic(err)
	}
	fingerprint = fmt.Sprintf("%x", fin)

	var l listeners.Listener
	for i := 0; i < 10; i += 1 {
		connect = fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000)
		l, err = listeners.NewRPC(&listeners.RPCConfiguration{
			MaximumConnections: 10,
			Listen:             []string{connect},
		}, log, &count, s, tlsConfig, fin)
		if nil != err {
			panic(err)
		}
		if err = l.Serve(); nil == err {
			break
		}
	}
	if nil != err {
		panic(err)
	}
	defer l.Close()

	return m.Run()
}

// poll until done returns true or the deadline passes
func eventually(t *testing.T, done func() bool) bool {
	deadline := time.Now().Add(5 * baseTimeout)
	for time.Now().Before(deadline) {
		if done() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("condition not met before deadline")
	return false
}

// the server error text as seen by the client
func serverError(err error) rpc.ServerError {
	if e, ok := err.(rpc.ServerError); ok {
		return e
	}
	return ""
}
