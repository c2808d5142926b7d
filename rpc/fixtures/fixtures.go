// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

var (
	once        sync.Once
	certificate string
	key         string
)

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// self signed certificate shared by all tests in a package
func generate() {
	c, k, err := certgen.NewTLSCertPair("poolfieldsd test", time.Now().Add(24*time.Hour), false, []string{"localhost"})
	if nil != err {
		panic(fmt.Sprintf("generate certificate error: %s", err))
	}
	certificate = string(c)
	key = string(k)
}

// Certificate - PEM encoded test certificate
func Certificate() string {
	once.Do(generate)
	return certificate
}

// Key - PEM encoded private key for Certificate
func Key() string {
	once.Do(generate)
	return key
}
