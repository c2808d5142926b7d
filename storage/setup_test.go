// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/storage"
)

const (
	testingDirName = "testing"
)

var engines = []string{storage.LevelDB, storage.Bolt}

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      fmt.Sprintf("%s.log", testingDirName),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// a fresh database file name for each test and engine
func databaseName(t *testing.T, engine string) string {
	return filepath.Join(testingDirName, fmt.Sprintf("%s.%s", t.Name(), engine))
}

func openStore(t *testing.T, engine string) (storage.Store, string) {
	name := databaseName(t, engine)
	_ = os.RemoveAll(name)

	s, err := storage.Open(engine, name, storage.ReadWrite)
	if nil != err {
		t.Fatalf("open %s error: %s", engine, err)
	}
	return s, name
}
