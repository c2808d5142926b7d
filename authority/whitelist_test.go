// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority_test

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/poolfields/authority"
	"github.com/bitmark-inc/poolfields/background"
)

func writeWhitelist(t *testing.T, fileName string, content string) {
	if err := ioutil.WriteFile(fileName, []byte(content), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
}

func TestFileWhitelist(t *testing.T) {
	fileName := filepath.Join(testingDirName, "whitelist-static.txt")
	writeWhitelist(t, fileName, "# approved pools\npool-1\n\n  pool-2  \n#pool-3\n")

	w, err := authority.NewFileWhitelist(fileName)
	if !assert.Nil(t, err, "load") {
		return
	}
	assert.Equal(t, 2, w.Count(), "count")

	for poolId, expected := range map[string]bool{
		"pool-1": true,
		"pool-2": true,
		"pool-3": false,
		"":       false,
	} {
		ok, err := w.IsWhitelisted(context.Background(), poolId)
		assert.Nil(t, err, "pool: %q", poolId)
		assert.Equal(t, expected, ok, "pool: %q", poolId)
	}
}

func TestFileWhitelistMissingFile(t *testing.T) {
	_, err := authority.NewFileWhitelist(filepath.Join(testingDirName, "no-such-file"))
	assert.NotNil(t, err, "missing file")
}

func TestFileWhitelistReloadsOnChange(t *testing.T) {
	fileName := filepath.Join(testingDirName, "whitelist-watch.txt")
	writeWhitelist(t, fileName, "pool-1\n")

	w, err := authority.NewFileWhitelist(fileName)
	if !assert.Nil(t, err, "load") {
		return
	}

	processes := background.Processes{w}
	b := background.Start(processes, nil)
	defer b.Stop()

	// allow the watcher to be set up
	time.Sleep(100 * time.Millisecond)

	writeWhitelist(t, fileName, "pool-1\npool-2\n")

	found := false
	for i := 0; i < 50 && !found; i += 1 {
		found, _ = w.IsWhitelisted(context.Background(), "pool-2")
		time.Sleep(20 * time.Millisecond)
	}
	assert.True(t, found, "reload did not happen")
}
