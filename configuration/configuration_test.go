// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/poolfields/configuration"
	"github.com/bitmark-inc/poolfields/fault"
)

type verificationType struct {
	Workers int      `gluamapper:"workers" toml:"workers" yaml:"workers"`
	Timeout string   `gluamapper:"timeout" toml:"timeout" yaml:"timeout"`
	Connect []string `gluamapper:"connect" toml:"connect" yaml:"connect"`
}

type testConfiguration struct {
	Chain        string            `gluamapper:"chain" toml:"chain" yaml:"chain"`
	Database     string            `gluamapper:"database" toml:"database" yaml:"database"`
	Verification verificationType  `gluamapper:"verification" toml:"verification" yaml:"verification"`
	Owners       map[string]string `gluamapper:"owners" toml:"owners" yaml:"owners"`
}

const luaConfiguration = `
local M = {}
M.chain = "testing"
M.verification = {
  workers = 4,
  timeout = "5s",
  connect = { "127.0.0.1:2150", "[::1]:2150" },
}
M.owners = {
  ["pool-7"] = "alice",
}
if arg.database then
  M.database = arg.database
end
return M
`

const tomlConfiguration = `
chain = "testing"

[verification]
workers = 4
timeout = "5s"
connect = [ "127.0.0.1:2150", "[::1]:2150" ]

[owners]
"pool-7" = "alice"
`

const yamlConfiguration = `
chain: testing
verification:
  workers: 4
  timeout: 5s
  connect:
    - 127.0.0.1:2150
    - "[::1]:2150"
owners:
  pool-7: alice
`

func writeFile(t *testing.T, dir string, name string, content string) string {
	fileName := filepath.Join(dir, name)
	err := ioutil.WriteFile(fileName, []byte(content), 0600)
	if nil != err {
		t.Fatalf("write: %q  error: %s", fileName, err)
	}
	return fileName
}

func checkConfiguration(t *testing.T, name string, c *testConfiguration) {
	assert.Equal(t, "testing", c.Chain, "%s: chain", name)
	assert.Equal(t, 4, c.Verification.Workers, "%s: workers", name)
	assert.Equal(t, "5s", c.Verification.Timeout, "%s: timeout", name)
	assert.Equal(t, []string{"127.0.0.1:2150", "[::1]:2150"}, c.Verification.Connect, "%s: connect", name)
	assert.Equal(t, map[string]string{"pool-7": "alice"}, c.Owners, "%s: owners", name)
}

func TestParseAllFormats(t *testing.T) {
	dir, err := ioutil.TempDir("", "poolfields-configuration")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	files := map[string]string{
		"poolfieldsd.lua":  luaConfiguration,
		"poolfieldsd.toml": tomlConfiguration,
		"poolfieldsd.yaml": yamlConfiguration,
		"poolfieldsd.yml":  yamlConfiguration,
	}

	for name, content := range files {
		fileName := writeFile(t, dir, name, content)

		c := &testConfiguration{
			Database: "default.leveldb",
		}
		err := configuration.ParseConfigurationFile(fileName, c, nil)
		if !assert.Nil(t, err, "%s: parse", name) {
			continue
		}
		checkConfiguration(t, name, c)
		assert.Equal(t, "default.leveldb", c.Database, "%s: default was overwritten", name)
	}
}

func TestLuaVariables(t *testing.T) {
	dir, err := ioutil.TempDir("", "poolfields-configuration")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "vars.lua", luaConfiguration)

	c := &testConfiguration{}
	err = configuration.ParseConfigurationFile(fileName, c, map[string]string{"database": "override.leveldb"})
	assert.Nil(t, err, "parse")
	assert.Equal(t, "override.leveldb", c.Database, "variable not applied")
}

func TestUnknownKeys(t *testing.T) {
	dir, err := ioutil.TempDir("", "poolfields-configuration")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	tomlFile := writeFile(t, dir, "bad.toml", "chain = \"testing\"\nchian = \"local\"\n")
	err = configuration.ParseConfigurationFile(tomlFile, &testConfiguration{}, nil)
	assert.NotNil(t, err, "misspelt TOML key accepted")

	yamlFile := writeFile(t, dir, "bad.yaml", "chain: testing\nchian: local\n")
	err = configuration.ParseConfigurationFile(yamlFile, &testConfiguration{}, nil)
	assert.NotNil(t, err, "misspelt YAML key accepted")
}

func TestInvalidArguments(t *testing.T) {
	dir, err := ioutil.TempDir("", "poolfields-configuration")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "poolfieldsd.ini", "chain=testing\n")
	err = configuration.ParseConfigurationFile(fileName, &testConfiguration{}, nil)
	assert.Equal(t, fault.UnsupportedConfigurationFormat, err, "ini accepted")

	luaFile := writeFile(t, dir, "poolfieldsd.lua", luaConfiguration)
	err = configuration.ParseConfigurationFile(luaFile, testConfiguration{}, nil)
	assert.Equal(t, fault.InvalidStructPointer, err, "non pointer accepted")

	number := 5
	err = configuration.ParseConfigurationFile(luaFile, &number, nil)
	assert.Equal(t, fault.InvalidStructPointer, err, "non struct accepted")

	notTable := writeFile(t, dir, "number.lua", "return 5\n")
	err = configuration.ParseConfigurationFile(notTable, &testConfiguration{}, nil)
	assert.Equal(t, fault.ConfigurationFileTypeInvalid, err, "non table accepted")
}
