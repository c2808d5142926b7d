// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/chain"
	"github.com/bitmark-inc/poolfields/configuration"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/rpc/listeners"
	"github.com/bitmark-inc/poolfields/storage"
	"github.com/bitmark-inc/poolfields/util"
	"github.com/bitmark-inc/poolfields/verification"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultIdentityFile    = "self.private"
	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultDatabaseDirectory = "data"
	defaultBitmarkDatabase   = chain.Bitmark + ".leveldb"
	defaultTestingDatabase   = chain.Testing + ".leveldb"
	defaultLocalDatabase     = chain.Local + ".leveldb"
	defaultCacheExpiry       = "2m"

	defaultLogDirectory = "log"
	defaultLogFile      = "poolfieldsd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
	defaultWorkers    = 4
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// IdentityType - the daemon's own signing key
type IdentityType struct {
	PrivateKey string `gluamapper:"private_key" json:"private_key" toml:"private_key" yaml:"private_key"`
}

// DatabaseType - record store location
type DatabaseType struct {
	Engine    string `gluamapper:"engine" json:"engine" toml:"engine" yaml:"engine"`
	Directory string `gluamapper:"directory" json:"directory" toml:"directory" yaml:"directory"`
	Name      string `gluamapper:"name" json:"name" toml:"name" yaml:"name"`
	Cache     string `gluamapper:"cache" json:"cache" toml:"cache" yaml:"cache"`
}

// WhitelistType - where whitelist answers come from
//
// a non-empty File takes precedence over Connect
type WhitelistType struct {
	Authority   string `gluamapper:"authority" json:"authority" toml:"authority" yaml:"authority"`
	Connect     string `gluamapper:"connect" json:"connect" toml:"connect" yaml:"connect"`
	Fingerprint string `gluamapper:"fingerprint" json:"fingerprint" toml:"fingerprint" yaml:"fingerprint"`
	File        string `gluamapper:"file" json:"file" toml:"file" yaml:"file"`
}

// PoolsType - where pool owner answers come from
//
// a non-empty Owners table takes precedence over Connect
type PoolsType struct {
	Connect     string            `gluamapper:"connect" json:"connect" toml:"connect" yaml:"connect"`
	Fingerprint string            `gluamapper:"fingerprint" json:"fingerprint" toml:"fingerprint" yaml:"fingerprint"`
	Owners      map[string]string `gluamapper:"owners" json:"owners" toml:"owners" yaml:"owners"`
}

// VerificationType - verifier worker setup
type VerificationType struct {
	Workers   int           `gluamapper:"workers" json:"workers" toml:"workers" yaml:"workers"`
	QueueSize int           `gluamapper:"queue_size" json:"queue_size" toml:"queue_size" yaml:"queue_size"`
	Timeout   string        `gluamapper:"timeout" json:"timeout" toml:"timeout" yaml:"timeout"`
	Expiry    string        `gluamapper:"expiry" json:"expiry" toml:"expiry" yaml:"expiry"`
	Whitelist WhitelistType `gluamapper:"whitelist" json:"whitelist" toml:"whitelist" yaml:"whitelist"`
	Pools     PoolsType     `gluamapper:"pools" json:"pools" toml:"pools" yaml:"pools"`

	timeout time.Duration
	expiry  time.Duration
}

// LoggerType - logging setup, converted to logger.Configuration
type LoggerType struct {
	Directory string      `gluamapper:"directory" json:"directory" toml:"directory" yaml:"directory"`
	File      string      `gluamapper:"file" json:"file" toml:"file" yaml:"file"`
	Size      int         `gluamapper:"size" json:"size" toml:"size" yaml:"size"`
	Count     int         `gluamapper:"count" json:"count" toml:"count" yaml:"count"`
	Console   bool        `gluamapper:"console" json:"console" toml:"console" yaml:"console"`
	Levels    LoglevelMap `gluamapper:"levels" json:"levels" toml:"levels" yaml:"levels"`
}

// Configuration - the daemon configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory" toml:"data_directory" yaml:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile" toml:"pidfile" yaml:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain" toml:"chain" yaml:"chain"`
	Identity      IdentityType `gluamapper:"identity" json:"identity" toml:"identity" yaml:"identity"`
	Database      DatabaseType `gluamapper:"database" json:"database" toml:"database" yaml:"database"`

	ClientRPC    listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc" toml:"client_rpc" yaml:"client_rpc"`
	HttpsRPC     listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc" toml:"https_rpc" yaml:"https_rpc"`
	Verification VerificationType             `gluamapper:"verification" json:"verification" toml:"verification" yaml:"verification"`
	Logging      LoggerType                   `gluamapper:"logging" json:"logging" toml:"logging" yaml:"logging"`

	cacheExpiry time.Duration
}

// LoggerConfiguration - the logger package form of the logging section
func (c *Configuration) LoggerConfiguration() logger.Configuration {
	return logger.Configuration{
		Directory: c.Logging.Directory,
		File:      c.Logging.File,
		Size:      c.Logging.Size,
		Count:     c.Logging.Count,
		Console:   c.Logging.Console,
		Levels:    c.Logging.Levels,
	}
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Bitmark,

		Identity: IdentityType{
			PrivateKey: defaultIdentityFile,
		},

		Database: DatabaseType{
			Engine:    storage.LevelDB,
			Directory: defaultDatabaseDirectory,
			Name:      defaultBitmarkDatabase,
			Cache:     defaultCacheExpiry,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		// default: share config with normal RPC
		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Verification: VerificationType{
			Workers:   defaultWorkers,
			QueueSize: verification.DefaultQueueSize,
			Timeout:   verification.DefaultTimeout.String(),
			Expiry:    pending.DefaultExpiry.String(),
		},

		Logging: LoggerType{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// if any test mode and the database file was not specified
	// switch to appropriate default.  Abort if then chain name is
	// not recognised.
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	// if database was not changed from default
	if options.Database.Name == defaultBitmarkDatabase {
		switch options.Chain {
		case chain.Bitmark:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		default:
			return nil, fmt.Errorf("Chain: %s no default database setting", options.Chain)
		}
	}

	switch options.Database.Engine {
	case storage.LevelDB, storage.Bolt:
	default:
		return nil, fmt.Errorf("Database: %q is not a supported engine", options.Database.Engine)
	}

	if "" == options.Verification.Whitelist.Authority {
		options.Verification.Whitelist.Authority = chain.WhitelistAuthority(options.Chain)
	}

	if options.Verification.Workers < 1 {
		return nil, fmt.Errorf("Verification: workers: %d must be at least 1", options.Verification.Workers)
	}
	if options.Verification.QueueSize < 1 {
		return nil, fmt.Errorf("Verification: queue_size: %d must be at least 1", options.Verification.QueueSize)
	}

	durations := []struct {
		name  string
		text  string
		value *time.Duration
	}{
		{"verification timeout", options.Verification.Timeout, &options.Verification.timeout},
		{"verification expiry", options.Verification.Expiry, &options.Verification.expiry},
		{"database cache", options.Database.Cache, &options.cacheExpiry},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.text)
		if nil != err {
			return nil, fmt.Errorf("Duration: %s: %q  error: %s", d.name, d.text, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("Duration: %s: %q must be positive", d.name, d.text)
		}
		*d.value = v
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Identity.PrivateKey,
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HttpsRPC.Certificate,
		&options.HttpsRPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Verification.Whitelist.File,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
