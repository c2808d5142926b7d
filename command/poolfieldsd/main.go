// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/background"
	"github.com/bitmark-inc/poolfields/mode"
	"github.com/bitmark-inc/poolfields/pending"
	"github.com/bitmark-inc/poolfields/resolver"
	"github.com/bitmark-inc/poolfields/rpc"
	"github.com/bitmark-inc/poolfields/rpc/server"
	"github.com/bitmark-inc/poolfields/storage"
	"github.com/bitmark-inc/poolfields/verification"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, nil)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	loggerConfiguration := theConfiguration.LoggerConfiguration()
	if len(options["verbose"]) > 0 {
		loggerConfiguration.Console = true
	}
	if err = logger.Initialise(loggerConfiguration); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// these commands are allowed read-only access to the database
	if len(arguments) > 0 && processDataCommand(log, arguments, theConfiguration) {
		return
	}

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %s %q", theConfiguration.Database.Engine, theConfiguration.Database.Name)
	log.Infof("whitelist authority: %q", theConfiguration.Verification.Whitelist.Authority)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpsRPC", theConfiguration.HttpsRPC)
	log.Debugf("%s = %#v", "Verification", theConfiguration.Verification)

	// the daemon's own identity signs every verification result
	key, err := readIdentity(theConfiguration.Identity.PrivateKey)
	if nil != err {
		log.Criticalf("identity: %q  error: %s", theConfiguration.Identity.PrivateKey, err)
		exitwithstatus.Message("identity: %q  error: %s", theConfiguration.Identity.PrivateKey, err)
	}
	if key.IsTesting() != mode.IsTesting() {
		log.Critical("identity key is for the wrong chain")
		exitwithstatus.Message("identity key is for the wrong chain")
	}
	self := key.Account()
	log.Infof("self account: %s", self)

	// start the data storage
	log.Info("initialise storage")
	db, err := storage.Open(theConfiguration.Database.Engine, theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	store := storage.NewCached(db, theConfiguration.cacheExpiry)
	defer store.Close()

	// verification authorities
	whitelist, pools, processes, err := authorities(&theConfiguration.Verification)
	if nil != err {
		log.Criticalf("authority initialise error: %s", err)
		exitwithstatus.Message("authority initialise error: %s", err)
	}

	tracker := pending.NewTracker(theConfiguration.Verification.expiry)

	gateway := verification.NewGateway(logger.New("gateway"), tracker, theConfiguration.Verification.QueueSize)

	// verified results, signed by self, consumed by the single resolver
	dispatch := make(chan *resolver.Invocation, theConfiguration.Verification.Workers)

	verifier := verification.NewVerifier(
		logger.New("verifier"),
		whitelist,
		pools,
		key,
		tracker,
		theConfiguration.Verification.timeout,
		gateway.Queue(),
		dispatch,
	)
	for i := 0; i < theConfiguration.Verification.Workers; i += 1 {
		processes = append(processes, verifier)
	}

	processes = append(processes, resolver.New(
		logger.New("resolver"),
		self,
		store,
		tracker,
		theConfiguration.Verification.timeout,
		dispatch,
	))

	log.Infof("starting %d verification workers", theConfiguration.Verification.Workers)
	workers := background.Start(processes, nil)
	defer workers.Stop()

	// start up the rpc background processes
	handles := server.Handles{
		Gateway: gateway,
		Store:   store,
		Tracker: tracker,
		Self:    self,
	}
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version, handles)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
