// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/chain"
	"github.com/bitmark-inc/poolfields/storage"
)

const (
	identityFilename          = "self.private"
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-self-identity", "self":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing chain argument, one of: %q, %q or %q", chain.Bitmark, chain.Testing, chain.Local)
		}
		chainName := arguments[0]
		if !chain.Valid(chainName) {
			exitwithstatus.Message("error: invalid chain: %q", chainName)
		}

		privateKeyFilename := getFilenameWithDirectory(arguments[1:], identityFilename)
		key, err := makeIdentity(chain.IsTesting(chainName), privateKeyFilename)
		if nil != err {
			fmt.Printf("generate identity: %q error: %s\n", privateKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated identity: %q\n", privateKeyFilename)
		fmt.Printf("self account: %s\n", key.Account())

	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "self-account", "account", "config-test", "cfg":
		return false // defer processing until configuration is read

	case "count", "list", "get":
		return false // defer processing until database is opened

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                          (h)       - display this message\n\n")
		fmt.Printf("  version                       (v)       - display version sting\n\n")

		fmt.Printf("  gen-self-identity CHAIN [DIR] (self)    - create identity key in: %q\n", "DIR/"+identityFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR]            (rpc)     - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                            and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]             - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                            and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                         (run)     - just run the program, same as no arguments\n")
		fmt.Printf("                                            for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                   (cfg)     - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  self-account                  (account) - display the account that signs verification results\n")
		fmt.Printf("\n")

		fmt.Printf("  count                                   - number of pools with fields\n")
		fmt.Printf("\n")

		fmt.Printf("  list START COUNT                        - JSON list of pools from position START\n")
		fmt.Printf("\n")

		fmt.Printf("  get POOL                                - JSON fields of a single pool\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "self-account", "account":
		key, err := readIdentity(options.Identity.PrivateKey)
		if nil != err {
			exitwithstatus.Message("identity: %q  error: %s", options.Identity.PrivateKey, err)
		}
		fmt.Printf("%s\n", key.Account())

	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the database is opened read-only so these commands can run
// alongside a live daemon on engines that allow it
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "count", "list", "get":

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	store, err := storage.Open(options.Database.Engine, options.Database.Name, storage.ReadOnly)
	if nil != err {
		log.Errorf("open database: %q  error: %s", options.Database.Name, err)
		exitwithstatus.Message("open database: %q  error: %s", options.Database.Name, err)
	}
	defer store.Close()

	var result interface{}

	switch command {
	case "count":
		n, err := store.Count()
		if nil != err {
			exitwithstatus.Message("count error: %s", err)
		}
		result = map[string]uint64{"count": n}

	case "list":
		if len(arguments) < 2 {
			exitwithstatus.Message("missing START and COUNT arguments")
		}
		start, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in start: %s", err)
		}
		count, err := strconv.Atoi(arguments[1])
		if nil != err {
			exitwithstatus.Message("error in count: %s", err)
		}
		entries, next, err := store.Page(start, count)
		if nil != err {
			exitwithstatus.Message("list error: %s", err)
		}
		result = struct {
			Pools []storage.Entry `json:"pools"`
			Next  uint64          `json:"next,string"`
		}{
			Pools: entries,
			Next:  next,
		}

	case "get":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing POOL argument")
		}
		fields, found, err := store.Get(arguments[0])
		if nil != err {
			exitwithstatus.Message("get error: %s", err)
		}
		if found {
			result = fields
		}
	}

	s, err := json.MarshalIndent(result, "", "  ")
	if nil != err {
		exitwithstatus.Message("JSON error: %s", err)
	}
	fmt.Printf("%s\n", s)

	// indicate processing complete and perform normal exit from main
	return true
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
