// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	fingerprint string
	identity    string
	testnet     bool
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "poolfields-cli"
	app.Usage = "query and update staking pool fields"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: "bitmark",
			Usage: " key network `NETWORK` [bitmark|testing|local]",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " poolfieldsd host/IP and port, `HOST:PORT`",
			EnvVar: "POOLFIELDS_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected server certificate SHA3-256 `HEX`",
			EnvVar: "POOLFIELDS_FINGERPRINT",
		},
		cli.StringFlag{
			Name:   "identity, i",
			Value:  "identity.private",
			Usage:  " identity key `FILE`",
			EnvVar: "POOLFIELDS_IDENTITY",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new identity key file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output, o",
					Value: "",
					Usage: " write key to `FILE` [default: identity file]",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "update",
			Usage:     "request that a field of a pool is set",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "pool, p",
					Value: "",
					Usage: "*staking pool `ID`",
				},
				cli.StringFlag{
					Name:  "name, k",
					Value: "",
					Usage: "*field `NAME`",
				},
				cli.StringFlag{
					Name:  "value, d",
					Value: "",
					Usage: "*field `VALUE`",
				},
			},
			Action: runUpdate,
		},
		{
			Name:      "get",
			Usage:     "fields of a single pool",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "pool, p",
					Value: "",
					Usage: "*staking pool `ID`",
				},
			},
			Action: runGet,
		},
		{
			Name:      "list",
			Usage:     "list pools and their fields",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " position of first pool `N`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 10,
					Usage: " maximum number of pools `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:   "count",
			Usage:  "number of pools with fields",
			Action: runCount,
		},
		{
			Name:   "info",
			Usage:  "display poolfieldsd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display poolfields-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		network := c.GlobalString("network")
		switch network {
		case "bitmark", "testing", "local":
		default:
			return fmt.Errorf("invalid network: %q", network)
		}

		c.App.Metadata["config"] = &metadata{
			connect:     c.GlobalString("connect"),
			fingerprint: c.GlobalString("fingerprint"),
			identity:    c.GlobalString("identity"),
			testnet:     "bitmark" != network,
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
