// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/poolfields/account"
	"github.com/bitmark-inc/poolfields/command/poolfields-cli/rpccalls"
	"github.com/bitmark-inc/poolfields/fault"
	"github.com/bitmark-inc/poolfields/util"
)

const identityPrefix = "PRIVATE:"

type generateReply struct {
	Account    string `json:"account"`
	PrivateKey string `json:"private_key"`
	File       string `json:"file"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.String("output")
	if "" == fileName {
		fileName = m.identity
	}

	if util.EnsureFileExists(fileName) {
		return fault.IdentityFileAlreadyExists
	}

	key, err := account.NewPrivateKey(m.testnet)
	if nil != err {
		return err
	}

	data := identityPrefix + key.String() + "\n"
	if err := ioutil.WriteFile(fileName, []byte(data), 0600); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "wrote identity: %q\n", fileName)
	}

	printJson(m.w, generateReply{
		Account:    key.Account().String(),
		PrivateKey: key.String(),
		File:       fileName,
	})
	return nil
}

func runUpdate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	poolId, err := checkRequired("pool", c.String("pool"))
	if nil != err {
		return err
	}
	name, err := checkRequired("name", c.String("name"))
	if nil != err {
		return err
	}
	value, err := checkRequired("value", c.String("value"))
	if nil != err {
		return err
	}

	key, err := readIdentity(m.identity)
	if nil != err {
		return err
	}
	if key.IsTesting() != m.testnet {
		return fault.WrongNetworkForPublicKey
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Update(&rpccalls.UpdateData{
		Caller: key,
		PoolId: poolId,
		Name:   name,
		Value:  value,
	})
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	poolId, err := checkRequired("pool", c.String("pool"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Get(poolId)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.List(c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runCount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Count()
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetInfo()
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func connect(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
}

func checkRequired(name string, value string) (string, error) {
	if "" == value {
		return "", fmt.Errorf("%w: %s", fault.MissingParameters, name)
	}
	return value, nil
}

func readIdentity(fileName string) (*account.PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	text := strings.TrimSpace(string(data))
	if !strings.HasPrefix(text, identityPrefix) {
		return nil, fault.NotPrivateKey
	}

	return account.PrivateKeyFromBase58(strings.TrimPrefix(text, identityPrefix))
}

func printJson(handle io.Writer, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(handle, "JSON error: %s\n", err)
		return
	}
	fmt.Fprintf(handle, "%s\n", b)
}
