// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

// the shutdown and completed channels for a background process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle type
type T struct {
	s []shutdown
}

// Process - type signature for background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// ProcessFunc - allow an ordinary function to be a Process
type ProcessFunc func(args interface{}, shutdown <-chan struct{})

// Run - call f(args, shutdown)
func (f ProcessFunc) Run(args interface{}, shutdown <-chan struct{}) {
	f(args, shutdown)
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes
// all processes share the same args
func Start(processes Processes, args interface{}) *T {

	register := &T{
		s: make([]shutdown, len(processes)),
	}

	// start each background
	for i, p := range processes {
		sh := make(chan struct{})
		fin := make(chan struct{})
		register.s[i].shutdown = sh
		register.s[i].finished = fin

		go func(p Process, sh <-chan struct{}, fin chan<- struct{}) {
			p.Run(args, sh)
			close(fin)
		}(p, sh, fin)
	}
	return register
}

// Stop - stop a set of background processes and wait for all of
// them to return
func (t *T) Stop() {
	if nil == t {
		return
	}

	// shutdown all background tasks
	for _, s := range t.s {
		close(s.shutdown)
	}

	// wait for finished
	for _, s := range t.s {
		<-s.finished
	}
}
