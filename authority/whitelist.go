// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/poolfields/fault"
)

// FileWhitelist - whitelist read from a local file
//
// the file holds one pool id per line, blank lines and lines
// starting with '#' are ignored
type FileWhitelist struct {
	sync.RWMutex
	log      *logger.L
	fileName string
	pools    map[string]struct{}
}

// NewFileWhitelist - load the whitelist file
func NewFileWhitelist(fileName string) (*FileWhitelist, error) {
	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	w := &FileWhitelist{
		log:      logger.New("whitelist"),
		fileName: fileName,
	}
	if err := w.Reload(); nil != err {
		return nil, err
	}
	return w, nil
}

// IsWhitelisted - check the pool against the file contents
func (w *FileWhitelist) IsWhitelisted(ctx context.Context, poolId string) (bool, error) {
	if err := ctx.Err(); nil != err {
		return false, fmt.Errorf("%w: %s", fault.TransportFailure, err)
	}

	w.RLock()
	defer w.RUnlock()

	_, ok := w.pools[poolId]
	return ok, nil
}

// Count - number of whitelisted pools
func (w *FileWhitelist) Count() int {
	w.RLock()
	defer w.RUnlock()
	return len(w.pools)
}

// Reload - read the file again, on error the previous contents are kept
func (w *FileWhitelist) Reload() error {
	f, err := os.Open(w.fileName)
	if nil != err {
		w.log.Errorf("open: %q  error: %s", w.fileName, err)
		return err
	}
	defer f.Close()

	pools := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if "" == line || '#' == line[0] {
			continue
		}
		pools[line] = struct{}{}
	}
	if err := scanner.Err(); nil != err {
		w.log.Errorf("read: %q  error: %s", w.fileName, err)
		return err
	}

	w.Lock()
	w.pools = pools
	w.Unlock()

	w.log.Infof("loaded: %d pools from: %q", len(pools), w.fileName)
	return nil
}

// Run - background process reloading the file whenever it changes
//
// the directory is watched rather than the file so that editors
// which replace the file are handled
func (w *FileWhitelist) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		<-shutdown
		return
	}
	defer watcher.Close()

	err = watcher.Add(filepath.Dir(w.fileName))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		<-shutdown
		return
	}

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.fileName {
				continue
			}
			log.Debugf("file event: %v", event)
			if isChange(event) {
				_ = w.Reload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}

	log.Info("stopped")
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
