// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// Package labels resolves Hash40 values back to the strings they were
// hashed from, using a newline-delimited label dictionary built outside
// the archive (the hashing function is one-way, so labels are only ever
// recovered from a precomputed list of known strings).
package labels

import (
	"bufio"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
	"golang.org/x/xerrors"

	"github.com/suprsokr/arc"
)

// Dictionary maps Hash40 values to the label strings that hash to them.
type Dictionary struct {
	mu     sync.RWMutex
	byHash map[arc.Hash40]string
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{byHash: make(map[arc.Hash40]string)}
}

// FromFile builds a dictionary from a newline-delimited label file, one
// candidate string per line.
func FromFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("open labels file %s: %w", path, err)
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader builds a dictionary from r, one candidate label per line.
func FromReader(r io.Reader) (*Dictionary, error) {
	d := NewDictionary()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		d.byHash[arc.Hash40FromStr(line)] = line
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("scan labels: %w", err)
	}
	return d, nil
}

// Label returns the label for hash and whether one is known.
func (d *Dictionary) Label(hash arc.Hash40) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.byHash[hash]
	return s, ok
}

// Add registers an additional known label, overwriting any prior label
// for the same hash.
func (d *Dictionary) Add(label string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byHash[arc.Hash40FromStr(label)] = label
}

// Len returns the number of distinct labels currently known.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byHash)
}

// globalGroup deduplicates concurrent attempts to load the same global
// labels file, so a stampede of callers resolving labels at startup
// only pays the parse cost once.
var globalGroup singleflight.Group

var (
	globalMu  sync.RWMutex
	global    *Dictionary
)

// SetGlobalLabelsFile loads path and installs it as the process-wide
// label dictionary used by GlobalLabel.
func SetGlobalLabelsFile(path string) error {
	v, err, _ := globalGroup.Do(path, func() (interface{}, error) {
		return FromFile(path)
	})
	if err != nil {
		return err
	}
	globalMu.Lock()
	global = v.(*Dictionary)
	globalMu.Unlock()
	return nil
}

// SetGlobalLabels installs d as the process-wide label dictionary.
func SetGlobalLabels(d *Dictionary) {
	globalMu.Lock()
	global = d
	globalMu.Unlock()
}

// GlobalLabel resolves hash against the process-wide label dictionary,
// if one has been installed.
func GlobalLabel(hash arc.Hash40) (string, bool) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if global == nil {
		return "", false
	}
	return global.Label(hash)
}
