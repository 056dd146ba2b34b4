// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists the outcome of the setup flow: the credentials, the
// validated coordinates and the stations the user chose to track.
package store

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"strconv"
	"time"

	"github.com/nswfuel/fuelcheck-agent/internal/fs"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrNotFound     = fmt.Errorf("no entry found")
	ErrDuplicate    = fmt.Errorf("entry already exists")
)

// TrackedStation is one station the user elected to track.
type TrackedStation struct {
	Code    int    `yaml:"code"`
	Name    string `yaml:"name"`
	Brand   string `yaml:"brand"`
	Address string `yaml:"address"`
}

// Entry is everything the agent needs to run without asking the user again.
type Entry struct {
	ClientID     string           `yaml:"client_id"`
	ClientSecret string           `yaml:"client_secret"`
	Latitude     float64          `yaml:"latitude"`
	Longitude    float64          `yaml:"longitude"`
	Stations     []TrackedStation `yaml:"stations"`
	CreatedAt    time.Time        `yaml:"created_at"`
}

// UniqueID keys an entry by the credentials and the first tracked station,
// so re-running setup with the same pair is detected as a duplicate.
func (e Entry) UniqueID() string {
	if len(e.Stations) == 0 {
		return e.ClientID
	}
	return e.ClientID + "-" + strconv.Itoa(e.Stations[0].Code)
}

// Store reads and writes the entry file on the provided filesystem.
type Store struct {
	fs       fs.FS
	filename string
	perm     iofs.FileMode
}

// New creates a store writing the named file on f with the given
// permissions.  A zero perm means 0600; the file holds a secret.
func New(f fs.FS, filename string, perm iofs.FileMode) (*Store, error) {
	if f == nil || filename == "" {
		return nil, fmt.Errorf("%w: filesystem and filename are required", ErrInvalidInput)
	}

	if perm == 0 {
		perm = 0600
	}

	return &Store{
		fs:       f,
		filename: filename,
		perm:     perm,
	}, nil
}

// Load returns the persisted entry, or ErrNotFound if none has been saved.
func (s *Store) Load() (*Entry, error) {
	data, err := s.fs.ReadFile(s.filename)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading entry: %w", err)
	}

	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decoding entry: %w", err)
	}

	return &e, nil
}

// Save writes the entry.  Saving an entry with the same unique id as the
// existing one fails with ErrDuplicate; pass overwrite to replace it.
func (s *Store) Save(e Entry, overwrite bool) error {
	if e.ClientID == "" || e.ClientSecret == "" {
		return fmt.Errorf("%w: credentials are required", ErrInvalidInput)
	}
	if len(e.Stations) == 0 {
		return fmt.Errorf("%w: at least one station is required", ErrInvalidInput)
	}

	if !overwrite {
		if existing, err := s.Load(); err == nil {
			if existing.UniqueID() == e.UniqueID() {
				return ErrDuplicate
			}
		}
	}

	data, err := yaml.Marshal(&e)
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}

	return fs.Operate(s.fs,
		fs.WithPath(s.filename, 0755),
		fs.OptionFunc(func(f fs.FS) error {
			return f.WriteFile(s.filename, data, s.perm)
		}),
	)
}
