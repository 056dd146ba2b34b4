// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package fs narrows the filesystem surface the agent needs for persisting
// its configuration entry, so tests can swap in an in-memory implementation.
package fs

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is returned when a directory is expected but a file is found.
var ErrNotDirectory = errors.New("not a directory")

// FS is the interface for a filesystem used by the program.
type FS interface {
	fs.FS

	// Mkdir creates a directory with the specified permissions.  Should match os.Mkdir().
	Mkdir(path string, perm fs.FileMode) error

	// ReadFile reads the file and returns the contents.  Should match os.ReadFile().
	ReadFile(name string) ([]byte, error)

	// WriteFile writes the file with the specified permissions.  Should match os.WriteFile().
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// Option is an interface for options that can be applied in order via the
// Operate function.
type Option interface {
	// Apply applies the option to the filesystem.
	Apply(FS) error
}

// OptionFunc is a function that implements the Option interface.
type OptionFunc func(FS) error

func (f OptionFunc) Apply(fs FS) error {
	return f(fs)
}

// Operate applies the specified options to the filesystem.  This allows a
// set of preconditions (like creating a directory path) to be declared ahead
// of the final operation.
func Operate(f FS, opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.Apply(f); err != nil {
			return err
		}
	}
	return nil
}

// Options provides a way to group multiple options together.
func Options(opts ...Option) Option {
	return OptionFunc(
		func(f FS) error {
			return Operate(f, opts...)
		})
}

// WithDir is an option that ensures the specified directory exists.  If it
// does not, create it with the specified permissions.
func WithDir(dir string, perm fs.FileMode) Option {
	return OptionFunc(
		func(f FS) error {
			file, err := f.Open(dir)
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				return f.Mkdir(dir, perm)
			}
			defer file.Close()

			stat, err := file.Stat()
			if err == nil {
				if !stat.IsDir() {
					return ErrNotDirectory
				}
			}

			return err
		})
}

// WithDirs is an option that ensures the specified directory path exists
// with the specified permissions.  The path is split on the path separator
// and each directory is created in order if needed.
//
// Notes:
//   - The path should not contain the filename or that will be created as a directory.
//   - The same permissions are applied to all directories that are created.
func WithDirs(path string, perm fs.FileMode) Option {
	dirs := strings.Split(path, string(filepath.Separator))
	if filepath.IsAbs(path) {
		dirs[0] = string(filepath.Separator)
	}

	var full string
	opts := make([]Option, 0, len(dirs))
	for _, dir := range dirs {
		full = filepath.Join(full, dir)
		opts = append(opts, WithDir(full, perm))
	}
	return Options(opts...)
}

// WithPath is an option that ensures the set of directories for the
// specified file exists.  The directory is determined by calling
// filepath.Dir on the name.
func WithPath(name string, perm fs.FileMode) Option {
	return WithDirs(filepath.Dir(name), perm)
}
