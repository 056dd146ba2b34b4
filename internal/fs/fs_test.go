// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package fs_test

import (
	"errors"
	"testing"

	"github.com/nswfuel/fuelcheck-agent/internal/fs"
	"github.com/nswfuel/fuelcheck-agent/internal/fs/mem"
	"github.com/stretchr/testify/assert"
)

func TestOperate(t *testing.T) {
	errUnknown := errors.New("unknown")

	tests := []struct {
		description string
		start       *mem.FS
		opts        []fs.Option
		expectedErr error
		check       func(*assert.Assertions, *mem.FS)
	}{
		{
			description: "nil options are skipped",
			start:       mem.New(),
			opts:        []fs.Option{nil, nil},
		}, {
			description: "make a directory path then a file",
			start:       mem.New(),
			opts: []fs.Option{
				fs.WithDirs("a/b", 0755),
				fs.OptionFunc(func(f fs.FS) error {
					return f.WriteFile("a/b/entry.yml", []byte("hi"), 0600)
				}),
			},
			check: func(assert *assert.Assertions, f *mem.FS) {
				got, err := f.ReadFile("a/b/entry.yml")
				assert.NoError(err)
				assert.Equal("hi", string(got))
			},
		}, {
			description: "existing directory is left alone",
			start:       mem.New(mem.WithDir("a", 0755)),
			opts:        []fs.Option{fs.WithDir("a", 0700)},
			check: func(assert *assert.Assertions, f *mem.FS) {
				assert.Equal(mem.New(mem.WithDir("a", 0755)).Dirs, f.Dirs)
			},
		}, {
			description: "a file where a directory is expected",
			start:       mem.New(mem.WithFile("a", "data", 0644)),
			opts:        []fs.Option{fs.WithDir("a", 0755)},
			expectedErr: fs.ErrNotDirectory,
		}, {
			description: "path options derive the directory from the filename",
			start:       mem.New(),
			opts:        []fs.Option{fs.WithPath("x/y/entry.yml", 0755)},
			check: func(assert *assert.Assertions, f *mem.FS) {
				assert.Contains(f.Dirs, "x/y")
			},
		}, {
			description: "errors are propagated",
			start:       mem.New(mem.WithError("broken", errUnknown)),
			opts: []fs.Option{
				fs.OptionFunc(func(f fs.FS) error {
					_, err := f.ReadFile("broken")
					return err
				}),
			},
			expectedErr: errUnknown,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			err := fs.Operate(tc.start, tc.opts...)

			if tc.check != nil {
				tc.check(assert, tc.start)
			}

			if tc.expectedErr == nil {
				assert.NoError(err)
				return
			}

			assert.ErrorIs(err, tc.expectedErr)
		})
	}
}
