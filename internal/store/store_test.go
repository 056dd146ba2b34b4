// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	iofs "io/fs"
	"testing"
	"time"

	"github.com/nswfuel/fuelcheck-agent/internal/fs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry() Entry {
	return Entry{
		ClientID:     "id",
		ClientSecret: "secret",
		Latitude:     -33.8688,
		Longitude:    151.2093,
		Stations: []TrackedStation{
			{Code: 100, Name: "Servo One", Brand: "BrandX", Address: "1 Main St"},
		},
		CreatedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNew(t *testing.T) {
	assert := assert.New(t)

	got, err := New(nil, "entry.yml", 0)
	assert.Nil(got)
	assert.ErrorIs(err, ErrInvalidInput)

	got, err = New(mem.New(), "", 0)
	assert.Nil(got)
	assert.ErrorIs(err, ErrInvalidInput)

	got, err = New(mem.New(), "entry.yml", 0)
	assert.NoError(err)
	require.NotNil(t, got)
	assert.Equal(iofs.FileMode(0600), got.perm)
}

func TestSaveAndLoad(t *testing.T) {
	assert := assert.New(t)

	s, err := New(mem.New(), "state/entry.yml", 0)
	require.NoError(t, err)

	_, err = s.Load()
	assert.ErrorIs(err, ErrNotFound)

	want := testEntry()
	require.NoError(t, s.Save(want, false))

	got, err := s.Load()
	assert.NoError(err)
	require.NotNil(t, got)
	assert.Equal(want, *got)
}

func TestSaveValidation(t *testing.T) {
	tests := []struct {
		description string
		alter       func(*Entry)
	}{
		{
			description: "missing client id",
			alter:       func(e *Entry) { e.ClientID = "" },
		}, {
			description: "missing client secret",
			alter:       func(e *Entry) { e.ClientSecret = "" },
		}, {
			description: "no stations",
			alter:       func(e *Entry) { e.Stations = nil },
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			s, err := New(mem.New(), "entry.yml", 0)
			require.NoError(t, err)

			e := testEntry()
			tc.alter(&e)

			assert.ErrorIs(s.Save(e, false), ErrInvalidInput)
		})
	}
}

func TestSaveDuplicate(t *testing.T) {
	assert := assert.New(t)

	s, err := New(mem.New(), "entry.yml", 0)
	require.NoError(t, err)

	e := testEntry()
	require.NoError(t, s.Save(e, false))

	// Same credentials and first station.
	assert.ErrorIs(s.Save(e, false), ErrDuplicate)

	// Overwrite is explicit.
	assert.NoError(s.Save(e, true))

	// A different first station is a different entry.
	other := testEntry()
	other.Stations[0].Code = 200
	assert.NoError(s.Save(other, false))
}

func TestUniqueID(t *testing.T) {
	assert := assert.New(t)

	e := testEntry()
	assert.Equal("id-100", e.UniqueID())

	e.Stations = nil
	assert.Equal("id", e.UniqueID())
}
