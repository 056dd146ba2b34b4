// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStations = []fuelapi.StationPrice{
	{
		Station: fuelapi.Station{Code: 100, Name: "Servo One", Brand: "BrandX", Address: "1 Main St"},
		Price:   fuelapi.Price{FuelType: "U91", Price: 181.9},
	}, {
		Station: fuelapi.Station{Code: 200, Name: "Servo Two", Brand: "BrandY", Address: "2 Side St"},
		Price:   fuelapi.Price{FuelType: "U91", Price: 175.5},
	}, {
		Station: fuelapi.Station{Code: 300, Name: "Servo Three", Brand: "BrandZ", Address: "3 Back St"},
		Price:   fuelapi.Price{FuelType: "U91", Price: 190.0},
	},
}

// fakeFinder returns the scripted errors in order, then stations.
type fakeFinder struct {
	errs     []error
	stations []fuelapi.StationPrice
	calls    int
}

func (f *fakeFinder) GetNearbyPrices(_ context.Context, _, _ float64, _ int, _ string) ([]fuelapi.StationPrice, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.stations, nil
}

func newTestFlow(t *testing.T, input string, finder *fakeFinder, opts ...Option) (*Flow, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	f, err := New(append([]Option{
		Input(strings.NewReader(input)),
		Output(&out),
		Clients(func(id, secret string) (PriceFinder, error) {
			return finder, nil
		}),
	}, opts...)...)
	require.NoError(t, err)
	require.NotNil(t, f)

	return f, &out
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		description string
		opts        []Option
		expectedErr error
	}{
		{
			description: "nil option plus missing everything",
			expectedErr: ErrInvalidInput,
		}, {
			description: "missing input",
			opts: []Option{
				Output(&bytes.Buffer{}),
				Clients(func(string, string) (PriceFinder, error) { return nil, nil }),
			},
			expectedErr: ErrInvalidInput,
		}, {
			description: "missing output",
			opts: []Option{
				Input(strings.NewReader("")),
				Clients(func(string, string) (PriceFinder, error) { return nil, nil }),
			},
			expectedErr: ErrInvalidInput,
		}, {
			description: "missing client factory",
			opts: []Option{
				Input(strings.NewReader("")),
				Output(&bytes.Buffer{}),
			},
			expectedErr: ErrInvalidInput,
		}, {
			description: "negative radius",
			opts: []Option{
				Input(strings.NewReader("")),
				Output(&bytes.Buffer{}),
				Clients(func(string, string) (PriceFinder, error) { return nil, nil }),
				RadiusKm(-1),
			},
			expectedErr: ErrInvalidInput,
		}, {
			description: "negative station limit",
			opts: []Option{
				Input(strings.NewReader("")),
				Output(&bytes.Buffer{}),
				Clients(func(string, string) (PriceFinder, error) { return nil, nil }),
				StationLimit(-1),
			},
			expectedErr: ErrInvalidInput,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			got, err := New(tc.opts...)
			assert.Nil(got)
			assert.ErrorIs(err, tc.expectedErr)
		})
	}
}

func TestDefaults(t *testing.T) {
	assert := assert.New(t)

	f, _ := newTestFlow(t, "", &fakeFinder{},
		RadiusKm(0), FuelType(""), StationLimit(0))

	assert.Equal(DefaultRadiusKm, f.radiusKm)
	assert.Equal(DefaultFuelType, f.fuelType)
	assert.Equal(DefaultStationLimit, f.stationLimit)
}

func TestRunHappyPath(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	finder := &fakeFinder{stations: testStations}

	input := strings.Join([]string{
		"my-id",
		"my-secret",
		"-33.8688",
		"151.2093",
		"1, 3",
	}, "\n") + "\n"

	f, out := newTestFlow(t, input, finder,
		NowFunc(func() time.Time { return now }),
	)

	entry, err := f.Run(context.Background())
	assert.NoError(err)
	require.NotNil(t, entry)

	assert.Equal("my-id", entry.ClientID)
	assert.Equal("my-secret", entry.ClientSecret)
	assert.Equal(-33.8688, entry.Latitude)
	assert.Equal(151.2093, entry.Longitude)
	assert.Equal(now, entry.CreatedAt)

	require.Len(t, entry.Stations, 2)
	assert.Equal(100, entry.Stations[0].Code)
	assert.Equal(300, entry.Stations[1].Code)

	assert.Equal(1, finder.calls)
	assert.Contains(out.String(), "Servo One - 1 Main St (100)")
}

func TestRunSuggestionsAreReused(t *testing.T) {
	assert := assert.New(t)

	finder := &fakeFinder{stations: testStations}

	// First round enters Brisbane, which is outside the region.  The second
	// round accepts the suggested credentials by leaving them blank and
	// fixes only the coordinates.
	input := strings.Join([]string{
		"my-id",
		"my-secret",
		"-27.4698",
		"153.0251",
		"",
		"",
		"-33.8688",
		"151.2093",
		"2",
	}, "\n") + "\n"

	f, out := newTestFlow(t, input, finder)

	entry, err := f.Run(context.Background())
	assert.NoError(err)
	require.NotNil(t, entry)

	assert.Equal("my-id", entry.ClientID)
	assert.Equal("my-secret", entry.ClientSecret)
	require.Len(t, entry.Stations, 1)
	assert.Equal(200, entry.Stations[0].Code)

	// The nearby fetch only happened once; the bad coordinates never made
	// it to the network.
	assert.Equal(1, finder.calls)
	assert.Contains(out.String(), "not inside NSW")
}

func TestRunRetriesOnAPIFailures(t *testing.T) {
	tests := []struct {
		description string
		err         error
		wantMessage string
	}{
		{
			description: "bad credentials",
			err:         &fuelapi.Error{Kind: fuelapi.KindAuth, Status: 401, Message: "invalid client credentials"},
			wantMessage: "rejected those credentials",
		}, {
			description: "connectivity",
			err:         &fuelapi.Error{Kind: fuelapi.KindAPI, Message: "connection error"},
			wantMessage: "Could not reach the fuel API",
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			finder := &fakeFinder{
				errs:     []error{tc.err},
				stations: testStations,
			}

			input := strings.Join([]string{
				"my-id", "my-secret", "-33.8688", "151.2093",
				"", "", "", "",
				"1",
			}, "\n") + "\n"

			f, out := newTestFlow(t, input, finder)

			entry, err := f.Run(context.Background())
			assert.NoError(err)
			require.NotNil(t, entry)
			assert.Equal(2, finder.calls)
			assert.Contains(out.String(), tc.wantMessage)
		})
	}
}

func TestRunStationLimit(t *testing.T) {
	assert := assert.New(t)

	finder := &fakeFinder{stations: testStations}

	input := strings.Join([]string{
		"my-id", "my-secret", "-33.8688", "151.2093",
		"2",
	}, "\n") + "\n"

	f, out := newTestFlow(t, input, finder, StationLimit(2))

	entry, err := f.Run(context.Background())
	assert.NoError(err)
	require.NotNil(t, entry)
	assert.NotContains(out.String(), "Servo Three")
	assert.Equal(200, entry.Stations[0].Code)
}

func TestRunBadSelectionReprompts(t *testing.T) {
	assert := assert.New(t)

	finder := &fakeFinder{stations: testStations}

	input := strings.Join([]string{
		"my-id", "my-secret", "-33.8688", "151.2093",
		"9",       // out of range
		"zero",    // not a number
		"",        // nothing selected
		"1, 1, 2", // duplicates collapse
	}, "\n") + "\n"

	f, _ := newTestFlow(t, input, finder)

	entry, err := f.Run(context.Background())
	assert.NoError(err)
	require.NotNil(t, entry)
	require.Len(t, entry.Stations, 2)
	assert.Equal(100, entry.Stations[0].Code)
	assert.Equal(200, entry.Stations[1].Code)
}

func TestRunAborts(t *testing.T) {
	assert := assert.New(t)

	f, _ := newTestFlow(t, "my-id\n", &fakeFinder{stations: testStations})

	entry, err := f.Run(context.Background())
	assert.Nil(entry)
	assert.ErrorIs(err, ErrAborted)
}

func TestRunEmptyNearbyList(t *testing.T) {
	assert := assert.New(t)

	finder := &fakeFinder{}

	input := strings.Join([]string{
		"my-id", "my-secret", "-33.8688", "151.2093",
	}, "\n") + "\n"

	f, out := newTestFlow(t, input, finder)

	// The empty result re-prompts; the script then runs out of input.
	entry, err := f.Run(context.Background())
	assert.Nil(entry)
	assert.ErrorIs(err, ErrAborted)
	assert.Contains(out.String(), "No stations found")
}

func TestClientFactoryErrorPropagates(t *testing.T) {
	assert := assert.New(t)

	errFactory := errors.New("factory broke")

	var out bytes.Buffer
	f, err := New(
		Input(strings.NewReader("my-id\nmy-secret\n-33.8688\n151.2093\n")),
		Output(&out),
		Clients(func(string, string) (PriceFinder, error) {
			return nil, errFactory
		}),
	)
	require.NoError(t, err)

	entry, err := f.Run(context.Background())
	assert.Nil(entry)
	assert.ErrorIs(err, errFactory)
}

func TestFormatStationOption(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Servo One - 1 Main St (100)", FormatStationOption(testStations[0]))
}
