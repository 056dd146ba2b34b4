// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

type optionFunc func(*Flow) error

var _ Option = optionFunc(nil)

func (f optionFunc) apply(flow *Flow) error {
	return f(flow)
}

type nilOptionFunc func(*Flow)

var _ Option = nilOptionFunc(nil)

func (f nilOptionFunc) apply(flow *Flow) error {
	f(flow)
	return nil
}

// Input is where the user's answers are read from.
func Input(r io.Reader) Option {
	return nilOptionFunc(
		func(f *Flow) {
			if r != nil {
				f.in = bufio.NewReader(r)
			}
		})
}

// Output is where prompts and messages are written.
func Output(w io.Writer) Option {
	return nilOptionFunc(
		func(f *Flow) {
			f.out = w
		})
}

// Clients is the factory used to build an API client once credentials have
// been entered.
func Clients(factory ClientFactory) Option {
	return nilOptionFunc(
		func(f *Flow) {
			f.newClient = factory
		})
}

// Logger sets the logger.  The default discards everything.
func Logger(logger *zap.Logger) Option {
	return nilOptionFunc(
		func(f *Flow) {
			if logger == nil {
				logger = zap.NewNop()
			}
			f.logger = logger
		})
}

// RadiusKm is the nearby-search radius.  A value of zero means the default.
func RadiusKm(radius int) Option {
	return optionFunc(
		func(f *Flow) error {
			if radius < 0 {
				return fmt.Errorf("%w: negative radius", ErrInvalidInput)
			}
			f.radiusKm = radius
			if f.radiusKm == 0 {
				f.radiusKm = DefaultRadiusKm
			}
			return nil
		})
}

// FuelType is the fuel type used for the nearby search.  An empty value
// means the default.
func FuelType(fuelType string) Option {
	return nilOptionFunc(
		func(f *Flow) {
			if fuelType == "" {
				fuelType = DefaultFuelType
			}
			f.fuelType = fuelType
		})
}

// StationLimit caps how many nearby stations are offered.  A value of zero
// means the default.
func StationLimit(limit int) Option {
	return optionFunc(
		func(f *Flow) error {
			if limit < 0 {
				return fmt.Errorf("%w: negative station limit", ErrInvalidInput)
			}
			f.stationLimit = limit
			if f.stationLimit == 0 {
				f.stationLimit = DefaultStationLimit
			}
			return nil
		})
}

// SuggestedCredentials seeds the credential prompts, typically from the
// NSWFUELCHECKAPI_KEY and NSWFUELCHECKAPI_SECRET environment variables.
func SuggestedCredentials(clientID, clientSecret string) Option {
	return nilOptionFunc(
		func(f *Flow) {
			f.suggestedID = clientID
			f.suggestedSecret = clientSecret
		})
}

// SuggestedCoordinates seeds the coordinate prompts.
func SuggestedCoordinates(lat, lon string) Option {
	return nilOptionFunc(
		func(f *Flow) {
			f.suggestedLat = lat
			f.suggestedLon = lon
		})
}

// NowFunc is the function used to obtain the current time.
func NowFunc(nowFunc func() time.Time) Option {
	return nilOptionFunc(
		func(f *Flow) {
			if nowFunc == nil {
				nowFunc = time.Now
			}
			f.nowFunc = nowFunc
		})
}
