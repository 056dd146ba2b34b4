// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package setup walks the user through entering API credentials and
// coordinates, fetches the stations near those coordinates, and lets the
// user pick which ones to track.  The answers become a store.Entry.
package setup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi"
	"github.com/nswfuel/fuelcheck-agent/internal/geo"
	"github.com/nswfuel/fuelcheck-agent/internal/store"
)

var (
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrAborted      = fmt.Errorf("setup aborted")
)

const (
	// DefaultRadiusKm is the search radius around the user's coordinates.
	DefaultRadiusKm = 10

	// DefaultFuelType is the fuel type used for the nearby search.  Any
	// station selling it is a candidate for tracking.
	DefaultFuelType = "U91"

	// DefaultStationLimit caps how many nearby stations are offered.
	DefaultStationLimit = 20
)

// PriceFinder is the one client operation the flow needs.  It doubles as the
// credential check: the first call either authenticates or reports why not.
type PriceFinder interface {
	GetNearbyPrices(ctx context.Context, latitude, longitude float64, radiusKm int, fuelType string) ([]fuelapi.StationPrice, error)
}

// ClientFactory builds a PriceFinder for the credentials the user typed.
type ClientFactory func(clientID, clientSecret string) (PriceFinder, error)

// Flow is the interactive setup flow.
type Flow struct {
	in      *bufio.Reader
	out     io.Writer
	logger  *zap.Logger
	nowFunc func() time.Time

	newClient    ClientFactory
	radiusKm     int
	fuelType     string
	stationLimit int

	// Suggested defaults, typically sourced from the environment.
	suggestedID     string
	suggestedSecret string
	suggestedLat    string
	suggestedLon    string
}

// Option is the interface implemented by types that can be used to
// configure the flow.
type Option interface {
	apply(*Flow) error
}

// New creates a new setup flow object.
func New(opts ...Option) (*Flow, error) {
	required := []Option{
		inputVador(),
		outputVador(),
		clientFactoryVador(),
	}

	f := Flow{
		logger:       zap.NewNop(),
		nowFunc:      time.Now,
		radiusKm:     DefaultRadiusKm,
		fuelType:     DefaultFuelType,
		stationLimit: DefaultStationLimit,
	}

	opts = append(opts, required...)

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt.apply(&f)
		if err != nil {
			return nil, err
		}
	}

	return &f, nil
}

// Run drives both steps and returns the resulting entry.  It loops on
// recoverable mistakes (bad coordinates, bad credentials, connectivity) and
// returns ErrAborted when the input stream ends.
func (f *Flow) Run(ctx context.Context) (*store.Entry, error) {
	answers, nearby, err := f.stepUser(ctx)
	if err != nil {
		return nil, err
	}

	chosen, err := f.stepStationSelect(nearby)
	if err != nil {
		return nil, err
	}

	return &store.Entry{
		ClientID:     answers.clientID,
		ClientSecret: answers.clientSecret,
		Latitude:     answers.point.Latitude,
		Longitude:    answers.point.Longitude,
		Stations:     chosen,
		CreatedAt:    f.nowFunc(),
	}, nil
}

// userAnswers is the validated outcome of the first step.
type userAnswers struct {
	clientID     string
	clientSecret string
	point        geo.Point
}

func (f *Flow) stepUser(ctx context.Context) (userAnswers, []fuelapi.StationPrice, error) {
	// Re-shown prompts suggest the previous answers, like the original
	// form re-display did.
	suggest := userSuggestions{
		clientID:     f.suggestedID,
		clientSecret: f.suggestedSecret,
		lat:          f.suggestedLat,
		lon:          f.suggestedLon,
	}

	for {
		var a userAnswers

		id, err := f.prompt("Client ID", suggest.clientID)
		if err != nil {
			return a, nil, err
		}
		secret, err := f.prompt("Client secret", suggest.clientSecret)
		if err != nil {
			return a, nil, err
		}
		lat, err := f.prompt("Latitude", suggest.lat)
		if err != nil {
			return a, nil, err
		}
		lon, err := f.prompt("Longitude", suggest.lon)
		if err != nil {
			return a, nil, err
		}

		suggest = userSuggestions{clientID: id, clientSecret: secret, lat: lat, lon: lon}

		if id == "" || secret == "" {
			f.say("Both a client id and a client secret are required.")
			continue
		}

		point, err := geo.ParseNSWPoint(lat, lon)
		if err != nil {
			f.logger.Debug("coordinate validation failed", zap.Error(err))
			f.say("Those coordinates are not inside NSW. Please try again.")
			continue
		}

		client, err := f.newClient(id, secret)
		if err != nil {
			return a, nil, err
		}

		f.logger.Debug("fetching nearby stations for authentication check")

		nearby, err := client.GetNearbyPrices(ctx, point.Latitude, point.Longitude, f.radiusKm, f.fuelType)
		if err != nil {
			var apiErr *fuelapi.Error
			if errors.As(err, &apiErr) && apiErr.Kind == fuelapi.KindAuth {
				f.say("The API rejected those credentials. Please try again.")
				continue
			}
			f.logger.Error("fuel api error", zap.Error(err))
			f.say("Could not reach the fuel API. Please try again.")
			continue
		}

		if len(nearby) == 0 {
			f.say("No stations found near those coordinates. Please try again.")
			continue
		}

		if len(nearby) > f.stationLimit {
			nearby = nearby[:f.stationLimit]
		}

		a.clientID = id
		a.clientSecret = secret
		a.point = point
		return a, nearby, nil
	}
}

type userSuggestions struct {
	clientID     string
	clientSecret string
	lat          string
	lon          string
}

func (f *Flow) stepStationSelect(nearby []fuelapi.StationPrice) ([]store.TrackedStation, error) {
	f.say("Nearby stations:")
	for i, sp := range nearby {
		f.say(fmt.Sprintf("  %2d) %s", i+1, FormatStationOption(sp)))
	}

	for {
		line, err := f.prompt("Stations to track (comma-separated numbers)", "")
		if err != nil {
			return nil, err
		}

		picks, err := parseSelection(line, len(nearby))
		if err != nil {
			f.say("Please enter one or more of the listed numbers, separated by commas.")
			continue
		}

		chosen := make([]store.TrackedStation, 0, len(picks))
		for _, i := range picks {
			st := nearby[i].Station
			chosen = append(chosen, store.TrackedStation{
				Code:    st.Code,
				Name:    st.Name,
				Brand:   st.Brand,
				Address: st.Address,
			})
		}
		return chosen, nil
	}
}

// parseSelection turns "1, 3,2" into unique zero-based indices in the order
// first mentioned.
func parseSelection(line string, n int) ([]int, error) {
	fields := strings.Split(line, ",")

	seen := make(map[int]bool, len(fields))
	picks := make([]int, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		v, err := strconv.Atoi(field)
		if err != nil || v < 1 || v > n {
			return nil, fmt.Errorf("%w: %q", ErrInvalidInput, field)
		}
		if seen[v-1] {
			continue
		}
		seen[v-1] = true
		picks = append(picks, v-1)
	}

	if len(picks) == 0 {
		return nil, fmt.Errorf("%w: nothing selected", ErrInvalidInput)
	}

	return picks, nil
}

// FormatStationOption returns the user-facing label for a station.
func FormatStationOption(sp fuelapi.StationPrice) string {
	st := sp.Station
	return fmt.Sprintf("%s - %s (%d)", st.Name, st.Address, st.Code)
}

// prompt writes "label [suggested]: " and reads one line.  An empty answer
// takes the suggestion.  io.EOF becomes ErrAborted.
func (f *Flow) prompt(label, suggested string) (string, error) {
	if suggested != "" {
		fmt.Fprintf(f.out, "%s [%s]: ", label, suggested)
	} else {
		fmt.Fprintf(f.out, "%s: ", label)
	}

	line, err := f.in.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		line = suggested
	}
	return line, nil
}

func (f *Flow) say(msg string) {
	fmt.Fprintln(f.out, msg)
}
