// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi"
	"github.com/nswfuel/fuelcheck-agent/internal/setup"
	"github.com/nswfuel/fuelcheck-agent/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// Environment variables the wizard offers as suggested credentials.
	envKey    = "NSWFUELCHECKAPI_KEY"
	envSecret = "NSWFUELCHECKAPI_SECRET"
)

type entryIn struct {
	fx.In
	CLI      *CLI
	Store    *store.Store
	FuelCfg  FuelAPI
	SetupCfg Setup
	Logger   *zap.Logger
}

// newClientFactory builds API clients for the wizard.  Each attempt gets a
// fresh client because the credentials under test change between attempts.
func newClientFactory(cfg FuelAPI) setup.ClientFactory {
	return func(clientID, clientSecret string) (setup.PriceFinder, error) {
		client, err := cfg.HTTPClient.NewClient()
		if err != nil {
			return nil, err
		}

		return fuelapi.New(
			fuelapi.BaseURL(cfg.URL),
			fuelapi.ClientID(clientID),
			fuelapi.ClientSecret(clientSecret),
			fuelapi.HTTPClient(client),
			fuelapi.ExpiryMargin(cfg.ExpiryMargin),
			fuelapi.RequestTimeout(cfg.RequestTimeout),
		)
	}
}

// provideEntry loads the stored entry, or runs the setup wizard when asked
// to.  The wizard's suggested credentials come from the environment, with a
// .env file honored if present.
func provideEntry(in entryIn) (*store.Entry, error) {
	if !in.CLI.Setup {
		e, err := in.Store.Load()
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w, run with --setup first", err)
		}
		return e, err
	}

	_ = godotenv.Load()

	flow, err := setup.New(
		setup.Input(os.Stdin),
		setup.Output(os.Stdout),
		setup.Clients(newClientFactory(in.FuelCfg)),
		setup.Logger(in.Logger.Named("setup")),
		setup.RadiusKm(in.SetupCfg.RadiusKm),
		setup.FuelType(in.SetupCfg.FuelType),
		setup.StationLimit(in.SetupCfg.StationLimit),
		setup.SuggestedCredentials(os.Getenv(envKey), os.Getenv(envSecret)),
	)
	if err != nil {
		return nil, err
	}

	e, err := flow.Run(context.Background())
	if err != nil {
		return nil, err
	}

	if err := in.Store.Save(*e, in.CLI.Overwrite); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w, run with --overwrite to replace it", err)
		}
		return nil, err
	}

	return e, nil
}
