// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi"
	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi/event"
	"github.com/nswfuel/fuelcheck-agent/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type clientIn struct {
	fx.In
	Cfg    FuelAPI
	Entry  *store.Entry
	Logger *zap.Logger
}

func (in clientIn) Options() ([]fuelapi.Option, error) {
	logger := in.Logger.Named("fuel_api")

	client, err := in.Cfg.HTTPClient.NewClient()
	if err != nil {
		return nil, err
	}

	opts := []fuelapi.Option{
		fuelapi.BaseURL(in.Cfg.URL),
		fuelapi.ClientID(in.Entry.ClientID),
		fuelapi.ClientSecret(in.Entry.ClientSecret),
		fuelapi.HTTPClient(client),
		fuelapi.ExpiryMargin(in.Cfg.ExpiryMargin),
		fuelapi.RequestTimeout(in.Cfg.RequestTimeout),
		fuelapi.AddTokenFetchListener(event.TokenFetchListenerFunc(
			func(e event.TokenFetch) {
				logger.Info("token fetch",
					zap.Time("at", e.At),
					zap.Duration("duration", e.Duration),
					zap.String("uuid", e.UUID.String()),
					zap.Int("status_code", e.StatusCode),
					zap.Time("expiration", e.Expiration),
					zap.Error(e.Err),
				)
			})),
		fuelapi.AddRequestListener(event.RequestListenerFunc(
			func(e event.Request) {
				logger.Debug("request",
					zap.Time("at", e.At),
					zap.Duration("duration", e.Duration),
					zap.String("path", e.Path),
					zap.Int("status_code", e.StatusCode),
					zap.Bool("retried", e.Retried),
					zap.Error(e.Err),
				)
			})),
	}

	return opts, nil
}

func provideClient(in clientIn) (*fuelapi.Client, error) {
	opts, err := in.Options()
	if err != nil {
		return nil, err
	}

	return fuelapi.New(opts...)
}
