// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi"
	"github.com/nswfuel/fuelcheck-agent/internal/poller"
	"github.com/nswfuel/fuelcheck-agent/internal/poller/event"
	"github.com/nswfuel/fuelcheck-agent/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type pollerIn struct {
	fx.In
	Cfg    Poller
	Client *fuelapi.Client
	Entry  *store.Entry
	Logger *zap.Logger
}

func (in pollerIn) Options(updateCancel, refDataCancel *event.CancelListenerFunc) []poller.Option {
	logger := in.Logger.Named("poller")

	stations := make([]int, 0, len(in.Entry.Stations))
	for _, s := range in.Entry.Stations {
		stations = append(stations, s.Code)
	}

	opts := []poller.Option{
		poller.Client(in.Client),
		poller.Stations(stations),
		poller.Interval(in.Cfg.Interval),
		poller.RefDataInterval(in.Cfg.RefDataInterval),
		poller.AddUpdateListener(event.UpdateListenerFunc(
			func(e event.Update) {
				logger.Info("update",
					zap.Time("at", e.At),
					zap.Int("station_code", e.StationCode),
					zap.Int("prices", len(e.Prices)),
					zap.Error(e.Err),
				)
			}), updateCancel),
		poller.AddRefDataListener(event.RefDataListenerFunc(
			func(e event.RefData) {
				logger.Info("reference data",
					zap.Time("at", e.At),
					zap.Error(e.Err),
				)
			}), refDataCancel),
	}

	if in.Cfg.RetryPolicy.Interval > 0 {
		opts = append(opts, poller.RetryPolicy(in.Cfg.RetryPolicy))
	}

	return opts
}

func providePoller(in pollerIn) (*poller.Poller, []event.CancelListenerFunc, error) {
	// The cancel funcs are filled in when New applies the options, so the
	// list is only assembled afterwards.
	var updateCancel, refDataCancel event.CancelListenerFunc

	p, err := poller.New(in.Options(&updateCancel, &refDataCancel)...)
	if err != nil {
		return nil, nil, err
	}

	return p, []event.CancelListenerFunc{updateCancel, refDataCancel}, nil
}
