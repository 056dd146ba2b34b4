// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package poller periodically refreshes the prices of the tracked stations
// and, on a much longer cadence, the API's reference data.  Consumers
// observe the results through listeners.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi"
	"github.com/nswfuel/fuelcheck-agent/internal/poller/event"
	"github.com/xmidt-org/eventor"
	"github.com/xmidt-org/retry"
)

var (
	ErrInvalidInput = fmt.Errorf("invalid input")
)

const (
	// DefaultInterval is how often station prices are refreshed.
	DefaultInterval = 30 * time.Minute

	// DefaultRefDataInterval is how often the reference data is refreshed.
	// It changes rarely; roughly monthly is plenty.
	DefaultRefDataInterval = 720 * time.Hour
)

// PriceFetcher is the slice of the API client the poller needs.
type PriceFetcher interface {
	GetStationPrice(ctx context.Context, stationCode int) (*fuelapi.StationPriceData, error)
	GetReferenceData(ctx context.Context) (*fuelapi.ReferenceData, error)
}

// Poller drives the refresh loop for one entry's tracked stations.
type Poller struct {
	m                sync.Mutex
	wg               sync.WaitGroup
	shutdown         context.CancelFunc
	nowFunc          func() time.Time
	updateListeners  eventor.Eventor[event.UpdateListener]
	refDataListeners eventor.Eventor[event.RefDataListener]

	client             PriceFetcher
	stations           []int
	interval           time.Duration
	refDataInterval    time.Duration
	retryPolicyFactory retry.PolicyFactory
}

// Option is the interface implemented by types that can be used to
// configure the poller.
type Option interface {
	apply(*Poller) error
}

// New creates a new poller object.
func New(opts ...Option) (*Poller, error) {
	required := []Option{
		clientVador(),
		stationsVador(),
	}

	p := Poller{
		nowFunc:         time.Now,
		interval:        DefaultInterval,
		refDataInterval: DefaultRefDataInterval,
		retryPolicyFactory: retry.Config{
			Interval:    time.Minute,
			Multiplier:  2.0,
			Jitter:      1.0 / 3.0,
			MaxInterval: 15 * time.Minute,
		},
	}

	opts = append(opts, required...)

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt.apply(&p)
		if err != nil {
			return nil, err
		}
	}

	return &p, nil
}

// Start starts the poller.
func (p *Poller) Start() {
	p.m.Lock()
	defer p.m.Unlock()

	if p.shutdown != nil {
		return
	}

	var ctx context.Context
	ctx, p.shutdown = context.WithCancel(context.Background())

	p.wg.Add(1)
	go p.run(ctx)
}

// Stop stops the poller.
func (p *Poller) Stop() {
	p.m.Lock()
	shutdown := p.shutdown
	p.m.Unlock()

	if shutdown != nil {
		shutdown()
	}
	p.wg.Wait()
}

// run is the main loop.  Each pass refreshes every tracked station, then
// sleeps for the configured interval, or for the retry policy's suggestion
// after a pass with failures.
func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	policy := p.retryPolicyFactory.NewPolicy(ctx)

	var lastRefData time.Time

	for {
		if p.nowFunc().Sub(lastRefData) >= p.refDataInterval {
			if p.refreshRefData(ctx) {
				lastRefData = p.nowFunc()
			}
		}

		failed, terminal := p.refresh(ctx)
		if terminal {
			// The credentials have been rejected outright.  Polling again
			// cannot help; the user needs to run setup again.
			return
		}

		next := p.interval
		if failed {
			next, _ = policy.Next()
		} else {
			// Reset the backoff after a clean pass.
			policy = p.retryPolicyFactory.NewPolicy(ctx)
		}

		timer := time.NewTimer(next)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// refresh fetches every tracked station once.  terminal is set when the
// server said the credentials themselves are bad.
func (p *Poller) refresh(ctx context.Context) (failed, terminal bool) {
	for _, code := range p.stations {
		e := event.Update{
			At:          p.nowFunc(),
			StationCode: code,
		}

		data, err := p.client.GetStationPrice(ctx, code)
		if err != nil {
			e.Err = err
			failed = true

			var apiErr *fuelapi.Error
			if errors.As(err, &apiErr) && apiErr.Kind == fuelapi.KindAuth {
				terminal = true
			}
		} else {
			e.Prices = data.Prices
		}

		p.dispatch(e)

		if terminal || ctx.Err() != nil {
			return failed, terminal
		}
	}

	return failed, terminal
}

// refreshRefData fetches the reference data once and reports success.
func (p *Poller) refreshRefData(ctx context.Context) bool {
	e := event.RefData{At: p.nowFunc()}

	data, err := p.client.GetReferenceData(ctx)
	if err != nil {
		e.Err = err
	} else {
		e.Data = data
	}

	p.dispatch(e)

	return err == nil
}

// dispatch dispatches the event to the listeners.
func (p *Poller) dispatch(evnt any) {
	switch evnt := evnt.(type) {
	case event.Update:
		p.updateListeners.Visit(func(listener event.UpdateListener) {
			listener.OnUpdate(evnt)
		})
	case event.RefData:
		p.refDataListeners.Visit(func(listener event.RefDataListener) {
			listener.OnRefData(evnt)
		})
	default:
		panic("unknown event type")
	}
}
