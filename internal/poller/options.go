// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package poller

import (
	"fmt"
	"time"

	"github.com/nswfuel/fuelcheck-agent/internal/poller/event"
	"github.com/xmidt-org/retry"
)

type optionFunc func(*Poller) error

var _ Option = optionFunc(nil)

func (f optionFunc) apply(p *Poller) error {
	return f(p)
}

type nilOptionFunc func(*Poller)

var _ Option = nilOptionFunc(nil)

func (f nilOptionFunc) apply(p *Poller) error {
	f(p)
	return nil
}

// Client is the API client used to fetch prices and reference data.
func Client(client PriceFetcher) Option {
	return nilOptionFunc(
		func(p *Poller) {
			p.client = client
		})
}

// Stations is the list of station codes to refresh.
func Stations(codes []int) Option {
	return nilOptionFunc(
		func(p *Poller) {
			p.stations = codes
		})
}

// Interval is how often station prices are refreshed.  A value of zero
// means the default.  Negative values are rejected.
func Interval(interval time.Duration) Option {
	return optionFunc(
		func(p *Poller) error {
			if interval < 0 {
				return fmt.Errorf("%w: negative interval", ErrInvalidInput)
			}
			p.interval = interval
			if p.interval == 0 {
				p.interval = DefaultInterval
			}
			return nil
		})
}

// RefDataInterval is how often the reference data is refreshed.  A value of
// zero means the default.  Negative values are rejected.
func RefDataInterval(interval time.Duration) Option {
	return optionFunc(
		func(p *Poller) error {
			if interval < 0 {
				return fmt.Errorf("%w: negative refdata interval", ErrInvalidInput)
			}
			p.refDataInterval = interval
			if p.refDataInterval == 0 {
				p.refDataInterval = DefaultRefDataInterval
			}
			return nil
		})
}

// RetryPolicy sets the retry policy factory used for delaying the next pass
// after one with failures.
func RetryPolicy(pf retry.PolicyFactory) Option {
	return nilOptionFunc(
		func(p *Poller) {
			if pf != nil {
				p.retryPolicyFactory = pf
			}
		})
}

// NowFunc is the function used to obtain the current time.
func NowFunc(nowFunc func() time.Time) Option {
	return nilOptionFunc(
		func(p *Poller) {
			if nowFunc == nil {
				nowFunc = time.Now
			}
			p.nowFunc = nowFunc
		})
}

// AddUpdateListener adds a listener for station refresh events.  If the
// optional cancel parameter is provided, it is set to a function that can be
// used to cancel the listener.
func AddUpdateListener(listener event.UpdateListener, cancel ...*event.CancelListenerFunc) Option {
	return nilOptionFunc(
		func(p *Poller) {
			cncl := p.updateListeners.Add(listener)
			if len(cancel) > 0 && cancel[0] != nil {
				*cancel[0] = event.CancelListenerFunc(cncl)
			}
		})
}

// AddRefDataListener adds a listener for reference data refresh events.  If
// the optional cancel parameter is provided, it is set to a function that
// can be used to cancel the listener.
func AddRefDataListener(listener event.RefDataListener, cancel ...*event.CancelListenerFunc) Option {
	return nilOptionFunc(
		func(p *Poller) {
			cncl := p.refDataListeners.Add(listener)
			if len(cancel) > 0 && cancel[0] != nil {
				*cancel[0] = event.CancelListenerFunc(cncl)
			}
		})
}
