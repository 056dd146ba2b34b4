// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package fuelapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi/event"
)

type optionFunc func(*Client) error

var _ Option = optionFunc(nil)

func (f optionFunc) apply(c *Client) error {
	return f(c)
}

type nilOptionFunc func(*Client)

var _ Option = nilOptionFunc(nil)

func (f nilOptionFunc) apply(c *Client) error {
	f(c)
	return nil
}

// BaseURL is the scheme and host of the fuel API.  Any trailing slash is
// removed so paths can be appended as literals.
func BaseURL(url string) Option {
	return nilOptionFunc(
		func(c *Client) {
			c.baseURL = strings.TrimRight(url, "/")
		})
}

// ClientID is the OAuth2 client id.  It is immutable for the lifetime of
// the client.
func ClientID(id string) Option {
	return nilOptionFunc(
		func(c *Client) {
			c.clientID = id
		})
}

// ClientSecret is the OAuth2 client secret.  It is immutable for the
// lifetime of the client.
func ClientSecret(secret string) Option {
	return nilOptionFunc(
		func(c *Client) {
			c.clientSecret = secret
		})
}

// HTTPClient is the HTTP client used for all network calls.
func HTTPClient(client *http.Client) Option {
	return nilOptionFunc(
		func(c *Client) {
			if client == nil {
				client = http.DefaultClient
			}
			c.client = client
		})
}

// ExpiryMargin is how long before its stated expiration a cached token is
// treated as stale.  A value of zero means the default of 60 seconds.
// Negative values are rejected.
func ExpiryMargin(margin time.Duration) Option {
	return optionFunc(
		func(c *Client) error {
			if margin < 0 {
				return ErrInvalidInput
			}

			c.expiryMargin = margin

			if c.expiryMargin == 0 {
				c.expiryMargin = DefaultExpiryMargin
			}
			return nil
		})
}

// RequestTimeout bounds each individual network call.  A value of zero
// means the default of 30 seconds.  Negative values are rejected.
func RequestTimeout(timeout time.Duration) Option {
	return optionFunc(
		func(c *Client) error {
			if timeout < 0 {
				return ErrInvalidInput
			}

			c.requestTimeout = timeout

			if c.requestTimeout == 0 {
				c.requestTimeout = DefaultRequestTimeout
			}
			return nil
		})
}

// NowFunc is the function used to obtain the current time.
func NowFunc(nowFunc func() time.Time) Option {
	return nilOptionFunc(
		func(c *Client) {
			if nowFunc == nil {
				nowFunc = time.Now
			}
			c.nowFunc = nowFunc
		})
}

// AddTokenFetchListener adds a listener for token exchange events.  If the
// optional cancel parameter is provided, it is set to a function that can be
// used to cancel the listener.
func AddTokenFetchListener(listener event.TokenFetchListener, cancel ...*event.CancelListenerFunc) Option {
	return nilOptionFunc(
		func(c *Client) {
			cncl := c.tokenListeners.Add(listener)
			if len(cancel) > 0 && cancel[0] != nil {
				*cancel[0] = event.CancelListenerFunc(cncl)
			}
		})
}

// AddRequestListener adds a listener for authorized request events.  If the
// optional cancel parameter is provided, it is set to a function that can be
// used to cancel the listener.
func AddRequestListener(listener event.RequestListener, cancel ...*event.CancelListenerFunc) Option {
	return nilOptionFunc(
		func(c *Client) {
			cncl := c.requestListeners.Add(listener)
			if len(cancel) > 0 && cancel[0] != nil {
				*cancel[0] = event.CancelListenerFunc(cncl)
			}
		})
}
