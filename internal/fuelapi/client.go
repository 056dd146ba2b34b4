// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuelapi is a client for the NSW FuelCheck API.  It owns the OAuth2
// client-credentials exchange, the in-memory token cache, and the authorized
// GET logic including the single retry performed when the server rejects a
// cached token mid-flight.
package fuelapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi/event"
	"github.com/xmidt-org/eventor"
)

var (
	ErrInvalidInput   = fmt.Errorf("invalid input")
	ErrBadCredentials = fmt.Errorf("invalid client credentials")
	ErrRequestFailed  = fmt.Errorf("request failed")
)

const (
	// DefaultExpiryMargin is subtracted from a token's expiration time when
	// deciding whether it is still usable.  It covers clock skew and the
	// in-flight latency of the request the token decorates.
	DefaultExpiryMargin = 60 * time.Second

	// DefaultRequestTimeout bounds each individual network call.
	DefaultRequestTimeout = 30 * time.Second

	// defaultTokenLifetime is assumed when the authorization endpoint omits
	// expires_in from the token response.
	defaultTokenLifetime = 3600 * time.Second

	tokenPath = "/oauth/client_credential/accesstoken"
)

// Kind tags an Error as either an authentication failure or a generic API
// failure.
type Kind int

const (
	// KindAPI covers HTTP error statuses, transport failures and anything
	// unexpected encountered while handling a response.
	KindAPI Kind = iota

	// KindAuth means the client credentials were rejected.  Retrying without
	// changing the credentials will not help.
	KindAuth
)

func (k Kind) String() string {
	if k == KindAuth {
		return "auth"
	}
	return "api"
}

// Error is the only error type returned by the client.  No raw transport or
// decoding error escapes without being wrapped in one.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "fuel api error"
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Client talks to the NSW FuelCheck API on behalf of exactly one set of
// client credentials.  Each Client owns its token cache; two Clients never
// share one.
type Client struct {
	m                sync.RWMutex
	nowFunc          func() time.Time
	tokenListeners   eventor.Eventor[event.TokenFetchListener]
	requestListeners eventor.Eventor[event.RequestListener]

	baseURL        string
	clientID       string
	clientSecret   string
	client         *http.Client
	expiryMargin   time.Duration
	requestTimeout time.Duration

	token *accessToken
}

// Option is the interface implemented by types that can be used to
// configure the client.
type Option interface {
	apply(*Client) error
}

// New creates a new fuel API client object.
func New(opts ...Option) (*Client, error) {
	required := []Option{
		baseURLVador(),
		clientIDVador(),
		clientSecretVador(),
	}

	c := Client{
		client:         http.DefaultClient,
		nowFunc:        time.Now,
		expiryMargin:   DefaultExpiryMargin,
		requestTimeout: DefaultRequestTimeout,
	}

	opts = append(opts, required...)

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt.apply(&c)
		if err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// Token returns a currently-valid bearer token, performing a token exchange
// if none is cached or the cached one is within the expiry margin.  A cache
// hit makes no network call.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.m.RLock()
	tok := c.token
	c.m.RUnlock()

	if tok != nil && c.nowFunc().Before(tok.ExpiresAt.Add(-c.expiryMargin)) {
		return tok.Value, nil
	}

	return c.fetchToken(ctx)
}

// fetchToken performs the client-credentials exchange and replaces the
// cached token.  Concurrent callers may both end up here; the last response
// to complete wins, which is harmless since every token the server hands out
// is usable.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	var fe event.TokenFetch

	tid, err := uuid.NewRandom()
	if err != nil {
		fe.Err = &Error{Kind: KindAPI, Message: "token request not attempted", cause: errors.Join(err, ErrRequestFailed)}
		return "", c.dispatch(fe)
	}
	fe.UUID = tid

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		fe.Err = &Error{Kind: KindAPI, Message: "token request not attempted", cause: errors.Join(err, ErrRequestFailed)}
		return "", c.dispatch(fe)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	fe.At = time.Now()
	resp, err := c.client.Do(req)
	fe.Duration = time.Since(fe.At)
	if err != nil {
		fe.Err = &Error{Kind: KindAPI, Message: "network error fetching token", cause: errors.Join(err, ErrRequestFailed)}
		return "", c.dispatch(fe)
	}
	defer resp.Body.Close()

	fe.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fe.Err = &Error{Kind: KindAPI, Message: "reading token response", cause: errors.Join(err, ErrRequestFailed)}
		return "", c.dispatch(fe)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		fe.Err = &Error{
			Kind:    KindAuth,
			Status:  resp.StatusCode,
			Message: "invalid client credentials",
			cause:   ErrBadCredentials,
		}
		return "", c.dispatch(fe)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		fe.Err = &Error{
			Kind:    KindAPI,
			Status:  resp.StatusCode,
			Message: "token request failed: " + strings.TrimSpace(string(body)),
			cause:   ErrRequestFailed,
		}
		return "", c.dispatch(fe)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		fe.Err = &Error{Kind: KindAPI, Message: "decoding token response", cause: errors.Join(err, ErrRequestFailed)}
		return "", c.dispatch(fe)
	}
	if tr.AccessToken == "" {
		fe.Err = &Error{Kind: KindAPI, Message: "token response missing access_token", cause: ErrRequestFailed}
		return "", c.dispatch(fe)
	}

	lifetime := defaultTokenLifetime
	if tr.ExpiresIn > 0 {
		lifetime = time.Duration(tr.ExpiresIn) * time.Second
	}

	tok := &accessToken{
		Value:     tr.AccessToken,
		ExpiresAt: c.nowFunc().Add(lifetime),
	}

	c.m.Lock()
	c.token = tok
	c.m.Unlock()

	fe.Expiration = tok.ExpiresAt

	return tok.Value, c.dispatch(fe)
}

// invalidate discards the cached token so the next exchange starts fresh.
func (c *Client) invalidate() {
	c.m.Lock()
	c.token = nil
	c.m.Unlock()
}

// get performs an authorized GET against path and decodes the JSON response
// body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	re := event.Request{
		Path: path,
		At:   time.Now(),
	}

	re.Err = c.doGet(ctx, path, params, out, &re)
	re.Duration = time.Since(re.At)

	return c.dispatch(re)
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values, out any, re *event.Request) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}

	status, body, err := c.authorizedGet(ctx, path, params, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		// The cached token passed the freshness check but the server
		// rejected it anyway (revocation, server-side expiry).  Discard it,
		// exchange for a brand-new one and retry the GET exactly once.
		re.Retried = true
		c.invalidate()

		token, err = c.fetchToken(ctx)
		if err != nil {
			return err
		}

		status, body, err = c.authorizedGet(ctx, path, params, token)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized {
			re.StatusCode = status
			return &Error{
				Kind:    KindAuth,
				Status:  status,
				Message: "authentication failed during request",
				cause:   ErrBadCredentials,
			}
		}
	}

	re.StatusCode = status

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return &Error{
			Kind:    KindAPI,
			Status:  status,
			Message: strings.TrimSpace(string(body)),
			cause:   ErrRequestFailed,
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindAPI, Message: "decoding response", cause: errors.Join(err, ErrRequestFailed)}
	}

	return nil
}

// authorizedGet issues one bearer-decorated GET and returns the status and
// raw body.  Transport and read failures come back already wrapped.
func (c *Client) authorizedGet(ctx context.Context, path string, params url.Values, token string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, &Error{Kind: KindAPI, Message: "request not attempted", cause: errors.Join(err, ErrRequestFailed)}
	}

	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &Error{Kind: KindAPI, Message: "connection error", cause: errors.Join(err, ErrRequestFailed)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &Error{Kind: KindAPI, Message: "reading response", cause: errors.Join(err, ErrRequestFailed)}
	}

	return resp.StatusCode, body, nil
}

// dispatch dispatches the event to the listeners and returns the error that
// should be returned by the caller.
func (c *Client) dispatch(evnt any) error {
	switch evnt := evnt.(type) {
	case event.TokenFetch:
		c.tokenListeners.Visit(func(listener event.TokenFetchListener) {
			listener.OnTokenFetch(evnt)
		})
		return evnt.Err
	case event.Request:
		c.requestListeners.Visit(func(listener event.RequestListener) {
			listener.OnRequest(evnt)
		})
		return evnt.Err
	}

	panic("unknown event type")
}

// accessToken is the token returned from the authorization endpoint as well
// as the computed expiration time.
type accessToken struct {
	Value     string
	ExpiresAt time.Time
}

// tokenResponse is the body of a successful token exchange.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
