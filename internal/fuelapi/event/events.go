// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"time"

	"github.com/google/uuid"
)

// CancelListenerFunc is the interface that provides a method to cancel
// a listener.
type CancelListenerFunc func()

// TokenFetch is the event that is sent when a token exchange with the
// authorization endpoint is performed.  A cache hit does not produce an
// event.
type TokenFetch struct {
	// At holds the time when the token request was made.
	At time.Time

	// Duration is the time waited for the token response.
	Duration time.Duration

	// UUID is the UUID of the request.
	UUID uuid.UUID

	// StatusCode is the status code returned from the authorization
	// endpoint.
	StatusCode int

	// Expiration is the time the token expires.
	Expiration time.Time

	// Err is the error returned from the authorization endpoint.
	Err error
}

// TokenFetchListener is the interface that must be implemented by types that
// want to receive TokenFetch notifications.
type TokenFetchListener interface {
	OnTokenFetch(TokenFetch)
}

// TokenFetchListenerFunc is a function type that implements
// TokenFetchListener.  It can be used as an adapter for functions that need
// to implement the TokenFetchListener interface.
type TokenFetchListenerFunc func(TokenFetch)

func (f TokenFetchListenerFunc) OnTokenFetch(e TokenFetch) {
	f(e)
}

// Request is the event that is sent when an authorized GET is performed.
type Request struct {
	// At holds the time when the request was made.
	At time.Time

	// Duration is the time waited for the response, including the single
	// retried attempt if one was made.
	Duration time.Duration

	// Path is the request path relative to the base URL.
	Path string

	// StatusCode is the status code of the final response received.
	StatusCode int

	// Retried is true if the request was reissued after the cached token
	// was rejected.
	Retried bool

	// Err is the error surfaced to the caller.
	Err error
}

// RequestListener is the interface that must be implemented by types that
// want to receive Request notifications.
type RequestListener interface {
	OnRequest(Request)
}

// RequestListenerFunc is a function type that implements RequestListener.
// It can be used as an adapter for functions that need to implement the
// RequestListener interface.
type RequestListenerFunc func(Request)

func (f RequestListenerFunc) OnRequest(e Request) {
	f(e)
}
