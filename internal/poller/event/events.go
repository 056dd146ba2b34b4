// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"time"

	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi"
)

// CancelListenerFunc is the interface that provides a method to cancel
// a listener.
type CancelListenerFunc func()

// Update is the event that is sent after each attempt to refresh the prices
// of one tracked station.
type Update struct {
	// At holds the time when the refresh was attempted.
	At time.Time

	// StationCode identifies the station.
	StationCode int

	// Prices holds the station's current prices when the refresh succeeded.
	Prices []fuelapi.Price

	// Err is the error when the refresh failed.
	Err error
}

// UpdateListener is the interface that must be implemented by types that
// want to receive Update notifications.
type UpdateListener interface {
	OnUpdate(Update)
}

// UpdateListenerFunc is a function type that implements UpdateListener.
type UpdateListenerFunc func(Update)

func (f UpdateListenerFunc) OnUpdate(e Update) {
	f(e)
}

// RefData is the event that is sent after each attempt to refresh the
// reference data.
type RefData struct {
	// At holds the time when the refresh was attempted.
	At time.Time

	// Data is the reference data when the refresh succeeded.
	Data *fuelapi.ReferenceData

	// Err is the error when the refresh failed.
	Err error
}

// RefDataListener is the interface that must be implemented by types that
// want to receive RefData notifications.
type RefDataListener interface {
	OnRefData(RefData)
}

// RefDataListenerFunc is a function type that implements RefDataListener.
type RefDataListenerFunc func(RefData)

func (f RefDataListenerFunc) OnRefData(e RefData) {
	f(e)
}
