// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"
	"time"

	"github.com/nswfuel/fuelcheck-agent/internal/fuelapi"
	"github.com/nswfuel/fuelcheck-agent/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/retry"
	"go.uber.org/zap"
)

func Test_providePoller(t *testing.T) {
	client, err := fuelapi.New(
		fuelapi.BaseURL("https://api.nsw.gov.au"),
		fuelapi.ClientID("id"),
		fuelapi.ClientSecret("secret"),
	)
	require.NoError(t, err)

	entry := &store.Entry{
		ClientID:     "id",
		ClientSecret: "secret",
		Stations: []store.TrackedStation{
			{Code: 2126},
			{Code: 815},
		},
	}

	tests := []struct {
		description string
		in          pollerIn
		wantErr     bool
	}{
		{
			description: "valid entry",
			in: pollerIn{
				Cfg: Poller{
					Interval:        time.Hour,
					RefDataInterval: 24 * time.Hour,
					RetryPolicy:     retry.Config{Interval: time.Minute},
				},
				Client: client,
				Entry:  entry,
			},
		}, {
			description: "no tracked stations",
			in: pollerIn{
				Client: client,
				Entry:  &store.Entry{ClientID: "id"},
			},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			tc.in.Logger = zap.NewNop()

			got, cancels, err := providePoller(tc.in)

			if tc.wantErr {
				assert.Error(err)
				assert.Nil(got)
				assert.Nil(cancels)
				return
			}

			assert.NoError(err)
			assert.NotNil(got)
			require.Len(t, cancels, 2)
			for _, c := range cancels {
				assert.NotNil(c)
			}
		})
	}
}
