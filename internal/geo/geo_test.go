// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNSWPoint(t *testing.T) {
	tests := []struct {
		description string
		lat         string
		lon         string
		want        Point
		expectedErr error
	}{
		{
			description: "sydney",
			lat:         "-33.8688",
			lon:         "151.2093",
			want:        Point{Latitude: -33.8688, Longitude: 151.2093},
		}, {
			description: "whitespace is tolerated",
			lat:         " -33.8688 ",
			lon:         " 151.2093 ",
			want:        Point{Latitude: -33.8688, Longitude: 151.2093},
		}, {
			description: "broken hill, near the western border",
			lat:         "-31.9530",
			lon:         "141.4535",
			want:        Point{Latitude: -31.9530, Longitude: 141.4535},
		}, {
			description: "unparseable latitude",
			lat:         "north a bit",
			lon:         "151.2",
			expectedErr: ErrBadCoordinate,
		}, {
			description: "unparseable longitude",
			lat:         "-33.8",
			lon:         "east",
			expectedErr: ErrBadCoordinate,
		}, {
			description: "latitude out of range",
			lat:         "-91",
			lon:         "151.2",
			expectedErr: ErrBadCoordinate,
		}, {
			description: "longitude out of range",
			lat:         "-33.8",
			lon:         "181",
			expectedErr: ErrBadCoordinate,
		}, {
			description: "melbourne is outside the region",
			lat:         "-37.8136",
			lon:         "144.9631",
			expectedErr: ErrOutOfRegion,
		}, {
			description: "brisbane is outside the region",
			lat:         "-27.4698",
			lon:         "153.0251",
			expectedErr: ErrOutOfRegion,
		}, {
			description: "auckland is outside the region",
			lat:         "-36.8509",
			lon:         "174.7645",
			expectedErr: ErrOutOfRegion,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			got, err := ParseNSWPoint(tc.lat, tc.lon)

			if tc.expectedErr != nil {
				assert.ErrorIs(err, tc.expectedErr)
				assert.Zero(got)
				return
			}

			assert.NoError(err)
			assert.Equal(tc.want, got)
		})
	}
}

func TestInNSW(t *testing.T) {
	assert := assert.New(t)

	assert.True(InNSW(Point{Latitude: -33.87, Longitude: 151.21}))
	assert.False(InNSW(Point{Latitude: 0, Longitude: 0}))
}
