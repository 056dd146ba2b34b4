// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package fuelapi

import (
	"context"
	"net/url"
	"strconv"
)

const (
	referencePath = "/FuelCheckRefData/v2/fuel/lovs"
	stationPath   = "/FuelPriceCheck/v2/fuel/prices/station/"
	nearbyPath    = "/FuelPriceCheck/v2/fuel/prices/nearby"
)

// GetReferenceData fetches the list-of-values reference data.  The payload
// changes rarely, so callers refresh it on a long cadence.
func (c *Client) GetReferenceData(ctx context.Context) (*ReferenceData, error) {
	var out ReferenceData
	if err := c.get(ctx, referencePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStationPrice fetches the current prices for a single station.
func (c *Client) GetStationPrice(ctx context.Context, stationCode int) (*StationPriceData, error) {
	var out StationPriceData
	if err := c.get(ctx, stationPath+strconv.Itoa(stationCode), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNearbyPrices fetches prices for stations within radiusKm of the given
// point, filtered to one fuel type.  Stations and prices arrive as parallel
// lists; the result pairs each station with its matching price, in the order
// the API ranked the stations.
func (c *Client) GetNearbyPrices(ctx context.Context, latitude, longitude float64, radiusKm int, fuelType string) ([]StationPrice, error) {
	params := url.Values{
		"latitude":  {strconv.FormatFloat(latitude, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(longitude, 'f', -1, 64)},
		"radius":    {strconv.Itoa(radiusKm)},
		"fueltype":  {fuelType},
	}

	var out nearbyResponse
	if err := c.get(ctx, nearbyPath, params, &out); err != nil {
		return nil, err
	}

	prices := make(map[int]Price, len(out.Prices))
	for _, p := range out.Prices {
		prices[p.StationCode] = p
	}

	pairs := make([]StationPrice, 0, len(out.Stations))
	for _, st := range out.Stations {
		price, ok := prices[st.Code]
		if !ok {
			// A station without a price for the requested fuel type is of
			// no use to the caller.
			continue
		}
		pairs = append(pairs, StationPrice{Station: st, Price: price})
	}

	return pairs, nil
}
