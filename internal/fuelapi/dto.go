// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package fuelapi

// Location is a station's position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Station describes a fuel station as the API reports it.
type Station struct {
	Code     int      `json:"code"`
	Name     string   `json:"name"`
	Brand    string   `json:"brand"`
	Address  string   `json:"address"`
	Location Location `json:"location"`
}

// Price is a single fuel price observation.
type Price struct {
	// StationCode is only populated by endpoints that return prices for
	// more than one station.
	StationCode int     `json:"stationcode,omitempty"`
	FuelType    string  `json:"fueltype"`
	Price       float64 `json:"price"`
	LastUpdated string  `json:"lastupdated"`
}

// StationPrice pairs a station with one of its prices.
type StationPrice struct {
	Station Station
	Price   Price
}

// FuelType is a reference-data fuel type entry.
type FuelType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Brand is a reference-data brand entry.
type Brand struct {
	Name string `json:"name"`
}

// ReferenceData is the list-of-values payload served by the reference
// endpoint.
type ReferenceData struct {
	Stations struct {
		Items []Station `json:"items"`
	} `json:"stations"`
	FuelTypes struct {
		Items []FuelType `json:"items"`
	} `json:"fueltypes"`
	Brands struct {
		Items []Brand `json:"items"`
	} `json:"brands"`
}

// StationPriceData is the payload served by the per-station price endpoint.
type StationPriceData struct {
	Prices []Price `json:"prices"`
}

// nearbyResponse is the payload served by the nearby-prices endpoint.
// Stations and prices arrive as parallel lists joined on station code.
type nearbyResponse struct {
	Stations []Station `json:"stations"`
	Prices   []Price   `json:"prices"`
}
