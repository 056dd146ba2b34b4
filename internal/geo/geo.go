// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

// Package geo validates the coordinates the setup flow collects before any
// network call is made with them.
package geo

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrBadCoordinate = fmt.Errorf("bad coordinate")
	ErrOutOfRegion   = fmt.Errorf("coordinate outside the supported region")
)

// The supported region is the box spanned by Cameron Corner, where the NSW,
// QLD and SA borders meet, and the state's south-east extremity.
const (
	latCameronCorner = -28.996
	lonCameronCorner = 140.999
	latSouthEast     = -37.505
	lonSouthEast     = 153.639
)

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// ParsePoint parses the latitude and longitude strings the user typed and
// range-checks them against the valid coordinate space.
func ParsePoint(lat, lon string) (Point, error) {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: latitude %q", ErrBadCoordinate, lat)
	}
	if latitude < -90 || latitude > 90 {
		return Point{}, fmt.Errorf("%w: latitude %v out of range", ErrBadCoordinate, latitude)
	}

	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: longitude %q", ErrBadCoordinate, lon)
	}
	if longitude < -180 || longitude > 180 {
		return Point{}, fmt.Errorf("%w: longitude %v out of range", ErrBadCoordinate, longitude)
	}

	return Point{Latitude: latitude, Longitude: longitude}, nil
}

// InNSW reports whether the point falls inside the NSW bounding box.
func InNSW(p Point) bool {
	return latSouthEast <= p.Latitude && p.Latitude <= latCameronCorner &&
		lonCameronCorner <= p.Longitude && p.Longitude <= lonSouthEast
}

// ParseNSWPoint combines ParsePoint and the bounding-box check.
func ParseNSWPoint(lat, lon string) (Point, error) {
	p, err := ParsePoint(lat, lon)
	if err != nil {
		return Point{}, err
	}

	if !InNSW(p) {
		return Point{}, fmt.Errorf("%w: %v, %v", ErrOutOfRegion, p.Latitude, p.Longitude)
	}

	return p, nil
}
