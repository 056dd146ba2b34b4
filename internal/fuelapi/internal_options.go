// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package fuelapi

import "fmt"

func baseURLVador() Option {
	return optionFunc(
		func(c *Client) error {
			if c.baseURL == "" {
				return fmt.Errorf("%w base URL is missing", ErrInvalidInput)
			}
			return nil
		})
}

func clientIDVador() Option {
	return optionFunc(
		func(c *Client) error {
			if c.clientID == "" {
				return fmt.Errorf("%w client id is missing", ErrInvalidInput)
			}
			return nil
		})
}

func clientSecretVador() Option {
	return optionFunc(
		func(c *Client) error {
			if c.clientSecret == "" {
				return fmt.Errorf("%w client secret is missing", ErrInvalidInput)
			}
			return nil
		})
}
