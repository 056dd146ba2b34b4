// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package poller

import "fmt"

func clientVador() Option {
	return optionFunc(
		func(p *Poller) error {
			if p.client == nil {
				return fmt.Errorf("%w client is missing", ErrInvalidInput)
			}
			return nil
		})
}

func stationsVador() Option {
	return optionFunc(
		func(p *Poller) error {
			if len(p.stations) == 0 {
				return fmt.Errorf("%w stations are missing", ErrInvalidInput)
			}
			return nil
		})
}
