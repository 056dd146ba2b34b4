// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package setup

import "fmt"

func inputVador() Option {
	return optionFunc(
		func(f *Flow) error {
			if f.in == nil {
				return fmt.Errorf("%w input is missing", ErrInvalidInput)
			}
			return nil
		})
}

func outputVador() Option {
	return optionFunc(
		func(f *Flow) error {
			if f.out == nil {
				return fmt.Errorf("%w output is missing", ErrInvalidInput)
			}
			return nil
		})
}

func clientFactoryVador() Option {
	return optionFunc(
		func(f *Flow) error {
			if f.newClient == nil {
				return fmt.Errorf("%w client factory is missing", ErrInvalidInput)
			}
			return nil
		})
}
