// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/nswfuel/fuelcheck-agent/internal/fs"
	"github.com/nswfuel/fuelcheck-agent/internal/fs/os"
	"github.com/nswfuel/fuelcheck-agent/internal/store"
	"go.uber.org/fx"
)

func fsProvide() fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(s Storage) (fs.FS, error) {
				return os.New(s.Durable)
			},
			fx.ResultTags(`name:"durable_fs"`),
		),
	)
}

func storeProvide() fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(durable fs.FS, s Storage) (*store.Store, error) {
				return store.New(durable, s.EntryFile, s.FilePermissions)
			},
			fx.ParamTags(`name:"durable_fs"`, ``),
		),
	)
}
