// SPDX-FileCopyrightText: 2025 The fuelcheck-agent Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/goschtalt/goschtalt"
	_ "github.com/goschtalt/goschtalt/pkg/typical"
	_ "github.com/goschtalt/yaml-decoder"
	_ "github.com/goschtalt/yaml-encoder"
	"github.com/xmidt-org/arrange/arrangehttp"
	"github.com/xmidt-org/retry"
	"github.com/xmidt-org/sallust"
	"gopkg.in/dealancer/validate.v2"
)

//go:embed default-config.yaml
var defaultConfigFile []byte

// Config is the configuration for the fuelcheck-agent.
type Config struct {
	Logger  sallust.Config
	FuelAPI FuelAPI
	Storage Storage
	Poller  Poller
	Setup   Setup
}

// FuelAPI contains the information needed to talk to the NSW FuelCheck API.
type FuelAPI struct {
	// URL is the base URL of the API gateway.
	URL string

	// HTTPClient is the configuration for the HTTP client used for both the
	// token exchange and the data requests.
	HTTPClient arrangehttp.ClientConfig

	// ExpiryMargin is how long before the reported expiration a cached token
	// is treated as expired.
	ExpiryMargin time.Duration

	// RequestTimeout bounds each individual HTTP request.
	RequestTimeout time.Duration
}

type Storage struct {
	// Durable is the directory the entry file is stored in.
	Durable string

	// EntryFile is the name of the entry file inside the durable directory.
	EntryFile string

	// FilePermissions is the permissions to use when creating the entry
	// file.
	FilePermissions fs.FileMode
}

// Poller configures the price refresh loop.
type Poller struct {
	// Interval is how often station prices are refreshed.
	Interval time.Duration

	// RefDataInterval is how often the reference data is refreshed.
	RefDataInterval time.Duration

	// RetryPolicy sets the retry policy factory used for delaying between
	// passes after a pass with failures.
	RetryPolicy retry.Config
}

// Setup configures the interactive setup wizard.
type Setup struct {
	// RadiusKm is the search radius used when listing nearby stations.
	RadiusKm int

	// FuelType is the fuel type used when listing nearby stations.
	FuelType string

	// StationLimit caps how many nearby stations are offered.
	StationLimit int
}

// Collect and process the configuration files and env vars and
// produce a configuration object.
func provideConfig(cli *CLI) (*goschtalt.Config, error) {
	gs, err := goschtalt.New(
		goschtalt.StdCfgLayout(applicationName, cli.Files...),
		goschtalt.ConfigIs("two_words"),
		goschtalt.DefaultUnmarshalOptions(
			goschtalt.WithValidator(
				goschtalt.ValidatorFunc(validate.Validate),
			),
		),
		// Seed the program with the default, built-in configuration
		goschtalt.AddBuffer("!built-in.yaml", defaultConfigFile, goschtalt.AsDefault()),
	)
	if err != nil {
		return nil, err
	}

	if cli.Default != "" {
		err := os.WriteFile("./"+cli.Default, defaultConfigFile, 0644) // nolint: gosec
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(-1)
		}
		os.Exit(0)
	}

	if cli.Show {
		// handleCLIShow handles the -s/--show option where the configuration is
		// shown, then the program is exited.
		//
		// Exit with success because if the configuration is broken it will be
		// very hard to debug where the problem originates.  This way you can
		// see the configuration and then run the service with the same
		// configuration to see the error.

		fmt.Fprintln(os.Stdout, gs.Explain().String())

		out, err := gs.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stdout, "## Final Configuration\n---\n"+string(out))
		}

		os.Exit(0)
	}

	var tmp Config
	err = gs.Unmarshal(goschtalt.Root, &tmp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "There is a critical error in the configuration.")
		fmt.Fprintln(os.Stderr, "Run with -s/--show to see the configuration.")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		// Exit here to prevent a very difficult to debug error from occurring.
		os.Exit(0)
	}

	return gs, nil
}
