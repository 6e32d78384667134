package main

import (
	"github.com/spf13/cobra"

	"github.com/iot-manager/console/internal/config"
	consoleerrors "github.com/iot-manager/console/internal/errors"
	"github.com/iot-manager/console/internal/routes"
	"github.com/iot-manager/console/pkg/routetable"
	"github.com/iot-manager/console/pkg/views"
)

// configFlags are shared by every command that needs a route table.
type configFlags struct {
	path    string
	variant string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "config", "c", "", "Config file (default ./config.toml plus SERVICE_ENV overlay)")
	cmd.Flags().StringVar(&f.variant, "variant", "", "Route table variant: classic or gallery")
}

// load reads the configuration and applies command-line overrides.
func (f *configFlags) load(o config.Overrides) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.path != "" {
		cfg, err = config.LoadFile(f.path)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, consoleerrors.Classify(err, "C002")
	}

	if o.Variant == "" {
		o.Variant = f.variant
	}
	if err := cfg.Apply(o); err != nil {
		return nil, consoleerrors.Classify(err, "C002")
	}
	return cfg, nil
}

// buildTable creates the views and the configured route table.
func buildTable(cfg *config.Config) (*views.Set, *routetable.Table, error) {
	set := views.NewSet(cfg.Views.APIBase)
	table, err := routes.Build(cfg.Variant(), set)
	if err != nil {
		return nil, nil, consoleerrors.Classify(err, "C003")
	}
	return set, table, nil
}
