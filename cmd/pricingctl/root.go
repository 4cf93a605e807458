package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/registry-pricing-service/internal/config"
	"github.com/light-bringer/registry-pricing-service/internal/pkg/logging"
	"github.com/light-bringer/registry-pricing-service/internal/services"
)

// cli holds state shared by every subcommand.
type cli struct {
	configPath string
	output     string

	cfg    config.Config
	logger *zap.Logger
	opts   *services.ServiceOptions
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "pricingctl",
		Short:         "Inspect and operate the registry pricing service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			c.close()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "yaml", "output format (yaml or json)")

	root.AddCommand(
		newFeeCommand(c),
		newDomainCommand(c),
		newTokenCommand(c),
		newEventsCommand(c),
		newOutboxCommand(c),
	)
	return root
}

func (c *cli) init() error {
	if c.output != "yaml" && c.output != "json" {
		return fmt.Errorf("unknown output format %q", c.output)
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.cfg = cfg

	logCfg := cfg.Logging
	logCfg.Format = "console"
	c.logger, err = logging.New(logCfg)
	return err
}

// services lazily connects to Spanner and wires the use cases.
func (c *cli) services(cmd *cobra.Command) (*services.ServiceOptions, error) {
	if c.opts != nil {
		return c.opts, nil
	}
	opts, err := services.NewServiceOptions(cmd.Context(), c.cfg, c.logger)
	if err != nil {
		return nil, err
	}
	c.opts = opts
	return opts, nil
}

func (c *cli) close() {
	if c.opts != nil {
		c.opts.Close()
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// print renders v in the selected output format.
func (c *cli) print(w io.Writer, v interface{}) error {
	if c.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}
