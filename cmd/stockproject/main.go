// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command stockproject serves the stock tracking web application.
//
// Usage:
//
//	stockproject [serve] [--config conf/application.yaml]
//	stockproject routes [--javascript] [--format table|json|yaml]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stockproject/controllers/routes"
	"stockproject/internal/config"
)

var version = "dev"

type globalFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "stockproject",
		Short:         "Stock tracking web application",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "",
		"configuration file (default: conf/application.yaml)")

	root.AddCommand(newServeCmd(flags), newRoutesCmd(flags))

	return root
}

// loadConfig reads the configuration and publishes the route prefix.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, _, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if err := routes.SetPrefix(cfg.Routes.Prefix); err != nil {
		return nil, err
	}

	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "stockproject:", err)
		stop()
		os.Exit(1)
	}
}
