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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"stockproject/controllers/routes"
	"stockproject/controllers/routes/javascript"
	"stockproject/internal/routing"
)

type routesFlags struct {
	javascript bool
	format     string
}

func newRoutesCmd(global *globalFlags) *cobra.Command {
	flags := &routesFlags{}

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the reverse routing table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(global); err != nil {
				return err
			}

			return printRoutes(cmd.OutOrStdout(), flags)
		},
	}
	cmd.Flags().BoolVar(&flags.javascript, "javascript", false, "print the client-side route descriptors")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "table", "output format: table, json or yaml")

	return cmd
}

func printRoutes(w io.Writer, flags *routesFlags) error {
	var rows any
	if flags.javascript {
		rows = javascript.Descriptors()
	} else {
		rows = routing.Describe(routes.Prefix())
	}

	switch flags.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}

		return enc.Close()
	case "table":
		return printTable(w, flags.javascript)
	default:
		return fmt.Errorf("unknown format %q", flags.format)
	}
}

func printTable(w io.Writer, js bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMETHOD\tPATH")
	if js {
		for _, d := range javascript.Descriptors() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Method, d.URL)
		}
	} else {
		for _, e := range routing.Describe(routes.Prefix()) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Method, e.Path)
		}
	}

	return tw.Flush()
}
