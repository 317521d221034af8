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
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"stockproject/controllers/routes/javascript"
	"stockproject/internal/routing"
)

// The commands publish the process-wide route prefix, so these tests only use
// the default prefix and do not run in parallel.

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	return out.String()
}

func TestRoutesCmd_Table(t *testing.T) {
	out := execute(t, "routes", "--config", "testdata/application.yaml")

	assert.Contains(t, out, "NAME")
	assert.Regexp(t, `StocksController\.show\s+GET\s+/stocks/:symbol`, out)
	assert.Regexp(t, `Assets\.versioned\s+GET\s+/assets/\*file`, out)
}

func TestRoutesCmd_JSON(t *testing.T) {
	out := execute(t, "routes", "--config", "testdata/application.yaml", "--format", "json")

	var entries []routing.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 9)
}

func TestRoutesCmd_JavaScriptYAML(t *testing.T) {
	out := execute(t, "routes", "--config", "testdata/application.yaml", "--javascript", "--format", "yaml")

	var descriptors []javascript.JavaScriptReverseRoute
	require.NoError(t, yaml.Unmarshal([]byte(out), &descriptors))
	require.Len(t, descriptors, 9)

	byName := make(map[string]string)
	for _, d := range descriptors {
		byName[d.Name] = d.URL
	}
	assert.Equal(t, "/stocks/:symbol", byName["StocksController.show"])
}

func TestRoutesCmd_UnknownFormat(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"routes", "--config", "testdata/application.yaml", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
