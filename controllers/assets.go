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

package controllers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"rivaas.dev/router"

	"stockproject/controllers/routes"
	"stockproject/internal/problem"
)

// AssetsCacheControl is sent with every asset.
const AssetsCacheControl = "public, max-age=3600"

var errAssetNotFound = errors.New("asset not found")

type asset struct {
	data []byte
	etag string
}

// Assets serves the files of a filesystem under the Assets.versioned route.
// File contents are loaded once and tagged with their sha256 digest.
type Assets struct {
	files    map[string]asset
	problems *problem.Writer
}

// NewAssets reads every regular file of fsys.
func NewAssets(fsys fs.FS, problems *problem.Writer) (*Assets, error) {
	files := make(map[string]asset)
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if path.Ext(name) == ".go" {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		files[name] = asset{data: data, etag: `"` + hex.EncodeToString(sum[:]) + `"`}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}

	return &Assets{files: files, problems: problems}, nil
}

// Names returns the served file names.
func (a *Assets) Names() []string {
	names := make([]string, 0, len(a.files))
	for name := range a.files {
		names = append(names, name)
	}

	return names
}

// ETag returns the entity tag of the named file.
func (a *Assets) ETag(name string) (string, bool) {
	f, ok := a.files[name]

	return f.etag, ok
}

// Versioned serves the file named by the path remainder captured by the
// assets route, answering 304 when the client's entity tag matches. The
// remainder comes from the router, so it holds under any mount prefix.
func (a *Assets) Versioned(c *router.Context) {
	name := strings.TrimPrefix(path.Clean("/"+c.Param(routes.RouterWildcardParam)), "/")

	f, ok := a.files[name]
	if !ok {
		a.problems.Write(c.Response, c.Request,
			problem.WithCode(fmt.Errorf("%w: %s", errAssetNotFound, name), http.StatusNotFound, "asset-not-found"))
		return
	}

	c.Header("ETag", f.etag)
	c.Header("Cache-Control", AssetsCacheControl)
	http.ServeContent(c.Response, c.Request, name, time.Time{}, bytes.NewReader(f.data))
}
