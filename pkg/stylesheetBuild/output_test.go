// Golang port of postcss-mixins
// Copyright (C) 2026 Jakob Ackermann <das7pad@outlook.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package stylesheetBuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
)

func TestHandleOnEndRemovesStaleOutputs(t *testing.T) {
	outdir := t.TempDir()
	o := newOutputCollector(true)
	build := func(errs []api.Message, names ...string) {
		t.Helper()
		r := &api.BuildResult{Errors: errs}
		for _, name := range names {
			r.OutputFiles = append(r.OutputFiles, api.OutputFile{
				Path:     filepath.Join(outdir, name),
				Contents: []byte("." + name + "{}"),
			})
		}
		if _, err := o.handleOnEnd("main", outdir, r); err != nil {
			t.Fatalf("handleOnEnd() error = %v", err)
		}
	}
	exists := func(name string) bool {
		_, err := os.Stat(filepath.Join(outdir, name))
		return err == nil
	}

	build(nil, "a.css", "b.css")
	if !exists("a.css") || !exists("b.css") {
		t.Fatalf("outputs were not written")
	}

	build([]api.Message{{Text: "broken"}}, "b.css")
	if !exists("a.css") {
		t.Errorf("a failed build removed a.css")
	}
	if _, ok := o.Get("a.css"); !ok {
		t.Errorf("a failed build dropped a.css from memory")
	}

	build(nil, "b.css")
	if exists("a.css") {
		t.Errorf("stale a.css is still on disk")
	}
	if _, ok := o.Get("a.css"); ok {
		t.Errorf("stale a.css is still in memory")
	}
	if !exists("b.css") {
		t.Errorf("b.css was removed")
	}
}
