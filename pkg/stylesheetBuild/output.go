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
	"bytes"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/css-mixins/pkg/copyFile"
	"github.com/das7pad/css-mixins/pkg/errors"
)

func newOutputCollector(writeToDisk bool) *outputCollector {
	return &outputCollector{
		mem:         make(map[string][]byte),
		old:         make(map[string]map[string]bool),
		listeners:   make(map[chan BuildNotification]bool),
		writeToDisk: writeToDisk,
	}
}

type outputCollector struct {
	mu          sync.Mutex
	writeToDisk bool

	listeners map[chan BuildNotification]bool
	old       map[string]map[string]bool
	mem       map[string][]byte
}

// Get returns an output file by its path relative to the output directory
// of its bundle.
func (o *outputCollector) Get(p string) ([]byte, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	blob, ok := o.mem[p]
	return blob, ok
}

// Files returns the paths of all output files.
func (o *outputCollector) Files() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	files := make([]string, 0, len(o.mem))
	for p := range o.mem {
		files = append(files, p)
	}
	return files
}

func (o *outputCollector) plugin(desc, outdir string, firstBuild chan struct{}) api.Plugin {
	once := sync.Once{}
	return api.Plugin{
		Name: "output",
		Setup: func(build api.PluginBuild) {
			build.OnEnd(func(r *api.BuildResult) (api.OnEndResult, error) {
				res, err := o.handleOnEnd(desc, outdir, r)
				if firstBuild != nil {
					once.Do(func() {
						close(firstBuild)
					})
				}
				return res, err
			})
		},
	}
}

// write stores blob in memory and optionally on disk. It reports the path
// relative to outdir and whether the content changed.
func (o *outputCollector) write(outdir, p string, blob []byte) (string, bool, error) {
	rel, err := filepath.Rel(outdir, p)
	if err != nil {
		return "", false, errors.Tag(err, p)
	}
	rel = filepath.ToSlash(rel)
	o.mu.Lock()
	old, exists := o.mem[rel]
	o.mem[rel] = blob
	o.mu.Unlock()
	changed := !exists || !bytes.Equal(old, blob)

	if !o.writeToDisk || !changed {
		return rel, changed, nil
	}
	if err = copyFile.WriteAtomic(p, blob, 0o644); err != nil {
		return "", false, errors.Tag(err, "write "+p)
	}
	return rel, changed, nil
}

func (o *outputCollector) handleOnEnd(desc, outdir string, r *api.BuildResult) (api.OnEndResult, error) {
	n := newNotification(desc)
	n.Errors = toDiagnostics(r.Errors)
	n.Warnings = toDiagnostics(r.Warnings)

	written := make(map[string]bool, len(r.OutputFiles))
	for _, file := range r.OutputFiles {
		rel, changed, err := o.write(outdir, file.Path, file.Contents)
		if err != nil {
			return api.OnEndResult{}, err
		}
		written[rel] = true
		if changed && path.Ext(rel) == ".css" {
			n.Stylesheets = append(n.Stylesheets, rel)
		}
	}
	sort.Strings(n.Stylesheets)

	if len(r.Errors) == 0 {
		if err := o.prune(desc, outdir, written); err != nil {
			return api.OnEndResult{}, err
		}
	}

	o.notify(n)
	return api.OnEndResult{}, nil
}

// prune drops the outputs of the previous build of desc that the latest
// build did not emit again.
func (o *outputCollector) prune(desc, outdir string, written map[string]bool) error {
	var stale []string
	o.mu.Lock()
	for s := range o.old[desc] {
		if !written[s] {
			delete(o.mem, s)
			stale = append(stale, s)
		}
	}
	o.old[desc] = written
	o.mu.Unlock()

	if !o.writeToDisk {
		return nil
	}
	for _, s := range stale {
		p := filepath.Join(outdir, filepath.FromSlash(s))
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return errors.Tag(err, "remove stale output "+p)
		}
	}
	return nil
}
