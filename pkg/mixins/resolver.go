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

package mixins

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/das7pad/css-mixins/pkg/errors"
)

type Resolver interface {
	Resolve(specifier string) (string, error)
}

type ResolverFunc func(specifier string) (string, error)

func (f ResolverFunc) Resolve(specifier string) (string, error) {
	return f(specifier)
}

// ResolverFactory returns a Resolver scoped to the location of source.
type ResolverFactory func(source string) (Resolver, error)

type resolverSet struct {
	sources []string
	m       map[string]Resolver
}

// register adds a strategy for source. Sources that cannot provide one are
// skipped.
func (rs *resolverSet) register(source string, f ResolverFactory) bool {
	if _, ok := rs.m[source]; ok {
		return false
	}
	r, err := f(source)
	if err != nil || r == nil {
		return false
	}
	if rs.m == nil {
		rs.m = make(map[string]Resolver)
	}
	rs.m[source] = r
	rs.sources = append(rs.sources, source)
	return true
}

func (rs *resolverSet) resolve(specifier string) (string, error) {
	for _, source := range rs.sources {
		if p, err := rs.m[source].Resolve(specifier); err == nil {
			return p, nil
		}
	}
	return "", &errors.UnresolvedError{Specifier: specifier}
}

type fileResolver struct {
	dir  string
	stat func(name string) (fs.FileInfo, error)
	read func(name string) ([]byte, error)
}

// NewFileResolver resolves relative and absolute paths against the
// directory of source and bare specifiers via node_modules.
func NewFileResolver(source string) (Resolver, error) {
	if source == "" || strings.HasPrefix(source, "<") {
		return nil, errors.New(
			"cannot resolve relative to " + strconv.Quote(source),
		)
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, errors.Tag(err, "abs "+source)
	}
	return &fileResolver{
		dir:  filepath.Dir(abs),
		stat: os.Stat,
		read: os.ReadFile,
	}, nil
}

func (r *fileResolver) Resolve(specifier string) (string, error) {
	switch {
	case specifier == "", strings.Contains(specifier, "://"):
		return "", &errors.UnresolvedError{Specifier: specifier}
	case filepath.IsAbs(specifier):
		return r.resolvePath(specifier, specifier)
	case specifier == ".", specifier == "..",
		strings.HasPrefix(specifier, "./"),
		strings.HasPrefix(specifier, "../"):
		return r.resolvePath(specifier, filepath.Join(r.dir, specifier))
	default:
		return r.resolvePackage(specifier)
	}
}

func (r *fileResolver) isFile(p string) bool {
	s, err := r.stat(p)
	return err == nil && !s.IsDir()
}

func (r *fileResolver) resolvePath(specifier, p string) (string, error) {
	if s, err := r.stat(p); err == nil {
		if !s.IsDir() {
			return p, nil
		}
		if idx := filepath.Join(p, "index.css"); r.isFile(idx) {
			return idx, nil
		}
	}
	if filepath.Ext(p) != ".css" && r.isFile(p+".css") {
		return p + ".css", nil
	}
	return "", &errors.UnresolvedError{Specifier: specifier}
}

func splitPackageSpecifier(s string) (string, string) {
	n := 1
	if strings.HasPrefix(s, "@") {
		n = 2
	}
	parts := strings.SplitN(s, "/", n+1)
	if len(parts) <= n {
		return s, ""
	}
	return strings.Join(parts[:n], "/"), parts[n]
}

func (r *fileResolver) resolvePackage(specifier string) (string, error) {
	name, sub := splitPackageSpecifier(specifier)
	for dir := r.dir; ; {
		pkgDir := filepath.Join(dir, "node_modules", name)
		if s, err := r.stat(pkgDir); err == nil && s.IsDir() {
			if sub != "" {
				return r.resolvePath(specifier, filepath.Join(pkgDir, sub))
			}
			if p, ok := r.resolveEntry(pkgDir); ok {
				return p, nil
			}
			return r.resolvePath(specifier, pkgDir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", &errors.UnresolvedError{Specifier: specifier}
}

type packageJSON struct {
	Style string `json:"style"`
	Main  string `json:"main"`
}

func (r *fileResolver) resolveEntry(pkgDir string) (string, bool) {
	blob, err := r.read(filepath.Join(pkgDir, "package.json"))
	if err != nil {
		return "", false
	}
	var pkg packageJSON
	if err = json.Unmarshal(blob, &pkg); err != nil {
		return "", false
	}
	for _, entry := range []string{pkg.Style, pkg.Main} {
		if filepath.Ext(entry) != ".css" {
			continue
		}
		if p := filepath.Join(pkgDir, entry); r.isFile(p) {
			return p, true
		}
	}
	return "", false
}
