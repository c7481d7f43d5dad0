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
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/css-mixins/pkg/css"
	"github.com/das7pad/css-mixins/pkg/errors"
	"github.com/das7pad/css-mixins/pkg/mixins"
)

// mixinsLoaderPlugin expands mixins in every .css file esbuild loads. All
// files of one build share a mixins session.
func (b *Builder) mixinsLoaderPlugin() api.Plugin {
	return api.Plugin{
		Name: "mixinsLoader",
		Setup: func(build api.PluginBuild) {
			mu := sync.Mutex{}
			var s *mixins.Session
			build.OnStart(func() (api.OnStartResult, error) {
				mu.Lock()
				s = b.newSession(build)
				mu.Unlock()
				return api.OnStartResult{}, nil
			})
			build.OnLoad(api.OnLoadOptions{
				Filter:    "\\.css$",
				Namespace: "file",
			}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				mu.Lock()
				defer mu.Unlock()
				return b.renderCSS(s, args)
			})
		},
	}
}

func (b *Builder) newSession(build api.PluginBuild) *mixins.Session {
	return mixins.NewSession(mixins.SessionOptions{
		NewResolver: esbuildResolver(build),
		Parser:      b.parser,
		Logger:      b.logger,
	})
}

// esbuildResolver tries the esbuild resolver first, which knows about
// tsconfig paths and yarn PnP, then the plain file resolver.
func esbuildResolver(build api.PluginBuild) mixins.ResolverFactory {
	return func(source string) (mixins.Resolver, error) {
		fallback, err := mixins.NewFileResolver(source)
		if err != nil {
			return nil, err
		}
		dir := filepath.Dir(source)
		return mixins.ResolverFunc(func(specifier string) (string, error) {
			res := build.Resolve(specifier, api.ResolveOptions{
				Kind:       api.ResolveCSSImportRule,
				ResolveDir: dir,
			})
			if len(res.Errors) == 0 && res.Path != "" && !res.External {
				return res.Path, nil
			}
			return fallback.Resolve(specifier)
		}), nil
	}
}

func (b *Builder) renderCSS(s *mixins.Session, args api.OnLoadArgs) (api.OnLoadResult, error) {
	blob, err := os.ReadFile(args.Path)
	if err != nil {
		return api.OnLoadResult{}, errors.Tag(err, args.Path)
	}
	for _, f := range b.o.MixinsFiles {
		if err = s.LoadFile(f); err != nil {
			return api.OnLoadResult{
				WatchFiles: s.Inputs(),
			}, errors.Tag(err, "mixins file")
		}
	}
	res, err := css.Transform(s.Options(css.TransformOptions{
		Filename: args.Path,
		Code:     blob,
	}))
	watch := s.Inputs()
	if err != nil {
		return api.OnLoadResult{
			WatchFiles: watch,
			WatchDirs:  make([]string, 0),
		}, err
	}
	contents := string(res.Code)
	return api.OnLoadResult{
		Contents:   &contents,
		ResolveDir: filepath.Dir(args.Path),
		WatchFiles: watch,
		WatchDirs:  make([]string, 0),
		Loader:     api.LoaderCSS,
	}, nil
}
