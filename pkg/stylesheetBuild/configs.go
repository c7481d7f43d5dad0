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
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
)

type Bundle struct {
	Description string
	EntryPoints []string
	Outdir      string
}

type buildOptions struct {
	api.BuildOptions
	Description string
}

func (b *Builder) config(bundle Bundle, firstBuild chan struct{}) buildOptions {
	outdir := bundle.Outdir
	if outdir == "" {
		outdir = b.o.Outdir
	}
	if !filepath.IsAbs(outdir) {
		outdir = filepath.Join(b.o.Root, outdir)
	}
	return buildOptions{
		Description: bundle.Description,
		BuildOptions: api.BuildOptions{
			AbsWorkingDir:     b.o.Root,
			AssetNames:        "assets/[name]-[hash]",
			Bundle:            true,
			EntryPoints:       bundle.EntryPoints,
			EntryNames:        "[dir]/[name]",
			MinifyWhitespace:  b.o.Minify,
			MinifySyntax:      b.o.Minify,
			MinifyIdentifiers: b.o.Minify,
			Sourcemap:         api.SourceMapLinked,
			Outbase:           b.o.Root,
			Outdir:            outdir,
			Write:             false,
			LogLevel:          api.LogLevelSilent,
			Loader: map[string]api.Loader{
				".css":   api.LoaderCSS,
				".woff":  api.LoaderFile,
				".woff2": api.LoaderFile,
				".png":   api.LoaderFile,
				".svg":   api.LoaderFile,
				".gif":   api.LoaderFile,
			},
			Plugins: []api.Plugin{
				b.mixinsLoaderPlugin(),
				b.out.plugin(bundle.Description, outdir, firstBuild),
			},
		},
	}
}
