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
	"net/http"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/das7pad/css-mixins/pkg/css"
	"github.com/das7pad/css-mixins/pkg/errors"
)

type Options struct {
	// Root is the working directory for entry points and output.
	Root    string
	Bundles []Bundle

	// Outdir is the default output directory of bundles.
	Outdir string

	// MixinsFiles are loaded into every session before the first stylesheet.
	MixinsFiles []string

	Concurrency int
	Minify      bool
	WriteToDisk bool

	// ParserCacheSize bounds the number of parsed files kept across builds.
	ParserCacheSize int

	Logger *log.Logger
}

func (o *Options) Validate() error {
	if o.Root == "" {
		return &errors.ValidationError{Msg: "missing root"}
	}
	if len(o.Bundles) == 0 {
		return &errors.ValidationError{Msg: "missing entry points"}
	}
	for _, b := range o.Bundles {
		if len(b.EntryPoints) == 0 {
			return &errors.ValidationError{
				Msg: "bundle " + b.Description + " has no entry points",
			}
		}
	}
	if o.Outdir == "" {
		return &errors.ValidationError{Msg: "missing outdir"}
	}
	if o.Concurrency < 0 {
		return &errors.ValidationError{Msg: "concurrency must be positive"}
	}
	return nil
}

type Builder struct {
	o        Options
	out      *outputCollector
	parser   *css.Parser
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func New(o Options) (*Builder, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(o.Root)
	if err != nil {
		return nil, errors.Tag(err, "resolve root")
	}
	o.Root = root
	mixinsFiles := make([]string, len(o.MixinsFiles))
	for i, f := range o.MixinsFiles {
		if !filepath.IsAbs(f) {
			f = filepath.Join(root, f)
		}
		mixinsFiles[i] = f
	}
	o.MixinsFiles = mixinsFiles
	if o.Concurrency == 0 {
		o.Concurrency = 1
	}
	if o.ParserCacheSize == 0 {
		o.ParserCacheSize = 1024
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	parser, err := css.NewParser(o.ParserCacheSize)
	if err != nil {
		return nil, err
	}
	return &Builder{
		o:      o,
		out:    newOutputCollector(o.WriteToDisk),
		parser: parser,
		logger: o.Logger.WithPrefix("build"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}, nil
}

// Get returns the output file at p, relative to the output directory.
func (b *Builder) Get(p string) ([]byte, bool) {
	return b.out.Get(p)
}

func (b *Builder) Files() []string {
	return b.out.Files()
}

func (b *Builder) AddListener(c chan BuildNotification) func() {
	return b.out.AddListener(c)
}
