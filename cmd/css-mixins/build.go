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

package main

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/das7pad/css-mixins/pkg/httpUtils"
	"github.com/das7pad/css-mixins/pkg/stylesheetBuild"
)

func newBuildCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build entrypoints...",
		Short: "Bundle stylesheets with esbuild, expanding mixins on load",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), g, args)
		},
	}
	cmd.Flags().String("root", ".", "working directory for entry points")
	cmd.Flags().String("outdir", "public", "output directory, relative to root")
	cmd.Flags().Bool("minify", false, "minify the output")
	cmd.Flags().Bool("watch", false, "rebuild on changes")
	cmd.Flags().String("serve", "", "serve the output and live-reload events on this address, implies --watch")
	cmd.Flags().Int("concurrency", runtime.NumCPU(), "number of bundles to build in parallel")
	return cmd
}

func runBuild(ctx context.Context, g *globalOptions, entryPoints []string) error {
	addr := g.v.GetString("serve")
	watch := g.v.GetBool("watch") || addr != ""

	bundles := make([]stylesheetBuild.Bundle, 0, len(entryPoints))
	for _, e := range entryPoints {
		bundles = append(bundles, stylesheetBuild.Bundle{
			Description: e,
			EntryPoints: []string{e},
		})
	}
	b, err := stylesheetBuild.New(stylesheetBuild.Options{
		Root:            g.v.GetString("root"),
		Bundles:         bundles,
		Outdir:          g.v.GetString("outdir"),
		MixinsFiles:     g.mixinsFiles(),
		Concurrency:     g.v.GetInt("concurrency"),
		Minify:          g.v.GetBool("minify"),
		WriteToDisk:     addr == "",
		ParserCacheSize: g.v.GetInt("parser-cache-size"),
		Logger:          g.logger,
	})
	if err != nil {
		return err
	}

	if !watch {
		return b.Build(ctx, false)
	}

	c := make(chan stylesheetBuild.BuildNotification, 10)
	defer b.AddListener(c)()
	go func() {
		for n := range c {
			if len(n.Errors) > 0 {
				g.logger.Error("rebuild failed", "name", n.Name, "errors", n.Errors)
			} else {
				g.logger.Info(
					"rebuild",
					"name", n.Name,
					"changed", n.Stylesheets,
					"warnings", len(n.Warnings),
				)
			}
		}
	}()

	if err = b.Build(ctx, true); err != nil {
		return err
	}
	if addr == "" {
		<-ctx.Done()
		return nil
	}

	g.logger.Info("serving", "addr", addr)
	return httpUtils.Serve(ctx, b.Router(), addr)
}
