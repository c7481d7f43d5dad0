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
	"context"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"golang.org/x/sync/errgroup"

	"github.com/das7pad/css-mixins/pkg/errors"
)

// Build runs one build per bundle. With watch, it returns after every
// bundle finished its first build and keeps rebuilding on changes until ctx
// is done.
func (b *Builder) Build(ctx context.Context, watch bool) error {
	t0 := time.Now()
	eg, pCtx := errgroup.WithContext(ctx)
	if !watch {
		eg.SetLimit(b.o.Concurrency)
	}

	for _, bundle := range b.o.Bundles {
		var firstBuild chan struct{}
		if watch {
			firstBuild = make(chan struct{})
		}
		cfg := b.config(bundle, firstBuild)
		eg.Go(func() error {
			t1 := time.Now()
			c, ctxErr := api.Context(cfg.BuildOptions)
			if ctxErr != nil {
				return errors.Tag(ctxErr, cfg.Description)
			}
			if !watch {
				defer c.Dispose()
				r := c.Rebuild()
				b.logger.Info(
					"bundle",
					"name", cfg.Description,
					"took", time.Since(t1).String(),
					"errors", len(r.Errors),
				)
				if err := messagesToError(r.Errors); err != nil {
					return errors.Tag(err, cfg.Description)
				}
				return nil
			}

			if err := c.Watch(api.WatchOptions{}); err != nil {
				c.Dispose()
				return errors.Tag(err, cfg.Description)
			}
			go func() {
				<-ctx.Done()
				c.Dispose()
			}()
			select {
			case <-pCtx.Done():
				return pCtx.Err()
			case <-firstBuild:
				return nil
			}
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	b.logger.Info("build", "took", time.Since(t0).String())
	return nil
}

func messagesToError(msgs []api.Message) error {
	errs := errors.MergedError{}
	for _, m := range msgs {
		if m.Location == nil {
			errs.Add(errors.New(m.Text))
			continue
		}
		errs.Add(&errors.SyntaxError{
			File:   m.Location.File,
			Line:   m.Location.Line,
			Column: m.Location.Column + 1,
			Msg:    m.Text,
		})
	}
	return errs.Finalize()
}
