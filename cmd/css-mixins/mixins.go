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
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/das7pad/css-mixins/pkg/errors"
	"github.com/das7pad/css-mixins/pkg/mixins"
)

func newMixinsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mixins files...",
		Short: "List the mixins that are defined after processing the files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := g.newParser()
			if err != nil {
				return err
			}
			s := mixins.NewSession(mixins.SessionOptions{
				Parser: parser,
				Logger: g.logger,
			})
			for _, f := range g.mixinsFiles() {
				if err = s.LoadFile(f); err != nil {
					return errors.Tag(err, "load mixins file")
				}
			}
			for _, f := range args {
				p, err2 := filepath.Abs(f)
				if err2 != nil {
					return errors.Tag(err2, f)
				}
				if err = s.LoadFile(p); err != nil {
					return err
				}
			}
			for _, name := range s.Registry().Names() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

