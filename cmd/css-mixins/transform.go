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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/das7pad/css-mixins/pkg/copyFile"
	"github.com/das7pad/css-mixins/pkg/css"
	"github.com/das7pad/css-mixins/pkg/errors"
	"github.com/das7pad/css-mixins/pkg/mixins"
)

const stdinFilename = "<stdin>"

type transformJob struct {
	src    string
	dst    string
	code   []byte
	result []byte
}

func newTransformCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform [files...]",
		Short: "Expand mixins and print or write the resulting CSS",
		Long: `Expand mixins in each file. Without files, or with "-", the
stylesheet is read from stdin. Imports of stdin cannot be resolved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, g, args)
		},
	}
	cmd.Flags().StringP("output", "o", "", "write the result to this file (single input only)")
	cmd.Flags().String("outdir", "", "write each result into this directory")
	cmd.Flags().Bool("minify", false, "minify the output")
	cmd.Flags().Bool("nested", false, "keep CSS nesting in the output")
	cmd.Flags().Bool("check", false, "fail with a diff when an output file is stale")
	cmd.Flags().Int("concurrency", runtime.NumCPU(), "number of files to transform in parallel")
	return cmd
}

func runTransform(cmd *cobra.Command, g *globalOptions, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	output := g.v.GetString("output")
	outdir := g.v.GetString("outdir")
	check := g.v.GetBool("check")
	if output != "" && len(args) > 1 {
		return &errors.ValidationError{Msg: "--output needs a single input"}
	}
	if output != "" && outdir != "" {
		return &errors.ValidationError{
			Msg: "--output and --outdir are mutually exclusive",
		}
	}
	if check && output == "" && outdir == "" {
		return &errors.ValidationError{Msg: "--check needs --output or --outdir"}
	}

	parser, err := g.newParser()
	if err != nil {
		return err
	}
	printOptions := css.PrintOptions{
		Minify:      g.v.GetBool("minify"),
		KeepNesting: g.v.GetBool("nested"),
	}

	jobs := make([]*transformJob, len(args))
	for i, arg := range args {
		j := &transformJob{src: arg}
		switch {
		case output != "":
			j.dst = output
		case outdir != "":
			name := filepath.Base(arg)
			if arg == "-" {
				name = "stdin.css"
			}
			j.dst = filepath.Join(outdir, name)
		}
		if arg == "-" {
			if j.code, err = io.ReadAll(cmd.InOrStdin()); err != nil {
				return errors.Tag(err, "read stdin")
			}
			j.src = stdinFilename
		}
		jobs[i] = j
	}

	eg := &errgroup.Group{}
	eg.SetLimit(max(g.v.GetInt("concurrency"), 1))
	for _, j := range jobs {
		eg.Go(func() error {
			return g.transformOne(parser, printOptions, j)
		})
	}
	if err = eg.Wait(); err != nil {
		return err
	}

	stale := 0
	for _, j := range jobs {
		switch {
		case check:
			if !reportStale(cmd.OutOrStdout(), j) {
				continue
			}
			stale++
		case j.dst == "":
			if _, err = cmd.OutOrStdout().Write(j.result); err != nil {
				return errors.Tag(err, "write stdout")
			}
		default:
			if err = writeResult(j); err != nil {
				return err
			}
			g.logger.Debug("wrote", "file", j.dst)
		}
	}
	if stale > 0 {
		return &exitError{code: 1, msg: "stale output files"}
	}
	return nil
}

func (g *globalOptions) transformOne(parser *css.Parser, printOptions css.PrintOptions, j *transformJob) error {
	if j.code == nil {
		abs, err := filepath.Abs(j.src)
		if err != nil {
			return errors.Tag(err, j.src)
		}
		j.src = abs
		if j.code, err = os.ReadFile(abs); err != nil {
			return errors.Tag(err, "read "+j.src)
		}
	}
	s := mixins.NewSession(mixins.SessionOptions{
		Parser: parser,
		Logger: g.logger,
	})
	for _, f := range g.mixinsFiles() {
		if err := s.LoadFile(f); err != nil {
			return errors.Tag(err, "load mixins file")
		}
	}
	res, err := css.Transform(s.Options(css.TransformOptions{
		Filename: j.src,
		Code:     j.code,
		Print:    printOptions,
	}))
	if err != nil {
		return err
	}
	j.result = res.Code
	return nil
}

func writeResult(j *transformJob) error {
	if err := copyFile.WriteAtomic(j.dst, j.result, 0o644); err != nil {
		return errors.Tag(err, "write "+j.dst)
	}
	return nil
}

// reportStale prints a patch from the existing output file to the fresh
// result and reports whether they differ.
func reportStale(w io.Writer, j *transformJob) bool {
	// A missing file diffs against the empty string.
	old, _ := os.ReadFile(j.dst)
	if bytes.Equal(old, j.result) {
		return false
	}
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(string(old), string(j.result))
	_, _ = io.WriteString(w, "--- "+j.dst+"\n+++ "+j.src+"\n")
	_, _ = io.WriteString(w, dmp.PatchToText(patches))
	return true
}
