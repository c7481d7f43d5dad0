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

package css

import (
	"regexp"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/css-mixins/pkg/errors"
)

// Lower rewrites nested CSS into flat rules.
func Lower(filename string, code []byte, minify bool) ([]byte, error) {
	r := api.Transform(string(code), api.TransformOptions{
		Loader:           api.LoaderCSS,
		Sourcefile:       filename,
		Supported:        map[string]bool{"nesting": false},
		MinifyWhitespace: minify,
		LogLevel:         api.LogLevelSilent,
	})
	errs := errors.MergedError{}
	for _, m := range r.Errors {
		e := &errors.SyntaxError{File: filename, Msg: m.Text}
		if l := m.Location; l != nil {
			e.Line = l.Line
			e.Column = l.Column + 1
		}
		errs.Add(e)
	}
	if err := errs.Finalize(); err != nil {
		return nil, errors.Tag(err, "lower nesting")
	}
	return r.Code, nil
}

var (
	mediaRangeInterval = regexp.MustCompile(
		`\(\s*([^()<>=:]+?)\s*<=\s*(width|height)\s*<=\s*([^()<>=:]+?)\s*\)`,
	)
	mediaRangeFeatureFirst = regexp.MustCompile(
		`\(\s*(width|height)\s*(>=|<=)\s*([^()<>=:]+?)\s*\)`,
	)
	mediaRangeValueFirst = regexp.MustCompile(
		`\(\s*([^()<>=:]+?)\s*(>=|<=)\s*(width|height)\s*\)`,
	)
)

// LowerMediaQuery rewrites inclusive range syntax into min-/max- features,
// e.g. `(width >= 600px)` into `(min-width: 600px)`.
func LowerMediaQuery(q string) string {
	q = mediaRangeInterval.ReplaceAllString(
		q, "(min-$2: $1) and (max-$2: $3)",
	)
	q = mediaRangeFeatureFirst.ReplaceAllStringFunc(q, func(s string) string {
		m := mediaRangeFeatureFirst.FindStringSubmatch(s)
		if m[2] == ">=" {
			return "(min-" + m[1] + ": " + m[3] + ")"
		}
		return "(max-" + m[1] + ": " + m[3] + ")"
	})
	q = mediaRangeValueFirst.ReplaceAllStringFunc(q, func(s string) string {
		m := mediaRangeValueFirst.FindStringSubmatch(s)
		if m[2] == "<=" {
			return "(min-" + m[3] + ": " + m[1] + ")"
		}
		return "(max-" + m[3] + ": " + m[1] + ")"
	})
	return q
}
