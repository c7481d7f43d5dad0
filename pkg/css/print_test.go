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
	"testing"
)

func TestTransformLowersNesting(t *testing.T) {
	tests := []struct {
		name string
		code string
		o    PrintOptions
		want string
	}{
		{
			name: "nested pseudo",
			code: `.a { color: red; &:hover { color: blue } }`,
			want: ".a {\n  color: red;\n}\n.a:hover {\n  color: blue;\n}\n",
		},
		{
			name: "descendant",
			code: `.a { .b { x: y } }`,
			want: ".a .b {\n  x: y;\n}\n",
		},
		{
			name: "selector list parent",
			code: `.a, .b { & > c { x: y } }`,
			want: ":is(.a, .b) > c {\n  x: y;\n}\n",
		},
		{
			name: "nesting selector twice under a list",
			code: `.a, .b { & + & { color: red } }`,
			want: ":is(.a, .b) + :is(.a, .b) {\n  color: red;\n}\n",
		},
		{
			name: "parent after nested",
			code: `.a { .my-selector & { x: y } }`,
			want: ".my-selector .a {\n  x: y;\n}\n",
		},
		{
			name: "top-level nesting selector",
			code: `& { x: y }`,
			want: ":scope {\n  x: y;\n}\n",
		},
		{
			name: "media hoisting",
			code: `.a { @media print { x: y } }`,
			want: "@media print {\n  .a {\n    x: y;\n  }\n}\n",
		},
		{
			name: "media range",
			code: `@media (width <= 600px) { .a { x: y } }`,
			want: "@media (max-width: 600px) {\n  .a {\n    x: y;\n  }\n}\n",
		},
		{
			name: "empty rules and groups are dropped",
			code: `.a {} @media print { .b {} } .c { x: y }`,
			want: ".c {\n  x: y;\n}\n",
		},
		{
			name: "important",
			code: `.a { color: red !important }`,
			want: ".a {\n  color: red !important;\n}\n",
		},
		{
			name: "import",
			code: `@import "a.css"; .a { x: y }`,
			want: "@import \"a.css\";\n.a {\n  x: y;\n}\n",
		},
		{
			name: "font-face",
			code: `@font-face { font-family: x }`,
			want: "@font-face {\n  font-family: x;\n}\n",
		},
		{
			name: "minify",
			code: `.a { x: y; z: w !important } .b { &:hover { c: d } }`,
			o:    PrintOptions{Minify: true},
			want: ".a{x:y;z:w!important}.b:hover{c:d}\n",
		},
		{
			name: "keep nesting",
			code: `.a { x: y; &:hover { c: d } } @media (width >= 1px) { .b {} }`,
			o:    PrintOptions{Minify: true, KeepNesting: true},
			want: `.a{x:y;&:hover{c:d}}@media (width >= 1px){.b{}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transform(TransformOptions{
				Filename: "test.css",
				Code:     []byte(tt.code),
				Print:    tt.o,
			})
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if string(got.Code) != tt.want {
				t.Errorf("Transform() got = %q, want %q", got.Code, tt.want)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	s, err := Parse("test.css", []byte(
		`.a { x: y; @media (width >= 600px) { z: w } } .b {}`,
	), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := `.a {
  x: y;

  @media (min-width: 600px) {
    & {
      z: w;
    }
  }
}
`
	if got := string(Print(s, PrintOptions{})); got != want {
		t.Errorf("Print() got = %q, want %q", got, want)
	}
}

func TestLowerMediaQuery(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want string
	}{
		{
			name: "min width",
			q:    "(width >= 600px)",
			want: "(min-width: 600px)",
		},
		{
			name: "max width",
			q:    "(width <= 600px)",
			want: "(max-width: 600px)",
		},
		{
			name: "value first",
			q:    "(600px <= width)",
			want: "(min-width: 600px)",
		},
		{
			name: "value first height",
			q:    "(600px >= height)",
			want: "(max-height: 600px)",
		},
		{
			name: "interval",
			q:    "(400px <= width <= 700px)",
			want: "(min-width: 400px) and (max-width: 700px)",
		},
		{
			name: "combined",
			q:    "screen and (width >= 1px) and (height <= 2px)",
			want: "screen and (min-width: 1px) and (max-height: 2px)",
		},
		{
			name: "legacy syntax",
			q:    "screen and (min-width: 1px)",
			want: "screen and (min-width: 1px)",
		},
		{
			name: "exclusive range",
			q:    "(width > 600px)",
			want: "(width > 600px)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LowerMediaQuery(tt.q); got != tt.want {
				t.Errorf("LowerMediaQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
