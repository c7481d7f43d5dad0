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
	"testing"

	"github.com/das7pad/css-mixins/pkg/css"
	"github.com/das7pad/css-mixins/pkg/errors"
)

func parseBody(t *testing.T, code string) []css.Rule {
	t.Helper()
	s, err := css.Parse("test.css", []byte("@mixin m {"+code+"}"), CustomAtRules)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return s.Rules[0].(*css.CustomAtRule).Body
}

func printRules(rules []css.Rule) string {
	return string(css.Print(
		&css.StyleSheet{Rules: rules},
		css.PrintOptions{Minify: true, KeepNesting: true},
	))
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		content string
		want    string
	}{
		{
			name:    "media",
			body:    `@media print { @mixin-content; }`,
			content: `color: red`,
			want:    `@media print{&{color:red}}`,
		},
		{
			name:    "supports",
			body:    `@supports (display: grid) { a: b; @mixin-content; }`,
			content: `display: grid`,
			want:    `@supports (display: grid){&{display:grid}}`,
		},
		{
			name:    "style rule merges declarations",
			body:    `&:hover { x: y; @mixin-content; }`,
			content: `color: red`,
			want:    `&:hover{x:y;color:red}`,
		},
		{
			name:    "style rule keeps siblings in place",
			body:    `&:hover { .a { b: c } @mixin-content; .d { e: f } }`,
			content: `color: red`,
			want:    `&:hover{color:red;.a{b:c}.d{e:f}}`,
		},
		{
			name:    "style rule splices nested content rules",
			body:    `.x & { @mixin-content; }`,
			content: `&.y { a: b }`,
			want:    `.x &{&.y{a:b}}`,
		},
		{
			name:    "nested marker",
			body:    `.a { .b { @mixin-content; } }`,
			content: `x: y`,
			want:    `.a{.b{x:y}}`,
		},
		{
			name:    "no marker",
			body:    `.a { x: y }`,
			content: `c: d`,
			want:    `.a{x:y}`,
		},
		{
			name:    "top-level marker",
			body:    `.a { x: y } @mixin-content;`,
			content: `color: red; .b { c: d }`,
			want:    `.a{x:y}&{color:red}.b{c:d}`,
		},
		{
			name:    "top-level marker without content",
			body:    `x: y; @mixin-content;`,
			content: ``,
			want:    `&{x:y}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(parseBody(t, tt.body), parseBody(t, tt.content))
			if err != nil {
				t.Fatalf("Substitute() error = %v", err)
			}
			if s := printRules(got); s != tt.want {
				t.Errorf("Substitute() got = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestSubstituteUnhandled(t *testing.T) {
	body := []css.Rule{
		&css.CustomAtRule{
			Name:    "layer",
			HasBody: true,
			Body: []css.Rule{
				&css.CustomAtRule{Name: atRuleMixinContent},
			},
		},
	}
	_, err := Substitute(body, nil)
	if !errors.IsUnhandledNodeKindError(err) {
		t.Fatalf("Substitute() error = %v", err)
	}
	if want := "unhandled type at @mixin-content: custom"; err.Error() != want {
		t.Errorf("Substitute() error = %q, want %q", err, want)
	}
}

func TestSubstituteMissingContent(t *testing.T) {
	body := parseBody(t, `&:hover { x: y; @mixin-content; }`)
	_, err := Substitute(body, nil)
	if !errors.IsMissingContentError(err) {
		t.Fatalf("Substitute() error = %v", err)
	}
	if want := "no content for @mixin-content in rule 1"; err.Error() != want {
		t.Errorf("Substitute() error = %q, want %q", err, want)
	}
}

func TestSubstituteDoesNotAlias(t *testing.T) {
	body := parseBody(t, `&:hover { x: y; @mixin-content; } @media print { @mixin-content; }`)
	content := parseBody(t, `color: red`)
	wantBody := printRules(body)
	wantContent := printRules(content)

	for i := 0; i < 2; i++ {
		got, err := Substitute(body, content)
		if err != nil {
			t.Fatalf("Substitute() error = %v", err)
		}
		hover := got[0].(*css.StyleRule)
		hover.Selectors[0] = "changed"
		hover.Declarations[0].Value = "changed"
		hover.Declarations[1].Value = "changed"
		m := got[1].(*css.MediaRule)
		m.Rules[0].(*css.StyleRule).Declarations[0].Value = "changed"
		m.Rules = nil
	}
	if got := printRules(body); got != wantBody {
		t.Errorf("Substitute() changed the body: %q", got)
	}
	if got := printRules(content); got != wantContent {
		t.Errorf("Substitute() changed the content: %q", got)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Define("b", nil) {
		t.Errorf("Define() reported a replacement for a new mixin")
	}
	r.Define("a", parseBody(t, `x: 1`))
	if !r.Define("a", parseBody(t, `x: 2`)) {
		t.Errorf("Define() did not report a replacement")
	}
	body, err := r.Lookup("a")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got := printRules(body); got != "&{x:2}" {
		t.Errorf("Lookup() got = %q", got)
	}
	if _, err = r.Lookup("c"); !errors.IsUndefinedMixinError(err) {
		t.Errorf("Lookup() error = %v", err)
	}
	if got := r.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Names() = %v", got)
	}
}
