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
	"reflect"
	"strings"
	"testing"

	"github.com/das7pad/css-mixins/pkg/errors"
)

var walkGrammar = map[string]AtRuleGrammar{
	"m": {Prelude: PreludeAny, Body: BodyNone},
}

func mustParse(t *testing.T, code string) *StyleSheet {
	t.Helper()
	s, err := Parse("test.css", []byte(code), walkGrammar)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return s
}

func TestWalkActions(t *testing.T) {
	s := mustParse(t, `.keep { a: b } .drop { c: d } @m r; @import "x.css";`)
	v := Visitor{
		Style: func(r *StyleRule) (Action, error) {
			if r.Selectors[0] == ".drop" {
				return Remove(), nil
			}
			return Keep(), nil
		},
		Custom: func(r *CustomAtRule) (Action, error) {
			return Replace(&StyleRule{
				Selectors:    []string{"." + r.Prelude},
				Declarations: []Declaration{{Property: "e", Value: "f"}},
			}), nil
		},
		Import: func(r *ImportRule) (Action, error) {
			return Replace(), nil
		},
	}
	if err := Walk(s, v); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	got := string(Print(s, PrintOptions{Minify: true}))
	want := `.keep{a:b}.r{e:f}`
	if got != want {
		t.Errorf("Walk() got = %q, want %q", got, want)
	}
}

func TestWalkOrder(t *testing.T) {
	s := mustParse(t, `.a { .b { @m x; } } .c {}`)
	var seen []string
	v := Visitor{
		StyleSheet: func(*StyleSheet) error {
			seen = append(seen, "sheet")
			return nil
		},
		Style: func(r *StyleRule) (Action, error) {
			seen = append(seen, r.Selectors[0])
			return Keep(), nil
		},
		Custom: func(r *CustomAtRule) (Action, error) {
			seen = append(seen, "@"+r.Name)
			if r.Prelude == "x" {
				return Replace(&StyleRule{Selectors: []string{".x"}}), nil
			}
			return Keep(), nil
		},
	}
	if err := Walk(s, v); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	want := []string{"sheet", ".a", ".b", "@m", ".x", ".c"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("Walk() order = %v, want %v", seen, want)
	}
}

func TestWalkErrors(t *testing.T) {
	t.Run("location", func(t *testing.T) {
		s := mustParse(t, ".a {}\n@m;")
		err := Walk(s, Visitor{
			Custom: func(*CustomAtRule) (Action, error) {
				return Keep(), errors.New("boom")
			},
		})
		if err == nil || err.Error() != "test.css:2:1: boom" {
			t.Errorf("Walk() error = %v", err)
		}
	})
	t.Run("stylesheet hook", func(t *testing.T) {
		s := mustParse(t, ".a {}")
		called := false
		err := Walk(s, Visitor{
			StyleSheet: func(*StyleSheet) error {
				return errors.New("boom")
			},
			Style: func(*StyleRule) (Action, error) {
				called = true
				return Keep(), nil
			},
		})
		if err == nil || called {
			t.Errorf("Walk() error = %v, called = %v", err, called)
		}
	})
	t.Run("runaway expansion", func(t *testing.T) {
		s := mustParse(t, "@m;")
		err := Walk(s, Visitor{
			Custom: func(r *CustomAtRule) (Action, error) {
				return Replace(&CustomAtRule{Name: r.Name}), nil
			},
		})
		if !errors.IsValidationError(err) {
			t.Fatalf("Walk() error = %v, want validation error", err)
		}
		if !strings.Contains(err.Error(), "exceeds depth 64") {
			t.Errorf("Walk() error = %v", err)
		}
	})
}

func TestComposeVisitors(t *testing.T) {
	var calls []string
	first := Visitor{
		StyleSheet: func(*StyleSheet) error {
			calls = append(calls, "first sheet")
			return nil
		},
		Custom: func(r *CustomAtRule) (Action, error) {
			calls = append(calls, "first "+r.Prelude)
			if r.Prelude == "one" {
				return Remove(), nil
			}
			return Keep(), nil
		},
	}
	second := Visitor{
		StyleSheet: func(*StyleSheet) error {
			calls = append(calls, "second sheet")
			return nil
		},
		Custom: func(r *CustomAtRule) (Action, error) {
			calls = append(calls, "second "+r.Prelude)
			return Replace(&StyleRule{
				Selectors:    []string{".two"},
				Declarations: []Declaration{{Property: "a", Value: "b"}},
			}), nil
		},
	}
	s := mustParse(t, "@m one; @m two;")
	if err := Walk(s, ComposeVisitors(first, Visitor{}, second)); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	wantCalls := []string{
		"first sheet", "second sheet", "first one", "first two", "second two",
	}
	if !reflect.DeepEqual(calls, wantCalls) {
		t.Errorf("ComposeVisitors() calls = %v, want %v", calls, wantCalls)
	}
	if got := string(Print(s, PrintOptions{Minify: true})); got != ".two{a:b}" {
		t.Errorf("ComposeVisitors() got = %q", got)
	}
	if v := ComposeVisitors(); v.StyleSheet != nil || v.Style != nil {
		t.Errorf("ComposeVisitors() of nothing has hooks")
	}
}

func TestTransform(t *testing.T) {
	res, err := Transform(TransformOptions{
		Filename:      "test.css",
		Code:          []byte(`.a { @m; &:hover { x: y } }`),
		CustomAtRules: walkGrammar,
		Visitor: Visitor{
			Custom: func(*CustomAtRule) (Action, error) {
				return Remove(), nil
			},
		},
	})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	want := ".a:hover {\n  x: y;\n}\n"
	if string(res.Code) != want {
		t.Errorf("Transform() got = %q, want %q", res.Code, want)
	}
	if len(res.StyleSheet.Rules[0].(*StyleRule).Rules) != 1 {
		t.Errorf("Transform() did not remove @m")
	}
}
