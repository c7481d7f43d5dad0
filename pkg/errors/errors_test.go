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

package errors

import (
	"testing"
)

func TestMergedError(t *testing.T) {
	a := New("a")
	b := &SyntaxError{File: "b.css", Line: 1, Column: 2, Msg: "b"}
	tests := []struct {
		name string
		errs []error
		want string
	}{
		{name: "single", errs: []error{nil, a}, want: "a"},
		{
			name: "multiple",
			errs: []error{a, nil, b},
			want: "2 errors:\n  a\n  b.css:1:2: b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MergedError{}
			for _, err := range tt.errs {
				m.Add(err)
			}
			if got := m.Finalize(); got.Error() != tt.want {
				t.Errorf("Finalize() = %q, want %q", got, tt.want)
			}
		})
	}
	m := MergedError{}
	m.Add(nil)
	if err := m.Finalize(); err != nil {
		t.Errorf("Finalize() = %v, want nil", err)
	}
	m.Add(a)
	m.Add(b)
	if !IsSyntaxError(b) || !Is(m.Finalize(), a) {
		t.Errorf("Is() did not find a merged error")
	}
}

func TestTag(t *testing.T) {
	cause := &UndefinedMixinError{Name: "m"}
	err := Tag(Tag(cause, "inner"), "outer")
	if want := "outer: inner: " + cause.Error(); err.Error() != want {
		t.Errorf("Tag() = %q, want %q", err, want)
	}
	if GetCause(err) != cause {
		t.Errorf("GetCause() = %v", GetCause(err))
	}
	var target *UndefinedMixinError
	if !As(err, &target) || target != cause {
		t.Errorf("As() did not unwrap the tags")
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(err error) bool
	}{
		{
			name: "unresolved",
			err:  &UnresolvedError{Specifier: "./a.css"},
			is:   IsUnresolvedError,
		},
		{
			name: "undefined mixin",
			err:  &UndefinedMixinError{Name: "a"},
			is:   IsUndefinedMixinError,
		},
		{
			name: "unhandled node kind",
			err:  &UnhandledNodeKindError{Kind: "custom"},
			is:   IsUnhandledNodeKindError,
		},
		{
			name: "syntax",
			err:  &SyntaxError{File: "a.css", Line: 1, Column: 2, Msg: "x"},
			is:   IsSyntaxError,
		},
		{
			name: "validation",
			err:  &ValidationError{Msg: "x"},
			is:   IsValidationError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.is(Tag(tt.err, "tagged")) {
				t.Errorf("%T not detected through a tag", tt.err)
			}
			if tt.is(New("other")) {
				t.Errorf("plain error detected as %T", tt.err)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			err:  &UnresolvedError{Specifier: "./a.css"},
			want: `could not resolve "./a.css"`,
		},
		{
			err:  &UndefinedMixinError{Name: "a"},
			want: "undefined mixin: a. Use @define-mixin first to set mixin.",
		},
		{
			err:  &UnhandledNodeKindError{Kind: "import"},
			want: "unhandled type at @mixin-content: import",
		},
		{
			err:  &SyntaxError{File: "a.css", Line: 3, Column: 7, Msg: "boom"},
			want: "a.css:3:7: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
