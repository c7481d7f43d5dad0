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
	"strconv"
)

type UnresolvedError struct {
	Specifier string
}

func (e *UnresolvedError) Error() string {
	return "could not resolve " + strconv.Quote(e.Specifier)
}

func IsUnresolvedError(err error) bool {
	_, ok := GetCause(err).(*UnresolvedError)
	return ok
}

type UndefinedMixinError struct {
	Name string
}

func (e *UndefinedMixinError) Error() string {
	return "undefined mixin: " + e.Name +
		". Use @define-mixin first to set mixin."
}

func IsUndefinedMixinError(err error) bool {
	_, ok := GetCause(err).(*UndefinedMixinError)
	return ok
}

type UnhandledNodeKindError struct {
	Kind string
}

func (e *UnhandledNodeKindError) Error() string {
	return "unhandled type at @mixin-content: " + e.Kind
}

func IsUnhandledNodeKindError(err error) bool {
	_, ok := GetCause(err).(*UnhandledNodeKindError)
	return ok
}

type MissingContentError struct {
	Index int
}

func (e *MissingContentError) Error() string {
	return "no content for @mixin-content in rule " + strconv.Itoa(e.Index+1)
}

func IsMissingContentError(err error) bool {
	_, ok := GetCause(err).(*MissingContentError)
	return ok
}

type SyntaxError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return e.File + ":" + strconv.Itoa(e.Line) + ":" +
		strconv.Itoa(e.Column) + ": " + e.Msg
}

func IsSyntaxError(err error) bool {
	_, ok := GetCause(err).(*SyntaxError)
	return ok
}
