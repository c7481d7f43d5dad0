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
	"sort"

	"github.com/das7pad/css-mixins/pkg/css"
	"github.com/das7pad/css-mixins/pkg/errors"
)

type Registry struct {
	m map[string][]css.Rule
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[string][]css.Rule)}
}

// Define stores body under name, replacing any previous definition.
func (r *Registry) Define(name string, body []css.Rule) bool {
	_, exists := r.m[name]
	r.m[name] = body
	return exists
}

func (r *Registry) Lookup(name string) ([]css.Rule, error) {
	body, ok := r.m[name]
	if !ok {
		return nil, &errors.UndefinedMixinError{Name: name}
	}
	return body, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.m))
	for name := range r.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
