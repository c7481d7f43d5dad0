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
	"github.com/das7pad/css-mixins/pkg/css"
)

// flatten hoists the declarations of a rule's only @mixin invocation into
// the rule itself, when the expansion adds no selector or group context.
func (s *Session) flatten(r *css.StyleRule) (css.Action, error) {
	idx := -1
	for i, c := range r.Rules {
		if css.IsCustomAtRule(c, atRuleMixin) {
			if idx != -1 {
				return css.Keep(), nil
			}
			idx = i
		}
	}
	if idx == -1 {
		return css.Keep(), nil
	}
	expanded, err := s.expand(r.Rules[idx].(*css.CustomAtRule))
	if err != nil {
		return css.Keep(), err
	}
	if !isDeclarationOnly(expanded) {
		return css.Keep(), nil
	}

	out := &css.StyleRule{
		Loc:          r.Loc,
		Selectors:    r.Selectors,
		Declarations: css.CloneDeclarations(r.Declarations),
		Rules:        make([]css.Rule, 0, len(r.Rules)-1),
	}
	out.Rules = append(out.Rules, r.Rules[:idx]...)
	out.Rules = append(out.Rules, r.Rules[idx+1:]...)
	for _, e := range expanded {
		out.Declarations = append(
			out.Declarations, e.(*css.StyleRule).Declarations...,
		)
	}
	return css.Replace(out), nil
}

func isDeclarationOnly(rules []css.Rule) bool {
	for _, r := range rules {
		s, ok := r.(*css.StyleRule)
		if !ok ||
			!s.IsNestingOnly() ||
			len(s.Declarations) == 0 ||
			len(s.Rules) > 0 {
			return false
		}
	}
	return true
}
