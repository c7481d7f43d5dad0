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
	"github.com/das7pad/css-mixins/pkg/errors"
)

// Substitute replaces @mixin-content in body with content. A marker at the
// top level of body takes all of content. The result does not share any
// nodes with body or content.
func Substitute(body []css.Rule, content []css.Rule) ([]css.Rule, error) {
	out := make([]css.Rule, 0, len(body))
	for i, r := range body {
		if css.IsCustomAtRule(r, atRuleMixinContent) {
			out = append(out, css.CloneRules(content)...)
			continue
		}
		c, err := substituteRule(r, content, i)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func substituteRule(r css.Rule, content []css.Rule, i int) (css.Rule, error) {
	children := css.ChildRules(r)
	if css.HasCustomAtRule(children, atRuleMixinContent) {
		switch r := r.(type) {
		case *css.MediaRule:
			return &css.MediaRule{
				Loc:   r.Loc,
				Query: r.Query,
				Rules: css.CloneRules(content),
			}, nil
		case *css.SupportsRule:
			return &css.SupportsRule{
				Loc:       r.Loc,
				Condition: r.Condition,
				Rules:     css.CloneRules(content),
			}, nil
		case *css.StyleRule:
			return spliceIntoStyleRule(r, content, i)
		case *css.CustomAtRule, *css.ImportRule, *css.UnknownAtRule:
			return nil, &errors.UnhandledNodeKindError{Kind: r.Kind().String()}
		}
	}
	if len(children) == 0 {
		return css.CloneRule(r), nil
	}
	rules, err := Substitute(children, content)
	if err != nil {
		return nil, err
	}
	return withRules(r, rules), nil
}

// spliceIntoStyleRule merges the declarations of content[i] into r. Nested
// rules of content[i] take the place of @mixin-content.
func spliceIntoStyleRule(r *css.StyleRule, content []css.Rule, i int) (css.Rule, error) {
	out := &css.StyleRule{
		Loc:          r.Loc,
		Selectors:    append([]string(nil), r.Selectors...),
		Declarations: css.CloneDeclarations(r.Declarations),
	}
	if i >= len(content) {
		return nil, &errors.MissingContentError{Index: i}
	}
	spliced := content[i : i+1]
	if c, ok := content[i].(*css.StyleRule); ok && c.IsNestingOnly() {
		out.Declarations = append(
			out.Declarations, css.CloneDeclarations(c.Declarations)...,
		)
		spliced = c.Rules
	}
	var siblings []css.Rule
	for _, c := range r.Rules {
		if !css.IsCustomAtRule(c, atRuleMixinContent) {
			siblings = append(siblings, c)
		}
	}
	siblings, err := Substitute(siblings, content)
	if err != nil {
		return nil, err
	}
	out.Rules = make([]css.Rule, 0, len(r.Rules)+len(spliced))
	for _, c := range r.Rules {
		if css.IsCustomAtRule(c, atRuleMixinContent) {
			out.Rules = append(out.Rules, css.CloneRules(spliced)...)
			continue
		}
		out.Rules = append(out.Rules, siblings[0])
		siblings = siblings[1:]
	}
	return out, nil
}

// withRules returns a copy of r with its children set to rules.
func withRules(r css.Rule, rules []css.Rule) css.Rule {
	switch r := r.(type) {
	case *css.StyleRule:
		return &css.StyleRule{
			Loc:          r.Loc,
			Selectors:    append([]string(nil), r.Selectors...),
			Declarations: css.CloneDeclarations(r.Declarations),
			Rules:        rules,
		}
	case *css.MediaRule:
		return &css.MediaRule{Loc: r.Loc, Query: r.Query, Rules: rules}
	case *css.SupportsRule:
		return &css.SupportsRule{
			Loc:       r.Loc,
			Condition: r.Condition,
			Rules:     rules,
		}
	case *css.CustomAtRule:
		return &css.CustomAtRule{
			Loc:     r.Loc,
			Name:    r.Name,
			Prelude: r.Prelude,
			HasBody: r.HasBody,
			Body:    rules,
		}
	default:
		return css.CloneRule(r)
	}
}
