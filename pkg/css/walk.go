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
	"strconv"

	"github.com/das7pad/css-mixins/pkg/errors"
)

// Action is the outcome of a Visitor hook.
type Action struct {
	replace bool
	rules   []Rule
}

// Keep leaves the rule in place and descends into its children.
func Keep() Action {
	return Action{}
}

// Replace swaps the rule for the given rules, which are walked in turn.
func Replace(rules ...Rule) Action {
	if rules == nil {
		rules = []Rule{}
	}
	return Action{replace: true, rules: rules}
}

// Remove deletes the rule.
func Remove() Action {
	return Action{replace: true, rules: []Rule{}}
}

type Visitor struct {
	StyleSheet func(s *StyleSheet) error
	Import     func(r *ImportRule) (Action, error)
	Custom     func(r *CustomAtRule) (Action, error)
	Style      func(r *StyleRule) (Action, error)
}

func composeHooks[T Rule](hooks []func(r T) (Action, error)) func(r T) (Action, error) {
	if len(hooks) == 0 {
		return nil
	}
	return func(r T) (Action, error) {
		for _, h := range hooks {
			a, err := h(r)
			if err != nil || a.replace {
				return a, err
			}
		}
		return Keep(), nil
	}
}

// ComposeVisitors runs the hooks of all visitors in order. For rule hooks
// the first Action other than Keep wins.
func ComposeVisitors(vv ...Visitor) Visitor {
	var onStyleSheet []func(s *StyleSheet) error
	var onImport []func(r *ImportRule) (Action, error)
	var onCustom []func(r *CustomAtRule) (Action, error)
	var onStyle []func(r *StyleRule) (Action, error)
	for _, v := range vv {
		if v.StyleSheet != nil {
			onStyleSheet = append(onStyleSheet, v.StyleSheet)
		}
		if v.Import != nil {
			onImport = append(onImport, v.Import)
		}
		if v.Custom != nil {
			onCustom = append(onCustom, v.Custom)
		}
		if v.Style != nil {
			onStyle = append(onStyle, v.Style)
		}
	}
	c := Visitor{
		Import: composeHooks(onImport),
		Custom: composeHooks(onCustom),
		Style:  composeHooks(onStyle),
	}
	if len(onStyleSheet) > 0 {
		c.StyleSheet = func(s *StyleSheet) error {
			for _, f := range onStyleSheet {
				if err := f(s); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return c
}

const maxExpansionDepth = 64

// Walk visits s depth-first in document order and applies the Actions
// returned by v in place. Style hooks see a rule before its children.
func Walk(s *StyleSheet, v Visitor) error {
	if v.StyleSheet != nil {
		if err := v.StyleSheet(s); err != nil {
			return err
		}
	}
	w := walker{v: v}
	if len(s.Sources) > 0 {
		w.file = s.Sources[0]
	}
	rules, err := w.visitList(s.Rules, 0)
	if err != nil {
		return err
	}
	s.Rules = rules
	return nil
}

type walker struct {
	v       Visitor
	file    string
	located bool
}

func (w *walker) dispatch(r Rule) (Action, error) {
	switch r := r.(type) {
	case *StyleRule:
		if w.v.Style != nil {
			return w.v.Style(r)
		}
	case *ImportRule:
		if w.v.Import != nil {
			return w.v.Import(r)
		}
	case *CustomAtRule:
		if w.v.Custom != nil {
			return w.v.Custom(r)
		}
	}
	return Keep(), nil
}

func (w *walker) visitList(rules []Rule, depth int) ([]Rule, error) {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		rr, err := w.visitRule(r, depth)
		if err != nil {
			if depth == 0 && !w.located {
				w.located = true
				l := r.Location()
				err = errors.Tag(err, w.file+":"+strconv.Itoa(l.Line)+":"+
					strconv.Itoa(l.Column))
			}
			return nil, err
		}
		out = append(out, rr...)
	}
	return out, nil
}

func (w *walker) visitRule(r Rule, depth int) ([]Rule, error) {
	a, err := w.dispatch(r)
	if err != nil {
		return nil, err
	}
	if a.replace {
		if depth >= maxExpansionDepth {
			return nil, &errors.ValidationError{
				Msg: "rule expansion exceeds depth " +
					strconv.Itoa(maxExpansionDepth) + " at " + r.Kind().String() +
					" rule, check for recursive mixins",
			}
		}
		return w.visitList(a.rules, depth+1)
	}
	switch r := r.(type) {
	case *StyleRule:
		r.Rules, err = w.visitList(r.Rules, depth)
	case *MediaRule:
		r.Rules, err = w.visitList(r.Rules, depth)
	case *SupportsRule:
		r.Rules, err = w.visitList(r.Rules, depth)
	case *CustomAtRule:
		if r.HasBody {
			r.Body, err = w.visitList(r.Body, depth)
		}
	}
	if err != nil {
		return nil, err
	}
	return []Rule{r}, nil
}
