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

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func CloneDeclarations(dd []Declaration) []Declaration {
	if dd == nil {
		return nil
	}
	return append(make([]Declaration, 0, len(dd)), dd...)
}

func CloneRules(rules []Rule) []Rule {
	if rules == nil {
		return nil
	}
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = CloneRule(r)
	}
	return out
}

// CloneRule returns a deep copy of r that shares no mutable state with r.
func CloneRule(r Rule) Rule {
	switch r := r.(type) {
	case *StyleRule:
		return &StyleRule{
			Loc:          r.Loc,
			Selectors:    cloneStrings(r.Selectors),
			Declarations: CloneDeclarations(r.Declarations),
			Rules:        CloneRules(r.Rules),
		}
	case *MediaRule:
		return &MediaRule{Loc: r.Loc, Query: r.Query, Rules: CloneRules(r.Rules)}
	case *SupportsRule:
		return &SupportsRule{
			Loc:       r.Loc,
			Condition: r.Condition,
			Rules:     CloneRules(r.Rules),
		}
	case *ImportRule:
		c := *r
		return &c
	case *CustomAtRule:
		return &CustomAtRule{
			Loc:     r.Loc,
			Name:    r.Name,
			Prelude: r.Prelude,
			HasBody: r.HasBody,
			Body:    CloneRules(r.Body),
		}
	case *UnknownAtRule:
		c := *r
		if r.Block != nil {
			b := *r.Block
			c.Block = &b
		}
		return &c
	default:
		panic("unexpected rule type")
	}
}

func (s *StyleSheet) Clone() *StyleSheet {
	return &StyleSheet{
		Sources: cloneStrings(s.Sources),
		Rules:   CloneRules(s.Rules),
	}
}
