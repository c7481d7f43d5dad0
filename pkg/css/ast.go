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

//go:generate stringer -type=Kind -linecomment

type Kind int8

const (
	KindStyle    Kind = iota // style
	KindMedia                // media
	KindSupports             // supports
	KindImport               // import
	KindCustom               // custom
	KindUnknown              // unknown
)

type Loc struct {
	Line   int
	Column int
}

// Rule is one of *StyleRule, *MediaRule, *SupportsRule, *ImportRule,
// *CustomAtRule or *UnknownAtRule.
type Rule interface {
	Kind() Kind
	Location() Loc
	isRule()
}

type Declaration struct {
	Property  string
	Value     string
	Important bool
}

type StyleSheet struct {
	Sources []string
	Rules   []Rule
}

type StyleRule struct {
	Loc
	Selectors    []string
	Declarations []Declaration
	Rules        []Rule
}

type MediaRule struct {
	Loc
	Query string
	Rules []Rule
}

type SupportsRule struct {
	Loc
	Condition string
	Rules     []Rule
}

type ImportRule struct {
	Loc
	URL   string
	Media string
}

type CustomAtRule struct {
	Loc
	Name    string
	Prelude string
	HasBody bool
	Body    []Rule
}

// UnknownAtRule is passed through verbatim, e.g. @font-face or @keyframes.
type UnknownAtRule struct {
	Loc
	Name    string
	Prelude string
	Block   *string
}

func (l Loc) Location() Loc { return l }

func (r *StyleRule) Kind() Kind     { return KindStyle }
func (r *MediaRule) Kind() Kind     { return KindMedia }
func (r *SupportsRule) Kind() Kind  { return KindSupports }
func (r *ImportRule) Kind() Kind    { return KindImport }
func (r *CustomAtRule) Kind() Kind  { return KindCustom }
func (r *UnknownAtRule) Kind() Kind { return KindUnknown }

func (r *StyleRule) isRule()     {}
func (r *MediaRule) isRule()     {}
func (r *SupportsRule) isRule()  {}
func (r *ImportRule) isRule()    {}
func (r *CustomAtRule) isRule()  {}
func (r *UnknownAtRule) isRule() {}

// ChildRules returns the nested rule list of r, nil for leaf kinds.
func ChildRules(r Rule) []Rule {
	switch r := r.(type) {
	case *StyleRule:
		return r.Rules
	case *MediaRule:
		return r.Rules
	case *SupportsRule:
		return r.Rules
	case *CustomAtRule:
		return r.Body
	case *ImportRule, *UnknownAtRule:
		return nil
	default:
		panic("unexpected rule type")
	}
}

// IsCustomAtRule reports whether r is the custom at-rule @name.
func IsCustomAtRule(r Rule, name string) bool {
	c, ok := r.(*CustomAtRule)
	return ok && c.Name == name
}

func HasCustomAtRule(rules []Rule, name string) bool {
	for _, r := range rules {
		if IsCustomAtRule(r, name) {
			return true
		}
	}
	return false
}

// IsNestingOnly reports whether r is a bare `& { ... }` block.
func (r *StyleRule) IsNestingOnly() bool {
	return len(r.Selectors) == 1 && r.Selectors[0] == "&"
}
