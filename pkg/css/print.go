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
	"strings"
)

type PrintOptions struct {
	Minify bool

	// KeepNesting leaves nesting and media range syntax in place. Otherwise
	// Print rewrites media ranges and drops empty rules, and Transform lowers
	// nesting.
	KeepNesting bool
}

// Print renders s with nested rules kept inside their parents.
func Print(s *StyleSheet, o PrintOptions) []byte {
	p := printer{o: o}
	p.printNested(s.Rules, &block{}, 0)
	return []byte(p.b.String())
}

type block struct {
	n int
}

type printer struct {
	b strings.Builder
	o PrintOptions
}

func (p *printer) indent(n int) {
	if p.o.Minify {
		return
	}
	for i := 0; i < n; i++ {
		p.b.WriteString("  ")
	}
}

func (p *printer) startItem(blk *block, indent int) {
	if blk.n > 0 && !p.o.Minify {
		p.b.WriteByte('\n')
	}
	blk.n++
	p.indent(indent)
}

func (p *printer) openBlock() {
	if p.o.Minify {
		p.b.WriteByte('{')
	} else {
		p.b.WriteString(" {\n")
	}
}

func (p *printer) closeBlock(indent int) {
	if p.o.Minify {
		p.b.WriteByte('}')
		return
	}
	p.indent(indent)
	p.b.WriteString("}\n")
}

func (p *printer) endStatement() {
	p.b.WriteByte(';')
	if !p.o.Minify {
		p.b.WriteByte('\n')
	}
}

func (p *printer) selectors(ss []string) {
	sep := ", "
	if p.o.Minify {
		sep = ","
	}
	p.b.WriteString(strings.Join(ss, sep))
}

func (p *printer) declarations(dd []Declaration, indent int) {
	for i, d := range dd {
		if p.o.Minify {
			if i > 0 {
				p.b.WriteByte(';')
			}
			p.b.WriteString(d.Property)
			p.b.WriteByte(':')
			p.b.WriteString(d.Value)
			if d.Important {
				p.b.WriteString("!important")
			}
			continue
		}
		p.indent(indent)
		p.b.WriteString(d.Property)
		p.b.WriteString(": ")
		p.b.WriteString(d.Value)
		if d.Important {
			p.b.WriteString(" !important")
		}
		p.b.WriteString(";\n")
	}
}

func atRuleHeader(name, prelude string) string {
	if prelude == "" {
		return "@" + name
	}
	return "@" + name + " " + prelude
}

func (p *printer) importRule(r *ImportRule, blk *block, indent int) {
	p.startItem(blk, indent)
	p.b.WriteString(`@import "`)
	p.b.WriteString(r.URL)
	p.b.WriteByte('"')
	if r.Media != "" {
		p.b.WriteByte(' ')
		p.b.WriteString(r.Media)
	}
	p.endStatement()
}

func (p *printer) unknownAtRule(r *UnknownAtRule, blk *block, indent int) {
	p.startItem(blk, indent)
	p.b.WriteString(atRuleHeader(r.Name, r.Prelude))
	if r.Block == nil {
		p.endStatement()
		return
	}
	p.openBlock()
	if *r.Block != "" {
		p.indent(indent + 1)
		p.b.WriteString(*r.Block)
		if !p.o.Minify {
			p.b.WriteByte('\n')
		}
	}
	p.closeBlock(indent)
}

// isEmpty reports whether r renders no declarations.
func isEmpty(r Rule) bool {
	switch r := r.(type) {
	case *StyleRule:
		return len(r.Declarations) == 0 && allEmpty(r.Rules)
	case *MediaRule:
		return allEmpty(r.Rules)
	case *SupportsRule:
		return allEmpty(r.Rules)
	default:
		return false
	}
}

func allEmpty(rules []Rule) bool {
	for _, r := range rules {
		if !isEmpty(r) {
			return false
		}
	}
	return true
}

func (p *printer) printNested(rules []Rule, blk *block, indent int) {
	for _, r := range rules {
		if !p.o.KeepNesting && isEmpty(r) {
			continue
		}
		switch r := r.(type) {
		case *StyleRule:
			p.startItem(blk, indent)
			p.selectors(r.Selectors)
			p.openBlock()
			p.declarations(r.Declarations, indent+1)
			inner := &block{}
			if len(r.Declarations) > 0 {
				inner.n = 1
				if p.o.Minify && len(r.Rules) > 0 {
					p.b.WriteByte(';')
				}
			}
			p.printNested(r.Rules, inner, indent+1)
			p.closeBlock(indent)
		case *MediaRule:
			q := r.Query
			if !p.o.KeepNesting {
				q = LowerMediaQuery(q)
			}
			p.nestedGroup("@media "+q, r.Rules, blk, indent)
		case *SupportsRule:
			p.nestedGroup("@supports "+r.Condition, r.Rules, blk, indent)
		case *ImportRule:
			p.importRule(r, blk, indent)
		case *CustomAtRule:
			header := atRuleHeader(r.Name, r.Prelude)
			if r.HasBody {
				p.nestedGroup(header, r.Body, blk, indent)
				continue
			}
			p.startItem(blk, indent)
			p.b.WriteString(header)
			p.endStatement()
		case *UnknownAtRule:
			p.unknownAtRule(r, blk, indent)
		}
	}
}

func (p *printer) nestedGroup(header string, rules []Rule, blk *block, indent int) {
	p.startItem(blk, indent)
	p.b.WriteString(header)
	p.openBlock()
	p.printNested(rules, &block{}, indent+1)
	p.closeBlock(indent)
}
