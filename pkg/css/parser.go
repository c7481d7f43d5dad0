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
	"strings"

	"github.com/gorilla/css/scanner"

	"github.com/das7pad/css-mixins/pkg/errors"
)

type PreludeKind int8

const (
	PreludeAny PreludeKind = iota
	PreludeNone
	PreludeCustomIdent
)

type BodyKind int8

const (
	BodyNone BodyKind = iota
	BodyStyleBlock
	BodyRuleList
)

// AtRuleGrammar tells the parser how to read a custom at-rule.
type AtRuleGrammar struct {
	Prelude PreludeKind
	Body    BodyKind
}

func Parse(filename string, code []byte, customAtRules map[string]AtRuleGrammar) (*StyleSheet, error) {
	tt, err := tokenize(filename, string(code))
	if err != nil {
		return nil, err
	}
	p := parser{
		file:          filename,
		tokens:        tt,
		customAtRules: customAtRules,
	}
	rules, err := p.parseRuleList(true)
	if err != nil {
		return nil, err
	}
	return &StyleSheet{
		Sources: []string{filename},
		Rules:   rules,
	}, nil
}

func tokenize(file, s string) ([]*scanner.Token, error) {
	r := scanner.New(s)
	var tt []*scanner.Token
	for {
		t := r.Next()
		switch t.Type {
		case scanner.TokenEOF:
			return tt, nil
		case scanner.TokenError:
			return nil, &errors.SyntaxError{
				File:   file,
				Line:   t.Line,
				Column: t.Column,
				Msg:    "unexpected " + strconv.Quote(t.Value),
			}
		case scanner.TokenBOM, scanner.TokenCDO, scanner.TokenCDC:
			continue
		case scanner.TokenComment:
			tt = append(tt, &scanner.Token{
				Type:   scanner.TokenS,
				Value:  " ",
				Line:   t.Line,
				Column: t.Column,
			})
			continue
		}
		tt = append(tt, t)
	}
}

type parser struct {
	file          string
	tokens        []*scanner.Token
	index         int
	customAtRules map[string]AtRuleGrammar
}

func (p *parser) current() *scanner.Token {
	if p.index < len(p.tokens) {
		return p.tokens[p.index]
	}
	return nil
}

func (p *parser) advance() {
	p.index++
}

func isChar(t *scanner.Token, c string) bool {
	return t != nil && t.Type == scanner.TokenChar && t.Value == c
}

func (p *parser) isChar(c string) bool {
	return isChar(p.current(), c)
}

func (p *parser) skipSpace() {
	for t := p.current(); t != nil && t.Type == scanner.TokenS; t = p.current() {
		p.advance()
	}
}

func (p *parser) loc() Loc {
	if t := p.current(); t != nil {
		return Loc{Line: t.Line, Column: t.Column}
	}
	if len(p.tokens) > 0 {
		t := p.tokens[len(p.tokens)-1]
		return Loc{Line: t.Line, Column: t.Column + len(t.Value)}
	}
	return Loc{Line: 1, Column: 1}
}

func (p *parser) errorAt(l Loc, msg string) error {
	return &errors.SyntaxError{
		File:   p.file,
		Line:   l.Line,
		Column: l.Column,
		Msg:    msg,
	}
}

func (p *parser) error(msg string) error {
	return p.errorAt(p.loc(), msg)
}

// consumeUntil collects tokens up to the first top-level char in stops.
// The stop token is not consumed, an empty stop signals EOF.
func (p *parser) consumeUntil(stops string) ([]*scanner.Token, string) {
	start := p.index
	depth := 0
	for t := p.current(); t != nil; t = p.current() {
		switch t.Type {
		case scanner.TokenFunction:
			depth++
		case scanner.TokenChar:
			switch t.Value {
			case "(", "[":
				depth++
			case ")", "]":
				if depth > 0 {
					depth--
				}
			default:
				if depth == 0 && len(t.Value) == 1 &&
					strings.Contains(stops, t.Value) {
					return p.tokens[start:p.index], t.Value
				}
			}
		}
		p.advance()
	}
	return p.tokens[start:p.index], ""
}

// peekEndOfRule returns the stop consumeUntil would find without moving.
func (p *parser) peekEndOfRule() string {
	start := p.index
	_, stop := p.consumeUntil(";{}")
	p.index = start
	return stop
}

func trimSpaceTokens(tt []*scanner.Token) []*scanner.Token {
	for len(tt) > 0 && tt[0].Type == scanner.TokenS {
		tt = tt[1:]
	}
	for len(tt) > 0 && tt[len(tt)-1].Type == scanner.TokenS {
		tt = tt[:len(tt)-1]
	}
	return tt
}

func joinTokens(tt []*scanner.Token) string {
	tt = trimSpaceTokens(tt)
	b := strings.Builder{}
	lastIsSpace := false
	for _, t := range tt {
		if t.Type == scanner.TokenS {
			if !lastIsSpace {
				b.WriteByte(' ')
			}
			lastIsSpace = true
			continue
		}
		lastIsSpace = false
		b.WriteString(t.Value)
	}
	return b.String()
}

func splitTokens(tt []*scanner.Token, sep string) [][]*scanner.Token {
	var out [][]*scanner.Token
	depth := 0
	start := 0
	for i, t := range tt {
		switch t.Type {
		case scanner.TokenFunction:
			depth++
		case scanner.TokenChar:
			switch t.Value {
			case "(", "[":
				depth++
			case ")", "]":
				depth--
			case sep:
				if depth == 0 {
					out = append(out, tt[start:i])
					start = i + 1
				}
			}
		}
	}
	return append(out, tt[start:])
}

func (p *parser) parseRuleList(isTopLevel bool) ([]Rule, error) {
	rules := make([]Rule, 0)
	for {
		p.skipSpace()
		t := p.current()
		switch {
		case t == nil:
			if !isTopLevel {
				return nil, p.error("unexpected end of file, missing '}'")
			}
			return rules, nil
		case isChar(t, "}"):
			if isTopLevel {
				return nil, p.error("unexpected '}'")
			}
			return rules, nil
		case isChar(t, ";"):
			p.advance()
			continue
		case t.Type == scanner.TokenAtKeyword:
			r, err := p.parseAtRule(false)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		default:
			r, err := p.parseStyleRule()
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
	}
}

func (p *parser) expectChar(c string) error {
	if !p.isChar(c) {
		if t := p.current(); t != nil {
			return p.error("expected '" + c + "', got " + strconv.Quote(t.Value))
		}
		return p.error("expected '" + c + "', got end of file")
	}
	p.advance()
	return nil
}

func (p *parser) parseStyleRule() (*StyleRule, error) {
	l := p.loc()
	tt, stop := p.consumeUntil("{;}")
	if stop != "{" {
		return nil, p.errorAt(l, "expected '{' after selector")
	}
	r := &StyleRule{Loc: l}
	for _, s := range splitTokens(tt, ",") {
		if sel := joinTokens(s); sel != "" {
			r.Selectors = append(r.Selectors, sel)
		}
	}
	if len(r.Selectors) == 0 {
		return nil, p.errorAt(l, "empty selector")
	}
	p.advance()
	var err error
	r.Declarations, r.Rules, err = p.parseStyleBlock()
	if err != nil {
		return nil, err
	}
	return r, nil
}

// parseStyleBlock reads declarations and nested rules up to and including
// the closing '}'.
func (p *parser) parseStyleBlock() ([]Declaration, []Rule, error) {
	var dd []Declaration
	rules := make([]Rule, 0)
	for {
		p.skipSpace()
		t := p.current()
		switch {
		case t == nil:
			return nil, nil, p.error("unexpected end of file, missing '}'")
		case isChar(t, "}"):
			p.advance()
			return dd, rules, nil
		case isChar(t, ";"):
			p.advance()
		case t.Type == scanner.TokenAtKeyword:
			r, err := p.parseAtRule(true)
			if err != nil {
				return nil, nil, err
			}
			rules = append(rules, r)
		case p.peekEndOfRule() == "{":
			r, err := p.parseStyleRule()
			if err != nil {
				return nil, nil, err
			}
			rules = append(rules, r)
		default:
			d, err := p.parseDeclaration()
			if err != nil {
				return nil, nil, err
			}
			dd = append(dd, d)
		}
	}
}

func (p *parser) parseDeclaration() (Declaration, error) {
	l := p.loc()
	tt, stop := p.consumeUntil(";}")
	if stop == ";" {
		p.advance()
	}
	colon := -1
	for i, t := range tt {
		if isChar(t, ":") {
			colon = i
			break
		}
	}
	if colon == -1 {
		return Declaration{}, p.errorAt(l, "expected ':' in declaration")
	}
	d := Declaration{
		Property: joinTokens(tt[:colon]),
		Value:    joinTokens(tt[colon+1:]),
	}
	if d.Property == "" {
		return Declaration{}, p.errorAt(l, "empty property name")
	}
	if strings.HasSuffix(strings.ToLower(d.Value), "important") {
		v := strings.TrimSpace(d.Value[:len(d.Value)-len("important")])
		if strings.HasSuffix(v, "!") {
			d.Important = true
			d.Value = strings.TrimSpace(v[:len(v)-1])
		}
	}
	return d, nil
}

// wrapDeclarations gives bare declarations of a nested block an explicit
// `&` rule, so that blocks only ever hold rules.
func wrapDeclarations(l Loc, dd []Declaration, rules []Rule) []Rule {
	if len(dd) == 0 {
		return rules
	}
	out := make([]Rule, 0, len(rules)+1)
	out = append(out, &StyleRule{
		Loc:          l,
		Selectors:    []string{"&"},
		Declarations: dd,
	})
	return append(out, rules...)
}

func (p *parser) parseAtRule(nested bool) (Rule, error) {
	l := p.loc()
	name := strings.ToLower(strings.TrimPrefix(p.current().Value, "@"))
	p.advance()
	if g, ok := p.customAtRules[name]; ok {
		return p.parseCustomAtRule(l, name, g)
	}
	switch name {
	case "import":
		tt, stop := p.consumeUntil(";}")
		if stop == ";" {
			p.advance()
		}
		r := &ImportRule{Loc: l}
		tt = trimSpaceTokens(tt)
		if len(tt) == 0 {
			return nil, p.errorAt(l, "missing url after @import")
		}
		rest := tt[1:]
		switch t := tt[0]; t.Type {
		case scanner.TokenString:
			r.URL = unquote(t.Value)
		case scanner.TokenURI:
			v := strings.TrimSuffix(t.Value[len("url("):], ")")
			r.URL = unquote(strings.TrimSpace(v))
		case scanner.TokenFunction:
			if !strings.EqualFold(t.Value, "url(") {
				return nil, p.errorAt(l, "unexpected @import "+t.Value)
			}
			var args []*scanner.Token
			args, rest, _ = cutToken(rest, ")")
			r.URL = unquote(joinTokens(args))
		default:
			return nil, p.errorAt(l, "unexpected @import "+t.Value)
		}
		r.Media = joinTokens(rest)
		return r, nil
	case "media", "supports":
		tt, stop := p.consumeUntil("{;}")
		if stop != "{" {
			return nil, p.errorAt(l, "expected '{' after @"+name)
		}
		p.advance()
		rules, err := p.parseGroupBody(l, nested)
		if err != nil {
			return nil, err
		}
		if name == "media" {
			return &MediaRule{Loc: l, Query: joinTokens(tt), Rules: rules}, nil
		}
		return &SupportsRule{Loc: l, Condition: joinTokens(tt), Rules: rules}, nil
	default:
		tt, stop := p.consumeUntil("{;}")
		r := &UnknownAtRule{Loc: l, Name: name, Prelude: joinTokens(tt)}
		switch stop {
		case "{":
			b, err := p.consumeBlock()
			if err != nil {
				return nil, err
			}
			r.Block = &b
		case ";":
			p.advance()
		}
		return r, nil
	}
}

func cutToken(tt []*scanner.Token, c string) ([]*scanner.Token, []*scanner.Token, bool) {
	for i, t := range tt {
		if isChar(t, c) {
			return tt[:i], tt[i+1:], true
		}
	}
	return tt, nil, false
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}

func (p *parser) parseGroupBody(l Loc, nested bool) ([]Rule, error) {
	if nested {
		dd, rules, err := p.parseStyleBlock()
		if err != nil {
			return nil, err
		}
		return wrapDeclarations(l, dd, rules), nil
	}
	rules, err := p.parseRuleList(false)
	if err != nil {
		return nil, err
	}
	if err = p.expectChar("}"); err != nil {
		return nil, err
	}
	return rules, nil
}

// consumeBlock returns the verbatim contents of the {}-block at the cursor.
func (p *parser) consumeBlock() (string, error) {
	l := p.loc()
	start := p.index + 1
	depth := 0
	for t := p.current(); t != nil; t = p.current() {
		p.advance()
		switch {
		case isChar(t, "{"):
			depth++
		case isChar(t, "}"):
			depth--
			if depth == 0 {
				return joinTokens(p.tokens[start : p.index-1]), nil
			}
		}
	}
	return "", p.errorAt(l, "unexpected end of file, missing '}'")
}

func (p *parser) parseCustomAtRule(l Loc, name string, g AtRuleGrammar) (Rule, error) {
	tt, stop := p.consumeUntil("{;}")
	r := &CustomAtRule{Loc: l, Name: name, Prelude: joinTokens(tt)}
	switch g.Prelude {
	case PreludeNone:
		if r.Prelude != "" {
			return nil, p.errorAt(l, "unexpected prelude for @"+name)
		}
	case PreludeCustomIdent:
		tt = trimSpaceTokens(tt)
		if len(tt) != 1 || tt[0].Type != scanner.TokenIdent {
			return nil, p.errorAt(l, "expected <custom-ident> after @"+name)
		}
	}
	switch stop {
	case "{":
		if g.Body == BodyNone {
			return nil, p.errorAt(l, "unexpected block for @"+name)
		}
		p.advance()
		r.HasBody = true
		if g.Body == BodyStyleBlock {
			dd, rules, err := p.parseStyleBlock()
			if err != nil {
				return nil, err
			}
			r.Body = wrapDeclarations(l, dd, rules)
		} else {
			rules, err := p.parseGroupBody(l, false)
			if err != nil {
				return nil, err
			}
			r.Body = rules
		}
	case ";":
		p.advance()
	}
	return r, nil
}
