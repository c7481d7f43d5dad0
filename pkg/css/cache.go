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
	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedStyleSheet struct {
	code string
	s    *StyleSheet
}

// Parser caches parsed style sheets by filename. The cache assumes that a
// Parser is used with a single custom at-rule grammar.
type Parser struct {
	cache *lru.Cache[string, cachedStyleSheet]
}

func NewParser(cacheSize int) (*Parser, error) {
	c, err := lru.New[string, cachedStyleSheet](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Parser{cache: c}, nil
}

func (p *Parser) Parse(filename string, code []byte, customAtRules map[string]AtRuleGrammar) (*StyleSheet, error) {
	if p == nil {
		return Parse(filename, code, customAtRules)
	}
	if cached, ok := p.cache.Get(filename); ok && cached.code == string(code) {
		return cached.s.Clone(), nil
	}
	s, err := Parse(filename, code, customAtRules)
	if err != nil {
		p.cache.Remove(filename)
		return nil, err
	}
	p.cache.Add(filename, cachedStyleSheet{code: string(code), s: s.Clone()})
	return s, nil
}
