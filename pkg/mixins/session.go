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
	"maps"
	"os"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/das7pad/css-mixins/pkg/css"
	"github.com/das7pad/css-mixins/pkg/errors"
)

type SessionOptions struct {
	// Read defaults to os.ReadFile.
	Read func(name string) ([]byte, error)

	// NewResolver defaults to NewFileResolver.
	NewResolver ResolverFactory

	// Parser is optional, see css.NewParser.
	Parser *css.Parser

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Session holds the state of one logical compilation: the defined mixins,
// the files imported for their mixins and the import resolvers. A Session
// must not be used concurrently.
type Session struct {
	registry    *Registry
	imported    map[string]bool
	inputs      map[string]bool
	loading     map[string]bool
	resolvers   resolverSet
	read        func(name string) ([]byte, error)
	newResolver ResolverFactory
	parser      *css.Parser
	logger      *log.Logger
}

func NewSession(o SessionOptions) *Session {
	if o.Read == nil {
		o.Read = os.ReadFile
	}
	if o.NewResolver == nil {
		o.NewResolver = NewFileResolver
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return &Session{
		registry:    NewRegistry(),
		imported:    make(map[string]bool),
		inputs:      make(map[string]bool),
		loading:     make(map[string]bool),
		read:        o.Read,
		newResolver: o.NewResolver,
		parser:      o.Parser,
		logger:      o.Logger,
	}
}

func (s *Session) Registry() *Registry {
	return s.registry
}

// Imported returns the files that were processed for their mixins.
func (s *Session) Imported() []string {
	return slices.Sorted(maps.Keys(s.imported))
}

// Inputs returns every file the session tried to load, including the ones
// that failed to read or parse.
func (s *Session) Inputs() []string {
	return slices.Sorted(maps.Keys(s.inputs))
}

// Options layers the mixin grammar and visitor on top of o. Hooks in
// o.Visitor run before the mixin hooks.
func (s *Session) Options(o css.TransformOptions) css.TransformOptions {
	grammar := make(
		map[string]css.AtRuleGrammar, len(o.CustomAtRules)+len(CustomAtRules),
	)
	maps.Copy(grammar, o.CustomAtRules)
	maps.Copy(grammar, CustomAtRules)
	o.CustomAtRules = grammar
	o.Visitor = css.ComposeVisitors(o.Visitor, s.Visitor())
	if o.Parser == nil {
		o.Parser = s.parser
	}
	return o
}

func (s *Session) Visitor() css.Visitor {
	return css.Visitor{
		StyleSheet: s.registerResolvers,
		Import:     s.importRule,
		Custom:     s.customAtRule,
		Style:      s.flatten,
	}
}

func (s *Session) registerResolvers(sheet *css.StyleSheet) error {
	for _, source := range sheet.Sources {
		if !s.resolvers.register(source, s.newResolver) {
			s.logger.Debug("no import resolver", "source", source)
		}
	}
	return nil
}

func (s *Session) importRule(r *css.ImportRule) (css.Action, error) {
	if err := s.Import(r.URL); err != nil {
		return css.Keep(), err
	}
	return css.Remove(), nil
}

// Import loads the mixins of the file that specifier resolves to, unless
// that file was imported before.
func (s *Session) Import(specifier string) error {
	p, err := s.resolvers.resolve(specifier)
	if err != nil {
		return err
	}
	if err = s.LoadFile(p); err != nil {
		return errors.Tag(err, "import "+specifier)
	}
	return nil
}

// LoadFile processes the file at p for its @define-mixin rules, the same
// way an @import of p does.
func (s *Session) LoadFile(p string) error {
	if s.imported[p] || s.loading[p] {
		return nil
	}
	s.inputs[p] = true
	blob, err := s.read(p)
	if err != nil {
		return errors.Tag(err, "read "+p)
	}
	s.loading[p] = true
	err = s.load(p, blob)
	delete(s.loading, p)
	if err != nil {
		return err
	}
	s.imported[p] = true
	s.logger.Debug("imported mixins", "file", p)
	return nil
}

// load walks the file with the mixin visitor. Only the side effects on the
// session are kept.
func (s *Session) load(filename string, code []byte) error {
	sheet, err := s.parser.Parse(filename, code, CustomAtRules)
	if err != nil {
		return err
	}
	return css.Walk(sheet, s.Visitor())
}

func (s *Session) customAtRule(r *css.CustomAtRule) (css.Action, error) {
	switch r.Name {
	case atRuleDefineMixin:
		if s.registry.Define(r.Prelude, r.Body) {
			s.logger.Debug("redefined mixin", "name", r.Prelude)
		}
		return css.Remove(), nil
	case atRuleMixin:
		rules, err := s.expand(r)
		if err != nil {
			return css.Keep(), err
		}
		return css.Replace(rules...), nil
	default:
		return css.Keep(), nil
	}
}

func (s *Session) expand(r *css.CustomAtRule) ([]css.Rule, error) {
	body, err := s.registry.Lookup(r.Prelude)
	if err != nil {
		return nil, err
	}
	return Substitute(body, r.Body)
}
