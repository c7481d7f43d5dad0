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

type TransformOptions struct {
	Filename      string
	Code          []byte
	CustomAtRules map[string]AtRuleGrammar
	Visitor       Visitor

	// Parser is optional, a nil Parser parses without caching.
	Parser *Parser
	Print  PrintOptions
}

type TransformResult struct {
	Code       []byte
	StyleSheet *StyleSheet
}

func Transform(o TransformOptions) (TransformResult, error) {
	s, err := o.Parser.Parse(o.Filename, o.Code, o.CustomAtRules)
	if err != nil {
		return TransformResult{}, err
	}
	if err = Walk(s, o.Visitor); err != nil {
		return TransformResult{}, err
	}
	code := Print(s, o.Print)
	if !o.Print.KeepNesting {
		if code, err = Lower(o.Filename, code, o.Print.Minify); err != nil {
			return TransformResult{}, err
		}
	}
	return TransformResult{
		Code:       code,
		StyleSheet: s,
	}, nil
}
