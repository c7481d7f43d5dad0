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

// Package mixins implements postcss-mixins style @define-mixin and @mixin
// rules on top of the css transform engine.
package mixins

import (
	"github.com/das7pad/css-mixins/pkg/css"
)

const (
	atRuleDefineMixin  = "define-mixin"
	atRuleMixin        = "mixin"
	atRuleMixinContent = "mixin-content"
)

// CustomAtRules is the grammar of the mixin at-rules.
var CustomAtRules = map[string]css.AtRuleGrammar{
	atRuleDefineMixin: {
		Prelude: css.PreludeCustomIdent,
		Body:    css.BodyStyleBlock,
	},
	atRuleMixin: {
		Prelude: css.PreludeCustomIdent,
		Body:    css.BodyStyleBlock,
	},
	atRuleMixinContent: {
		Prelude: css.PreludeNone,
		Body:    css.BodyNone,
	},
}
