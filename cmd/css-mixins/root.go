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

package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/das7pad/css-mixins/pkg/css"
	"github.com/das7pad/css-mixins/pkg/errors"
)

const envPrefix = "CSS_MIXINS"

type globalOptions struct {
	v       *viper.Viper
	logger  *log.Logger
	cfgFile string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{v: viper.New()}
	cmd := &cobra.Command{
		Use:   "css-mixins",
		Short: "Expand @define-mixin / @mixin rules in stylesheets",
		Long: `css-mixins expands postcss-mixins style macros:

  @define-mixin name { ... @mixin-content; ... }
  .a { @mixin name { color: red } }

Mixins may be defined in imported files, "@import" rules are resolved
against the importing file and node_modules.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.init(cmd)
		},
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&g.cfgFile, "config", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringSlice("mixins-file", nil, "file with mixin definitions to load before each stylesheet")
	cmd.PersistentFlags().Int("parser-cache-size", 1024, "number of parsed files to keep in memory")

	cmd.AddCommand(newTransformCmd(g))
	cmd.AddCommand(newMixinsCmd(g))
	cmd.AddCommand(newBuildCmd(g))
	return cmd
}

// init binds flags and CSS_MIXINS_* environment variables. Values from the
// config file apply when neither is set.
func (g *globalOptions) init(cmd *cobra.Command) error {
	g.v.SetEnvPrefix(envPrefix)
	g.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	g.v.AutomaticEnv()
	if err := g.v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Tag(err, "bind flags")
	}
	if g.cfgFile != "" {
		g.v.SetConfigFile(g.cfgFile)
		if err := g.v.ReadInConfig(); err != nil {
			return errors.Tag(err, "read config "+g.cfgFile)
		}
	}

	level := log.InfoLevel
	if g.v.GetBool("verbose") {
		level = log.DebugLevel
	}
	g.logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "css-mixins",
		Level:  level,
	})
	return nil
}

func (g *globalOptions) mixinsFiles() []string {
	return g.v.GetStringSlice("mixins-file")
}

func (g *globalOptions) newParser() (*css.Parser, error) {
	return css.NewParser(g.v.GetInt("parser-cache-size"))
}
