// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stacklok/toolhive-catalog/config"
)

func newRootCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "catalogbuild",
		Short: "Build the skills and models catalogs",
		Long: `catalogbuild walks a skills corpus and a model definitions corpus, packages
every skill into a zip archive and writes public and internal JSON catalogs
together with their JSON Schemas.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil || path == "" {
				return err
			}
			v.SetConfigFile(path)
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default: ./catalog.yaml or $XDG_CONFIG_HOME/toolhive-catalog/catalog.yaml)")
	cmd.PersistentFlags().String("public-dir", "", "public output directory")
	bindFlag(v, cmd.PersistentFlags().Lookup("public-dir"), config.KeyPublicDir)

	cmd.AddCommand(newBuildCmd(v))
	cmd.AddCommand(newVerifyCmd(v))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// bindFlag binds a flag to a configuration key. BindPFlag only fails for a
// nil flag, which is a programming error.
func bindFlag(v *viper.Viper, f *pflag.Flag, key string) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}
