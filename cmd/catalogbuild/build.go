// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/toolhive-catalog/config"
	"github.com/stacklok/toolhive-catalog/env"
	"github.com/stacklok/toolhive-catalog/logging"
	"github.com/stacklok/toolhive-catalog/pipeline"
	"github.com/stacklok/toolhive-catalog/selector"
)

func newBuildCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build archives and catalogs from the corpora",
		Long: `Build walks both corpora under --root, writes one zip archive per skill and
emits the public manifests, their schemas and the internal catalogs.

Problems with individual skills or models are reported and counted but do not
fail the build. A missing corpus root or an output path outside its output
directory stops the build with exit status 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, v, &env.OSReader{}, time.Now)
		},
	}

	flags := cmd.Flags()
	flags.String("root", "", "directory containing the corpora")
	flags.String("base-url", "", "absolute URL the public directory is served from")
	flags.String("internal-dir", "", "internal output directory")
	flags.String("only", "", "run a single pipeline: skills or definitions")
	flags.String("oci-layout", "", "also mirror skill archives into an OCI image layout inside the public directory")
	flags.String("public-filter", "", "CEL expression over unit deciding public visibility")
	flags.String("log-format", "", "log format: text or json")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	bindFlag(v, flags.Lookup("root"), config.KeyRoot)
	bindFlag(v, flags.Lookup("base-url"), config.KeyBaseURL)
	bindFlag(v, flags.Lookup("internal-dir"), config.KeyInternalDir)
	bindFlag(v, flags.Lookup("only"), config.KeyOnly)
	bindFlag(v, flags.Lookup("oci-layout"), config.KeySkillsOCILayout)
	bindFlag(v, flags.Lookup("public-filter"), config.KeyPublicFilter)
	bindFlag(v, flags.Lookup("log-format"), config.KeyLogFormat)
	bindFlag(v, flags.Lookup("log-level"), config.KeyLogLevel)
	return cmd
}

func runBuild(cmd *cobra.Command, v *viper.Viper, r env.Reader, now func() time.Time) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	sel, err := selector.Compile(cfg.PublicFilter)
	if err != nil {
		return fmt.Errorf("%s: %w", config.KeyPublicFilter, err)
	}

	epoch, _ := env.SourceDateEpoch(r)
	opts := pipeline.Options{
		Layout:       cfg.Layout(),
		BaseURL:      cfg.BaseURL,
		GeneratedAt:  env.Clock(r, now),
		ArchiveEpoch: epoch,
		Selector:     sel,
		Only:         cfg.Only,
		Logger:       logger,
	}

	results, err := pipeline.RunAll(cmd.Context(), opts)
	pipeline.PrintSummary(cmd.OutOrStdout(), results)
	if err != nil {
		return err
	}
	if pipeline.HasErrors(results) {
		logger.Warn("build finished with recoverable errors", "errors", pipeline.TotalStats(results).Errors)
	}
	return nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(
		logging.WithFormat(format),
		logging.WithLevel(level),
		logging.WithOutput(cmd.ErrOrStderr()),
	), nil
}
