// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/toolhive-catalog/catalog"
	"github.com/stacklok/toolhive-catalog/config"
	"github.com/stacklok/toolhive-catalog/oci/layout"
)

func newVerifyCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Validate written public manifests against their schemas",
		Long: `Verify reads the public skills and models manifests below --public-dir and
validates each against its JSON Schema. A manifest that was never written is
skipped.

When skills.oci_layout is configured, every skill in the public manifest must
also be tagged in the OCI layout with the same archive that was written to the
downloads directory. Tags for skills outside the public manifest are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return verify(cmd, cfg.Layout())
		},
	}
}

func verify(cmd *cobra.Command, l config.Layout) error {
	checks := []struct {
		path     string
		validate func([]byte) error
	}{
		{l.SkillsManifest, catalog.ValidateSkillsBytes},
		{l.ModelsManifest, catalog.ValidateModelsBytes},
	}

	var errs []error
	checked := 0
	for _, c := range checks {
		data, err := os.ReadFile(c.path) //#nosec G304 -- path derives from the configured public directory
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		checked++
		if err := c.validate(data); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(c.path), err))
			continue
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", c.path)
	}

	if checked == 0 && len(errs) == 0 {
		return fmt.Errorf("no manifests found below %s", l.PublicDir)
	}
	if len(errs) == 0 {
		errs = append(errs, verifyMirror(cmd, l))
	}
	return errors.Join(errs...)
}

// verifyMirror checks the OCI layout against the public skills manifest and
// the archives next to it.
func verifyMirror(cmd *cobra.Command, l config.Layout) error {
	if l.OCILayout == "" {
		return nil
	}
	data, err := os.ReadFile(l.SkillsManifest) //#nosec G304 -- path derives from the configured public directory
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var manifest catalog.PublicSkillManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(l.SkillsManifest), err)
	}
	if _, err := os.Stat(filepath.Join(l.OCILayout, ocispec.ImageLayoutFile)); err != nil {
		return fmt.Errorf("OCI layout %s: %w", l.OCILayout, err)
	}
	store, err := layout.NewStore(l.OCILayout)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var errs []error
	listed := map[string]bool{}
	for _, c := range manifest.Categories {
		for _, s := range c.Skills {
			tag := layout.Tag(s.ID)
			listed[tag] = true
			archive, err := os.ReadFile(filepath.Join(l.DownloadsDir, s.ID+".zip")) //#nosec G304 -- path derives from the configured downloads directory
			if err != nil {
				errs = append(errs, fmt.Errorf("skill %s: %w", s.ID, err))
				continue
			}
			got, err := store.ArchiveDigest(ctx, tag)
			if err != nil {
				errs = append(errs, fmt.Errorf("skill %s: %w", s.ID, err))
				continue
			}
			if want := digest.FromBytes(archive); got != want {
				errs = append(errs, fmt.Errorf("skill %s: tag %s holds %s, archive is %s", s.ID, tag, got, want))
			}
		}
	}

	tags, err := store.ListTags(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, tag := range tags {
		if !listed[tag] {
			_, _ = fmt.Fprintf(out, "%s: tag %s is not in the public manifest\n", l.OCILayout, tag)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", l.OCILayout, errors.Join(errs...))
	}
	_, _ = fmt.Fprintf(out, "%s: ok\n", l.OCILayout)
	return nil
}
