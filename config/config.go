// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config resolves build settings from flags, CATALOG_* environment
// variables, an optional catalog.yaml and defaults, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/stacklok/toolhive-catalog/logging"
	"github.com/stacklok/toolhive-catalog/output"
)

const (
	// AppName names the per-user configuration directory.
	AppName = "toolhive-catalog"

	// EnvPrefix prefixes every environment variable, e.g. CATALOG_PUBLIC_DIR.
	EnvPrefix = "CATALOG"

	// FileName is the configuration file base name, without extension.
	FileName = "catalog"
)

// Configuration keys. Nested keys map to environment variables by replacing
// "." with "_", e.g. skills.oci_layout is CATALOG_SKILLS_OCI_LAYOUT.
const (
	KeyRoot                = "root"
	KeyBaseURL             = "base_url"
	KeyPublicDir           = "public_dir"
	KeyInternalDir         = "internal_dir"
	KeySkillsSource        = "skills.source"
	KeySkillsDownloadsPath = "skills.downloads_path"
	KeySkillsOCILayout     = "skills.oci_layout"
	KeyDefinitionsSource   = "definitions.source"
	KeyPublicFilter        = "public_filter"
	KeyLogFormat           = "log_format"
	KeyLogLevel            = "log_level"
	KeyOnly                = "only"
)

// Pipeline names accepted by the only setting.
const (
	OnlySkills      = "skills"
	OnlyDefinitions = "definitions"
)

// defaults lists every key so that environment variables are seen by Unmarshal.
var defaults = map[string]any{
	KeyRoot:                ".",
	KeyBaseURL:             "",
	KeyPublicDir:           "public",
	KeyInternalDir:         "internal",
	KeySkillsSource:        "skills",
	KeySkillsDownloadsPath: "/downloads/skills",
	KeySkillsOCILayout:     "",
	KeyDefinitionsSource:   "providers",
	KeyPublicFilter:        "",
	KeyLogFormat:           "text",
	KeyLogLevel:            "info",
	KeyOnly:                "",
}

// Config is the resolved build configuration.
type Config struct {
	Root         string            `mapstructure:"root"`
	BaseURL      string            `mapstructure:"base_url"`
	PublicDir    string            `mapstructure:"public_dir"`
	InternalDir  string            `mapstructure:"internal_dir"`
	Skills       SkillsConfig      `mapstructure:"skills"`
	Definitions  DefinitionsConfig `mapstructure:"definitions"`
	PublicFilter string            `mapstructure:"public_filter"`
	LogFormat    string            `mapstructure:"log_format"`
	LogLevel     string            `mapstructure:"log_level"`
	Only         string            `mapstructure:"only"`
}

// SkillsConfig configures the skills pipeline.
type SkillsConfig struct {
	// Source is the skills corpus, relative to Root.
	Source string `mapstructure:"source"`
	// DownloadsPath is the URL path archives are served from. Archives are
	// written to the same path below PublicDir.
	DownloadsPath string `mapstructure:"downloads_path"`
	// OCILayout, when set, is a directory inside PublicDir that receives an
	// OCI Image Layout mirror of every archive.
	OCILayout string `mapstructure:"oci_layout"`
}

// DefinitionsConfig configures the definitions pipeline.
type DefinitionsConfig struct {
	// Source is the providers corpus, relative to Root.
	Source string `mapstructure:"source"`
}

// New returns a viper instance with defaults, the CATALOG_ environment
// binding and the configuration search path: the working directory, then
// $XDG_CONFIG_HOME/toolhive-catalog.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))
	return v
}

// Load reads the configuration file, if any, and returns the validated
// configuration. A missing configuration file is not an error unless it was
// set explicitly with SetConfigFile.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail late in a run.
func (c Config) Validate() error {
	var errs []error

	switch c.Only {
	case "", OnlySkills, OnlyDefinitions:
	default:
		errs = append(errs, fmt.Errorf("%s: unknown pipeline %q: expected %s or %s", KeyOnly, c.Only, OnlySkills, OnlyDefinitions))
	}

	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogFormat, err))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: %q is not an absolute URL", KeyBaseURL, c.BaseURL))
		}
	}

	for key, val := range map[string]string{
		KeyPublicDir:         c.PublicDir,
		KeyInternalDir:       c.InternalDir,
		KeySkillsSource:      c.Skills.Source,
		KeyDefinitionsSource: c.Definitions.Source,
	} {
		if strings.TrimSpace(val) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", key))
		}
	}

	if !strings.HasPrefix(c.Skills.DownloadsPath, "/") {
		errs = append(errs, fmt.Errorf("%s: %q must start with /", KeySkillsDownloadsPath, c.Skills.DownloadsPath))
	} else if _, err := output.Contain(c.PublicDir, c.downloadsDir()); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeySkillsDownloadsPath, err))
	}

	if c.Skills.OCILayout != "" {
		if _, err := output.Contain(c.PublicDir, c.Skills.OCILayout); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeySkillsOCILayout, err))
		}
	}

	return errors.Join(errs...)
}

func (c Config) downloadsDir() string {
	return filepath.Join(c.PublicDir, filepath.FromSlash(strings.TrimPrefix(c.Skills.DownloadsPath, "/")))
}

// Layout is the set of filesystem locations a run reads and writes.
type Layout struct {
	SkillsRoot      string
	DefinitionsRoot string
	PublicDir       string
	InternalDir     string

	// DownloadsDir receives skill archives; DownloadsPath is its URL path.
	DownloadsDir  string
	DownloadsPath string
	OCILayout     string

	SkillsManifest string
	SkillsSchema   string
	SkillsInternal string
	ModelsManifest string
	ModelsSchema   string
	ModelsInternal string
}

// Layout derives the run locations from the configuration.
func (c Config) Layout() Layout {
	api := filepath.Join(c.PublicDir, "api")
	return Layout{
		SkillsRoot:      filepath.Join(c.Root, c.Skills.Source),
		DefinitionsRoot: filepath.Join(c.Root, c.Definitions.Source),
		PublicDir:       c.PublicDir,
		InternalDir:     c.InternalDir,
		DownloadsDir:    c.downloadsDir(),
		DownloadsPath:   strings.TrimSuffix(c.Skills.DownloadsPath, "/"),
		OCILayout:       c.Skills.OCILayout,
		SkillsManifest:  filepath.Join(api, "skills.json"),
		SkillsSchema:    filepath.Join(api, "skills.schema.json"),
		SkillsInternal:  filepath.Join(c.InternalDir, "skills.json"),
		ModelsManifest:  filepath.Join(api, "models.json"),
		ModelsSchema:    filepath.Join(api, "models.schema.json"),
		ModelsInternal:  filepath.Join(c.InternalDir, "models.json"),
	}
}
