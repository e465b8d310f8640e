// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/errdef"
)

// ErrNotSkillArtifact is returned when a tag points at a manifest that does
// not describe a single skill archive.
var ErrNotSkillArtifact = errors.New("not a skill artifact")

// Store provides local OCI artifact storage backed by an OCI Image Layout.
type Store struct {
	inner *oci.Store
}

// NewStore creates a new local OCI store at the given root directory.
// The directory is initialized as an OCI Image Layout with blobs/, oci-layout, and index.json.
func NewStore(root string) (*Store, error) {
	inner, err := oci.New(root)
	if err != nil {
		return nil, fmt.Errorf("creating OCI store at %s: %w", root, err)
	}

	return &Store{inner: inner}, nil
}

// PutBlob stores content under mediaType and returns its descriptor.
// Content that already exists is not an error.
func (s *Store) PutBlob(ctx context.Context, mediaType string, data []byte) (ocispec.Descriptor, error) {
	desc := content.NewDescriptorFromBytes(mediaType, data)

	if err := s.inner.Push(ctx, desc, bytes.NewReader(data)); err != nil {
		if errors.Is(err, errdef.ErrAlreadyExists) {
			return desc, nil
		}
		return ocispec.Descriptor{}, fmt.Errorf("writing blob: %w", err)
	}

	return desc, nil
}

// GetBlob retrieves a blob by digest.
func (s *Store) GetBlob(ctx context.Context, d digest.Digest) ([]byte, error) {
	data, err := s.fetchContent(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("blob not found: %s: %w", d, err)
	}
	return data, nil
}

// Tag associates a tag with a manifest descriptor.
func (s *Store) Tag(ctx context.Context, desc ocispec.Descriptor, tag string) error {
	if err := s.inner.Tag(ctx, desc, tag); err != nil {
		return fmt.Errorf("tagging: %w", err)
	}
	return nil
}

// Resolve resolves a tag to a manifest digest.
func (s *Store) Resolve(ctx context.Context, tag string) (digest.Digest, error) {
	desc, err := s.inner.Resolve(ctx, tag)
	if err != nil {
		return "", fmt.Errorf("tag not found: %s: %w", tag, err)
	}
	return desc.Digest, nil
}

// ListTags returns all tags in the store.
func (s *Store) ListTags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := s.inner.Tags(ctx, "", func(t []string) error {
		tags = append(tags, t...)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// ArchiveDigest resolves tag to a skill artifact and returns the digest of
// its archive layer.
func (s *Store) ArchiveDigest(ctx context.Context, tag string) (digest.Digest, error) {
	d, err := s.Resolve(ctx, tag)
	if err != nil {
		return "", err
	}
	raw, err := s.GetBlob(ctx, d)
	if err != nil {
		return "", err
	}
	var manifest ocispec.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return "", fmt.Errorf("decoding manifest %s: %w", d, err)
	}
	if manifest.ArtifactType != ArtifactTypeSkill || len(manifest.Layers) != 1 {
		return "", fmt.Errorf("%w: %s is not a skill artifact", ErrNotSkillArtifact, tag)
	}
	return manifest.Layers[0].Digest, nil
}

// fetchContent retrieves raw content by digest from the underlying store.
func (s *Store) fetchContent(ctx context.Context, d digest.Digest) ([]byte, error) {
	// oci.Store's Fetch only uses the Digest field to locate blobs in blobs/<algo>/<hex>.
	rc, err := s.inner.Fetch(ctx, ocispec.Descriptor{Digest: d})
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}
