// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	specs "github.com/opencontainers/image-spec/specs-go"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/stacklok/toolhive-catalog/catalog"
)

// ErrTagCollision is returned when two skill identities map to the same tag
// within one publisher.
var ErrTagCollision = errors.New("tag already claimed by another skill")

// Publisher pushes skill archives into a local OCI Image Layout.
type Publisher struct {
	store   *Store
	created string

	mu      sync.Mutex
	claimed map[string]string // tag to skill ID
}

// NewPublisher opens or initializes the layout at root. created is recorded
// in every manifest so repeated runs with the same epoch produce the same
// manifest digests.
func NewPublisher(root string, created time.Time) (*Publisher, error) {
	store, err := NewStore(root)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		store:   store,
		created: created.UTC().Format(time.RFC3339),
		claimed: map[string]string{},
	}, nil
}

// Publish pushes the archive at archivePath as the single layer of an
// artifact describing s, and tags the manifest with Tag(s.ID). When s carries
// a digest the archive must still match it. Publishing a second identity
// that maps to an already claimed tag fails with ErrTagCollision and leaves
// the existing tag untouched.
func (p *Publisher) Publish(ctx context.Context, s catalog.Skill, archivePath string) (ocispec.Descriptor, error) {
	tag := Tag(s.ID)
	if err := p.claim(tag, s.ID); err != nil {
		return ocispec.Descriptor{}, err
	}

	data, err := os.ReadFile(archivePath) //#nosec G304 -- archivePath is the archive just written by the packager
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("reading archive: %w", err)
	}
	if s.Digest != "" && digest.FromBytes(data).String() != s.Digest {
		return ocispec.Descriptor{}, fmt.Errorf("archive %s no longer matches digest %s", archivePath, s.Digest)
	}

	layer, err := p.store.PutBlob(ctx, MediaTypeSkillArchive, data)
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("pushing archive layer: %w", err)
	}
	layer.Annotations = map[string]string{ocispec.AnnotationTitle: s.ID + ".zip"}

	config := ocispec.DescriptorEmptyJSON
	if _, err := p.store.PutBlob(ctx, config.MediaType, config.Data); err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("pushing config: %w", err)
	}
	config.Data = nil

	manifest := ocispec.Manifest{
		Versioned:    specs.Versioned{SchemaVersion: 2},
		MediaType:    ocispec.MediaTypeImageManifest,
		ArtifactType: ArtifactTypeSkill,
		Config:       config,
		Layers:       []ocispec.Descriptor{layer},
		Annotations:  p.annotations(s),
	}
	manifestBytes, err := json.Marshal(manifest)
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("marshaling manifest: %w", err)
	}

	desc, err := p.store.PutBlob(ctx, ocispec.MediaTypeImageManifest, manifestBytes)
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("pushing manifest: %w", err)
	}
	desc.ArtifactType = ArtifactTypeSkill

	if err := p.store.Tag(ctx, desc, tag); err != nil {
		return ocispec.Descriptor{}, err
	}
	return desc, nil
}

func (p *Publisher) claim(tag, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if owner, ok := p.claimed[tag]; ok && owner != id {
		return fmt.Errorf("%w: %q and %q both map to %q", ErrTagCollision, owner, id, tag)
	}
	p.claimed[tag] = id
	return nil
}

func (p *Publisher) annotations(s catalog.Skill) map[string]string {
	a := map[string]string{
		ocispec.AnnotationCreated:  p.created,
		ocispec.AnnotationTitle:    s.Name,
		AnnotationSkillName:        s.Name,
		AnnotationSkillCategory:    s.Category,
		AnnotationSkillDescription: catalog.Truncate(s.Description, catalog.DescriptionBudget),
	}
	if s.Version != "" {
		a[ocispec.AnnotationVersion] = s.Version
	}
	if s.License != "" {
		a[ocispec.AnnotationLicenses] = s.License
	}
	return a
}
