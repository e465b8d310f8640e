// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package archive writes reproducible zip archives of skill folders.
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/opencontainers/go-digest"

	"github.com/stacklok/toolhive-catalog/exclude"
	"github.com/stacklok/toolhive-catalog/output"
)

// Extension is the file extension of skill archives.
const Extension = ".zip"

// zipEpoch is the earliest timestamp the zip format can represent.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// ClampEpoch returns t in UTC, moved forward to 1980-01-01 when earlier.
func ClampEpoch(t time.Time) time.Time {
	t = t.UTC()
	if t.Before(zipEpoch) {
		return zipEpoch
	}
	return t
}

// Result describes a written archive.
type Result struct {
	// Path is the absolute path of the archive.
	Path string
	// Size is the archive size in bytes.
	Size int64
	// FileCount is the number of files in the skill folder, counted by an
	// independent walk with the same exclusion rules.
	FileCount int
	// Digest is the sha256 digest of the archive bytes.
	Digest digest.Digest
}

// Packager writes skill archives into a downloads directory.
type Packager struct {
	dir   string
	epoch time.Time
	level int
}

// NewPackager creates a packager writing into dir. Every member gets the
// modification time epoch, clamped to the zip format's range.
func NewPackager(dir string, epoch time.Time) *Packager {
	return &Packager{dir: dir, epoch: ClampEpoch(epoch), level: flate.BestCompression}
}

// fileEntry is a file selected for an archive.
type fileEntry struct {
	rel  string
	abs  string
	mode fs.FileMode
}

// Package archives srcDir as <dir>/<id>.zip with every member under "id/".
// The destination is checked before anything is written; an id that escapes
// the downloads directory yields a *output.BoundaryError.
func (p *Packager) Package(ctx context.Context, srcDir, id string) (Result, error) {
	dest, err := output.Resolve(p.dir, id+Extension)
	if err != nil {
		return Result{}, err
	}

	files, err := collect(srcDir)
	if err != nil {
		return Result{}, err
	}

	count, err := CountFiles(srcDir)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return Result{}, fmt.Errorf("creating downloads directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return Result{}, fmt.Errorf("creating temp archive: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	digester := digest.Canonical.Digester()
	cw := &countingWriter{w: io.MultiWriter(tmp, digester.Hash())}
	if err := p.write(ctx, cw, id, files); err != nil {
		_ = tmp.Close()
		return Result{}, err
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("closing archive: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //#nosec G302 -- downloads are world-readable
		return Result{}, fmt.Errorf("setting archive permissions: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return Result{}, fmt.Errorf("replacing %s: %w", dest, err)
	}

	return Result{
		Path:      dest,
		Size:      cw.n,
		FileCount: count,
		Digest:    digester.Digest(),
	}, nil
}

// write streams a zip of files to w. Headers are normalized so the same input
// always produces the same bytes.
func (p *Packager) write(ctx context.Context, w io.Writer, id string, files []fileEntry) error {
	zw := zip.NewWriter(w)
	level := p.level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr := &zip.FileHeader{
			Name:     id + "/" + f.rel,
			Method:   zip.Deflate,
			Modified: p.epoch,
		}
		hdr.SetMode(normalizeMode(f.mode))

		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("writing zip header for %s: %w", f.rel, err)
		}
		if err := copyFile(fw, f.abs); err != nil {
			return fmt.Errorf("writing zip content for %s: %w", f.rel, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip writer: %w", err)
	}
	return nil
}

// normalizeMode keeps only the owner-executable bit.
func normalizeMode(m fs.FileMode) fs.FileMode {
	if m.Perm()&0o100 != 0 {
		return 0o755
	}
	return 0o644
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path) //#nosec G304 -- path comes from walking the skill folder
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = io.Copy(w, f)
	return err
}

// collect returns the regular, non-excluded files below dir sorted by their
// slash-separated relative path.
func collect(dir string) ([]fileEntry, error) {
	var files []fileEntry
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if exclude.Match(rel, true) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || exclude.Match(rel, false) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, fileEntry{rel: rel, abs: p, mode: info.Mode()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	slices.SortFunc(files, func(a, b fileEntry) int { return strings.Compare(a.rel, b.rel) })
	return files, nil
}

// CountFiles counts the regular files below dir that survive exclusion.
func CountFiles(dir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if exclude.Match(rel, true) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && !exclude.Match(rel, false) {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting files in %s: %w", dir, err)
	}
	return n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
