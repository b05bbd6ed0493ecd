// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binsum

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// A Source is a read-only, fixed-size byte source that supports
// reading from arbitrary offsets. Sources must be safe for
// concurrent use: each reader task acquires its own cursor.
type Source interface {
	// Size returns the size of the source in bytes.
	Size(ctx context.Context) (int64, error)
	// Cursor returns a reader positioned at the provided offset. The
	// caller must close the returned reader when done.
	Cursor(ctx context.Context, offset int64) (io.ReadCloser, error)
}

// FileSource returns a Source that reads the file at the provided
// path. Any path supported by package
// github.com/grailbio/base/file may be used. Each cursor opens the
// file anew, so that concurrent cursors do not share a file offset.
func FileSource(path string) Source {
	return fileSource(path)
}

type fileSource string

func (s fileSource) String() string { return string(s) }

func (s fileSource) Size(ctx context.Context) (int64, error) {
	info, err := file.Stat(ctx, string(s))
	if err != nil {
		return 0, errors.E(err, fmt.Sprintf("binsum: stat %s", s))
	}
	return info.Size(), nil
}

func (s fileSource) Cursor(ctx context.Context, offset int64) (io.ReadCloser, error) {
	f, err := file.Open(ctx, string(s))
	if err != nil {
		return nil, err
	}
	r := f.Reader(ctx)
	if n, err := r.Seek(offset, io.SeekStart); err != nil || n != offset {
		closeFile(ctx, f)
		if err == nil {
			err = errors.E(errors.Invalid, fmt.Sprintf("seeked to %d, got %d", offset, n))
		}
		return nil, err
	}
	return &fileCursor{Reader: r, ctx: ctx, file: f}, nil
}

type fileCursor struct {
	io.Reader
	ctx  context.Context
	file file.File
}

func (c *fileCursor) Close() error {
	return closeFile(c.ctx, c.file)
}

type closeNoSyncer interface {
	CloseNoSync(context.Context) error
}

// CloseFile closes a file that was opened for reading. It avoids
// syncing if the implementation supports it.
func closeFile(ctx context.Context, f file.File) error {
	if closer, ok := f.(closeNoSyncer); ok {
		return closer.CloseNoSync(ctx)
	}
	return f.Close(ctx)
}

// ReaderAtSource returns a Source of the given size backed by r.
// It is useful for summing in-memory data.
func ReaderAtSource(r io.ReaderAt, size int64) Source {
	return &readerAtSource{r, size}
}

type readerAtSource struct {
	r    io.ReaderAt
	size int64
}

func (s *readerAtSource) Size(context.Context) (int64, error) {
	return s.size, nil
}

func (s *readerAtSource) Cursor(_ context.Context, offset int64) (io.ReadCloser, error) {
	if offset < 0 || offset > s.size {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("offset %d out of range [0,%d]", offset, s.size))
	}
	return ioutil.NopCloser(io.NewSectionReader(s.r, offset, s.size-offset)), nil
}
