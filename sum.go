// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binsum

import (
	"context"

	"github.com/grailbio/base/limiter"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// SumSource plans and reduces the whole of src. An input whose size
// is not a multiple of IntSize fails before any data is read.
func SumSource(ctx context.Context, src Source, opts Options) (int64, error) {
	size, err := src.Size(ctx)
	if err != nil {
		return 0, err
	}
	chunks, err := Plan(size, opts.Workers, opts.BufferLength)
	if err != nil {
		return 0, err
	}
	log.Debug.Printf("binsum: %v: %d bytes in %d chunks of %d bytes",
		src, size, len(chunks), ChunkSize(size, opts.Workers, opts.BufferLength))
	return Reduce(ctx, src, chunks, opts)
}

// Sum returns the sum of the 32-bit little-endian integers stored in
// the file at path.
func Sum(ctx context.Context, path string, opts Options) (int64, error) {
	return SumSource(ctx, FileSource(path), opts)
}

// SumFiles returns the sums of each of the provided files, in order.
// Files are summed concurrently, but share a single budget of
// opts.Workers concurrent reads. SumFiles fails if any file fails.
func SumFiles(ctx context.Context, paths []string, opts Options) ([]int64, error) {
	if err := checkParams(opts.Workers, opts.BufferLength); err != nil {
		return nil, err
	}
	if opts.Limiter == nil {
		opts.Limiter = limiter.New()
		opts.Limiter.Release(opts.Workers)
	}
	sums := make([]int64, len(paths))
	err := traverse.Each(len(paths), func(i int) (err error) {
		sums[i], err = Sum(ctx, paths[i], opts)
		return
	})
	if err != nil {
		return nil, err
	}
	return sums, nil
}
