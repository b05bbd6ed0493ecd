// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binsum

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/limiter"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/status"
	"github.com/grailbio/binsum/stats"
	"golang.org/x/sync/errgroup"
)

// Options configures a summation.
type Options struct {
	// Workers is the maximum number of chunks read concurrently. It
	// also determines the chunk size computed by Plan.
	Workers int
	// BufferLength is the number of bytes requested by each read. It
	// must be a positive multiple of IntSize.
	BufferLength int

	// Limiter, if non-nil, is used instead of a per-call limiter to
	// admit reader tasks. It lets several summations share a single
	// budget of concurrent reads. The caller is responsible for
	// releasing its initial tokens.
	Limiter *limiter.Limiter
	// Status, if non-nil, receives a task for each chunk while it is
	// being read.
	Status *status.Group
	// Stats, if non-nil, accumulates I/O statistics under the
	// counter names defined in package stats.
	Stats *stats.Map
}

// Reduce sums the integers in each of the provided chunks of src
// and returns their total. Chunks are read by independent tasks, at
// most opts.Workers of which run at a time; each task opens its own
// cursor and reads the chunk sequentially, opts.BufferLength bytes
// at a time. A chunk whose data ends early is summed up to the last
// whole integer.
//
// Reduce returns only after every task has completed. If any read
// fails, the remaining tasks are canceled and Reduce returns the
// first error; no partial total is returned. The total wraps around
// on overflow.
func Reduce(ctx context.Context, src Source, chunks []Chunk, opts Options) (int64, error) {
	if err := checkParams(opts.Workers, opts.BufferLength); err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}
	lim := opts.Limiter
	if lim == nil {
		lim = limiter.New()
		lim.Release(opts.Workers)
	}
	buffers := sync.Pool{
		New: func() interface{} { return make([]byte, opts.BufferLength) },
	}
	var (
		sums   = make([]int64, len(chunks))
		chunkc = opts.Stats.Int(stats.Chunks)
		ioc    = ioCounters{bytes: opts.Stats.Int(stats.Bytes), reads: opts.Stats.Int(stats.Reads)}
	)
	g, ctx := errgroup.WithContext(ctx)
	for i := range chunks {
		i, chunk := i, chunks[i]
		g.Go(func() error {
			if err := lim.Acquire(ctx, 1); err != nil {
				return err
			}
			defer lim.Release(1)
			if opts.Status != nil {
				task := opts.Status.Startf("chunk %d %s", i, chunk)
				defer task.Done()
			}
			buf := buffers.Get().([]byte)
			defer buffers.Put(buf)
			sum, err := sumChunk(ctx, src, chunk, buf, ioc)
			if err != nil {
				return errors.E(err, fmt.Sprintf("binsum: read chunk %d %s", i, chunk))
			}
			log.Debug.Printf("binsum: chunk %d %s: partial sum %d", i, chunk, sum)
			sums[i] = sum
			chunkc.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var total int64
	for _, sum := range sums {
		total += sum
	}
	return total, nil
}

// SumSequential sums all of src using a single cursor and no
// concurrency. It is the reference against which Reduce is checked.
func SumSequential(ctx context.Context, src Source, bufferLength int) (int64, error) {
	if err := checkParams(1, bufferLength); err != nil {
		return 0, err
	}
	size, err := src.Size(ctx)
	if err != nil {
		return 0, err
	}
	if size%IntSize != 0 {
		return 0, unsupportedFormat(size)
	}
	return sumChunk(ctx, src, Chunk{0, size}, make([]byte, bufferLength), ioCounters{})
}

// ioCounters are the per-read counters updated by sumChunk. Nil
// counters discard updates.
type ioCounters struct {
	bytes, reads *stats.Int
}

// SumChunk reads chunk from src through buf and returns the sum of
// its integers. Bytes left over from a read that ends mid-integer
// are carried to the front of buf for the next read.
func sumChunk(ctx context.Context, src Source, chunk Chunk, buf []byte, ioc ioCounters) (sum int64, err error) {
	rc, err := src.Cursor(ctx, chunk.Offset)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := rc.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	var (
		remaining = chunk.Length
		carry     int
	)
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n := len(buf) - carry
		if int64(n) > remaining {
			n = int(remaining)
		}
		m, err := rc.Read(buf[carry : carry+n])
		ioc.reads.Add(1)
		ioc.bytes.Add(int64(m))
		remaining -= int64(m)
		end := carry + m
		whole := end - end%IntSize
		sum += sumInts(buf[:whole])
		carry = copy(buf, buf[whole:end])
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return sum, nil
}

// SumInts returns the sum of the little-endian 32-bit integers in p.
// Trailing bytes that do not form a whole integer are ignored.
func sumInts(p []byte) (sum int64) {
	for len(p) >= IntSize {
		sum += int64(int32(binary.LittleEndian.Uint32(p)))
		p = p[IntSize:]
	}
	return
}
