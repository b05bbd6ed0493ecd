// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
	Package binsum computes the sum of the 32-bit little-endian signed
	integers stored in a binary file. The file carries no header or
	trailer; its size must be a multiple of IntSize.

	Summation proceeds in two steps. Plan partitions the file into
	contiguous chunks whose boundaries fall on whole read buffers:

		chunks, err := binsum.Plan(size, workers, bufferLength)

	Reduce then reads each chunk in a separate task, at most workers
	of which run concurrently. Each task opens its own cursor on the
	Source, reads its chunk sequentially through a private buffer, and
	computes a partial sum. The partial sums are added together once
	every task has completed:

		total, err := binsum.Reduce(ctx, src, chunks, binsum.Options{
			Workers:      workers,
			BufferLength: bufferLength,
		})

	Sum, SumSource, and SumFiles combine the two steps. Files are read
	through package github.com/grailbio/base/file, so any path it
	supports (for example, S3 URLs once s3file is registered) may be
	summed.

	Errors are reported with package github.com/grailbio/base/errors:
	inputs of the wrong size have kind errors.NotSupported (see
	IsUnsupportedFormat); bad worker counts or buffer lengths have kind
	errors.Invalid (see IsInvalidParameter); I/O errors retain the kind
	of the underlying error. Any error aborts the whole computation.
	Totals wrap around silently on overflow.
*/
package binsum
