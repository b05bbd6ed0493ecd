// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binsum

import "fmt"

// IntSize is the size in bytes of each integer stored in a binsum
// input file.
const IntSize = 4

// A Chunk is a contiguous byte range of the input that is summed by
// a single task. Both Offset and Length are multiples of IntSize.
type Chunk struct {
	// Offset is the byte position of the first integer in the chunk.
	Offset int64
	// Length is the number of bytes in the chunk.
	Length int64
}

// End returns the byte position just past the chunk.
func (c Chunk) End() int64 { return c.Offset + c.Length }

func (c Chunk) String() string {
	return fmt.Sprintf("[%d,%d)", c.Offset, c.End())
}

// ChunkSize returns the nominal chunk size for a file of the given
// size: the per-worker share of the file, rounded up to a whole
// number of buffers.
func ChunkSize(fileSize int64, workers, bufferLength int) int64 {
	stride := int64(workers) * int64(bufferLength)
	return (fileSize + stride - 1) / stride * int64(bufferLength)
}

// Plan partitions a file of fileSize bytes into chunks, each of
// which is read by a single task. Chunks are returned in offset
// order; they are contiguous and together cover [0, fileSize). Every
// chunk but the last is ChunkSize(fileSize, workers, bufferLength)
// bytes long.
//
// Plan fails with an unsupported format error if fileSize is not a
// multiple of IntSize, and with an invalid parameter error if
// workers is not positive or bufferLength is not a positive multiple
// of IntSize. An empty file yields an empty plan.
func Plan(fileSize int64, workers, bufferLength int) ([]Chunk, error) {
	if err := checkParams(workers, bufferLength); err != nil {
		return nil, err
	}
	if fileSize < 0 || fileSize%IntSize != 0 {
		return nil, unsupportedFormat(fileSize)
	}
	if fileSize == 0 {
		return nil, nil
	}
	size := ChunkSize(fileSize, workers, bufferLength)
	chunks := make([]Chunk, 0, (fileSize+size-1)/size)
	for off := int64(0); off < fileSize; off += size {
		n := size
		if rem := fileSize - off; rem < n {
			n = rem
		}
		chunks = append(chunks, Chunk{Offset: off, Length: n})
	}
	return chunks, nil
}

func checkParams(workers, bufferLength int) error {
	if workers <= 0 {
		return invalidParameter("worker count %d must be positive", workers)
	}
	if bufferLength <= 0 || bufferLength%IntSize != 0 {
		return invalidParameter("buffer length %d must be a positive multiple of %d", bufferLength, IntSize)
	}
	return nil
}
