// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binsum

import (
	"bufio"
	"context"
	"encoding/binary"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Record is the sequence of integers written by WriteRecords.
var Record = [...]int32{1, 2, 3, 4, 5}

// RecordSum is the sum of the integers in Record.
const RecordSum = 15

// RecordSize is the encoded size of Record in bytes.
const RecordSize = len(Record) * IntSize

// WriteRecords writes n copies of Record to a new file at path,
// replacing any existing file. The file is discarded if writing
// fails.
func WriteRecords(ctx context.Context, path string, n int) error {
	f, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	var rec [RecordSize]byte
	for i, v := range Record {
		binary.LittleEndian.PutUint32(rec[i*IntSize:], uint32(v))
	}
	w := bufio.NewWriter(f.Writer(ctx))
	for i := 0; i < n && err == nil; i++ {
		_, err = w.Write(rec[:])
	}
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		log.Error.Printf("binsum: write %s: %v; discarding", path, err)
		f.Discard(ctx)
		return err
	}
	return f.Close(ctx)
}
