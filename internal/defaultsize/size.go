// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package defaultsize holds the defaults used by the binsum commands
// when the user does not specify tuning parameters. The core
// package never reads these; callers pass them in explicitly.
package defaultsize

import "runtime"

// BufferLength is the default read buffer length in bytes.
const BufferLength = 8192

// Workers returns the default number of concurrent chunk readers.
// It is a variable so that tests can pin it.
var Workers = runtime.NumCPU
