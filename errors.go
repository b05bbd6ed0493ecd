// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package binsum

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// unsupportedFormat returns an error for input whose size cannot hold
// a whole number of 32-bit integers.
func unsupportedFormat(size int64) error {
	return errors.E(errors.NotSupported,
		fmt.Sprintf("binsum: unsupported file format: size %d is not a multiple of %d", size, IntSize))
}

func invalidParameter(format string, args ...interface{}) error {
	return errors.E(errors.Invalid, "binsum: "+fmt.Sprintf(format, args...))
}

// IsUnsupportedFormat tells whether err was caused by input that is
// not a sequence of 32-bit integers.
func IsUnsupportedFormat(err error) bool {
	return errors.Is(errors.NotSupported, err)
}

// IsInvalidParameter tells whether err was caused by an invalid
// worker count or buffer length.
func IsInvalidParameter(err error) bool {
	return errors.Is(errors.Invalid, err)
}
