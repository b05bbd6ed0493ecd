// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Binsumgen writes a synthetic binsum input file: the integers 1
// through 5 repeated a number of times. It prints the size of the
// resulting file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/must"
	"github.com/grailbio/binsum"
)

func main() {
	log.AddFlags()
	log.SetFlags(0)
	log.SetPrefix("binsumgen: ")
	must.Func = log.Fatal
	flag.CommandLine.Init("binsumgen", flag.ContinueOnError)
	os.Exit(run(flag.CommandLine, os.Args[1:], os.Stdout, os.Stderr))
}

// Run writes the file named by args and reports its size on stdout.
// It returns the process exit code.
func run(flags *flag.FlagSet, args []string, stdout, stderr io.Writer) int {
	n := flags.Int("n", 1000000, "number of records to write")
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, `usage: binsumgen [-n records] path`)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}
	if flags.NArg() != 1 || *n < 0 {
		flags.Usage()
		return 1
	}
	ctx := context.Background()
	path := flags.Arg(0)
	if err := binsum.WriteRecords(ctx, path, *n); err != nil {
		log.Error.Printf("%s: %v", path, err)
		return 1
	}
	info, err := file.Stat(ctx, path)
	must.Nil(err, path)
	fmt.Fprintln(stdout, info.Size())
	return 0
}
