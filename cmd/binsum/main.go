// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Binsum prints the sum of the 32-bit little-endian integers stored
// in one or more binary files. Files are read in parallel chunks.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/status"
	"github.com/grailbio/binsum"
	"github.com/grailbio/binsum/internal/defaultsize"
	"github.com/grailbio/binsum/stats"
)

const (
	exitOK      = 0
	exitFailure = 1
)

func init() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `usage: binsum <file path>... [-threads N] [-bufferLength N] [-debug] [-help]

Binsum prints the sum of the 32-bit little-endian signed integers
stored in each file. Paths may name local files or any location
supported by github.com/grailbio/base/file, such as s3://bucket/key.
Given several files, binsum prints one "sum<TAB>path" line per file.

	-threads N
		number of chunks read concurrently (default: number of CPUs)
	-bufferLength N
		length of each read in bytes; must be a multiple of 4 (default: %d)
	-debug
		print the processor count and the execution time; report
		read statistics on standard error
	-help
		print this message
`, defaultsize.BufferLength)
}

func main() {
	log.AddFlags()
	log.SetFlags(0)
	log.SetPrefix("binsum: ")
	flag.CommandLine.Init("binsum", flag.ContinueOnError)
	os.Exit(run(flag.CommandLine, os.Args[1:], os.Stdout, os.Stderr))
}

// Run parses args with flags, sums the named files, and writes the
// results to stdout. It returns the process exit code.
func run(flags *flag.FlagSet, args []string, stdout, stderr io.Writer) int {
	var (
		threads      = flags.Int("threads", defaultsize.Workers(), "number of concurrent readers")
		bufferLength = flags.Int("bufferLength", defaultsize.BufferLength, "read buffer length in bytes")
		debug        = flags.Bool("debug", false, "print diagnostics")
		help         = flags.Bool("help", false, "print usage")
	)
	flags.SetOutput(stderr)
	flags.Usage = func() { usage(stderr) }

	// Flags may be interleaved with paths.
	var paths []string
	for {
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				usage(stdout)
				return exitOK
			}
			return exitFailure
		}
		if *help {
			usage(stdout)
			return exitOK
		}
		args = flags.Args()
		if len(args) == 0 {
			break
		}
		paths = append(paths, args[0])
		args = args[1:]
	}
	if len(paths) == 0 {
		usage(stderr)
		return exitFailure
	}

	opts := binsum.Options{
		Workers:      *threads,
		BufferLength: *bufferLength,
	}
	var st status.Status
	if *debug {
		fmt.Fprintf(stdout, "Available processors: %d\n", *threads)
		opts.Status = st.Groupf("binsum %d files", len(paths))
		opts.Stats = stats.NewMap()
	}
	start := time.Now()
	sums, err := binsum.SumFiles(context.Background(), paths, opts)
	if *debug {
		if err := st.Marshal(stderr); err != nil {
			log.Error.Printf("status: %v", err)
		}
		fmt.Fprintf(stderr, "stats: %s\n", opts.Stats.Snapshot())
	}
	if err != nil {
		log.Error.Printf("%v", err)
		return exitFailure
	}
	for i, sum := range sums {
		if *debug {
			fmt.Fprint(stdout, "Result: ")
		}
		if len(paths) == 1 {
			fmt.Fprintln(stdout, sum)
		} else {
			fmt.Fprintf(stdout, "%d\t%s\n", sum, paths[i])
		}
	}
	if *debug {
		fmt.Fprintf(stdout, "Execute time: %d ms\n", time.Since(start)/time.Millisecond)
	}
	return exitOK
}
