// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"flag"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/binsum"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
)

func runArgs(args ...string) (code int, stdout, stderr string) {
	var outb, errb bytes.Buffer
	flags := flag.NewFlagSet("binsum", flag.ContinueOnError)
	code = run(flags, args, &outb, &errb)
	return code, outb.String(), errb.String()
}

func writeRecords(t *testing.T, dir, name string, n int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, binsum.WriteRecords(context.Background(), path, n))
	return path
}

func TestRun(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	one := writeRecords(t, dir, "one", 1)
	two := writeRecords(t, dir, "two", 2)
	odd := filepath.Join(dir, "odd")
	assert.NoError(t, ioutil.WriteFile(odd, make([]byte, 7), 0644))

	for _, c := range []struct {
		args []string
		code int
		out  string
	}{
		{[]string{one, "-threads", "2", "-bufferLength", "16"}, 0, "15\n"},
		{[]string{"-threads", "2", "-bufferLength", "16", one}, 0, "15\n"},
		{[]string{"-threads", "3", one, "-bufferLength", "4"}, 0, "15\n"},
		{[]string{two}, 0, "30\n"},
		{[]string{one, two, "-threads", "1"}, 0, "15\t" + one + "\n30\t" + two + "\n"},
		{[]string{one, "-threads", "0"}, 1, ""},
		{[]string{one, "-bufferLength", "6"}, 1, ""},
		{[]string{one, "-bufferLength", "x"}, 1, ""},
		{[]string{one, "-threads"}, 1, ""},
		{[]string{one, "-bogus"}, 1, ""},
		{[]string{filepath.Join(dir, "missing")}, 1, ""},
		{[]string{odd}, 1, ""},
	} {
		code, out, _ := runArgs(c.args...)
		if got, want := code, c.code; got != want {
			t.Errorf("%v: got %v, want %v", c.args, got, want)
		}
		if got, want := out, c.out; got != want {
			t.Errorf("%v: got %q, want %q", c.args, got, want)
		}
	}
}

func TestRunUsage(t *testing.T) {
	code, out, stderr := runArgs()
	if got, want := code, 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if out != "" || !strings.HasPrefix(stderr, "usage: binsum") {
		t.Errorf("unexpected output %q, %q", out, stderr)
	}
	for _, arg := range []string{"-help", "-h"} {
		code, out, _ := runArgs(arg)
		if got, want := code, 0; got != want {
			t.Errorf("%s: got %v, want %v", arg, got, want)
		}
		if !strings.HasPrefix(out, "usage: binsum") {
			t.Errorf("%s: unexpected output %q", arg, out)
		}
	}
}

func TestRunDebug(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeRecords(t, dir, "records", 100)
	var out, stderr bytes.Buffer
	flags := flag.NewFlagSet("binsum", flag.ContinueOnError)
	code := run(flags, []string{path, "-debug", "-threads", "2"}, &out, &stderr)
	if got, want := code, 0; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if got, want := len(lines), 3; got != want {
		t.Fatalf("got %v, want %v: %q", got, want, lines)
	}
	if got, want := lines[0], "Available processors: 2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := lines[1], "Result: 1500"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !strings.HasPrefix(lines[2], "Execute time: ") || !strings.HasSuffix(lines[2], " ms") {
		t.Errorf("unexpected line %q", lines[2])
	}
	// The file fits in a single buffer: one chunk, one read.
	if want := "stats: bytes:2000 chunks:1 reads:1\n"; !strings.HasSuffix(stderr.String(), want) {
		t.Errorf("stderr %q does not end with %q", stderr.String(), want)
	}
}
