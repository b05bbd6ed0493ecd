// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package stats

import (
	"sync"
	"testing"
)

func TestStats(t *testing.T) {
	coll := NewMap()
	var (
		x = coll.Int("x")
		_ = coll.Int("y")
	)
	if got, want := x.Get(), int64(0); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	x.Add(123)
	x.Add(123)
	if got, want := x.Get(), int64(123*2); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	all := make(Values)
	coll.AddAll(all)
	coll.AddAll(all)
	if got, want := len(all), 2; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := all["x"], int64(123*4); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := all["y"], int64(0); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	x.Set(7)
	if got, want := coll.Snapshot().String(), "x:7 y:0"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNilMap(t *testing.T) {
	var coll *Map
	x := coll.Int(Bytes)
	x.Add(10)
	x.Set(3)
	if got, want := x.Get(), int64(0); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := coll.Snapshot().String(), ""; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConcurrentAdd(t *testing.T) {
	coll := NewMap()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			coll.Int(Reads).Add(2)
			coll.Int(Bytes).Add(12)
			coll.Int(Chunks).Add(1)
		}()
	}
	wg.Wait()
	if got, want := coll.Snapshot().String(), "bytes:120 chunks:10 reads:20"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
