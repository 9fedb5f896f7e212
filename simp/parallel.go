// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simp

import "golang.org/x/sync/errgroup"

// parallelFor runs fn(i) for i in [0,n) across up to workers goroutines.
// Each call writes only to its own disjoint slice of per-element output
// (the contract in spec §5: "each parallelized loop has disjoint
// per-element outputs — no locks"); workers <= 1 runs serially in order,
// which is also what a worker pool of size 1 would produce, so results are
// bit-for-bit identical regardless of the worker count.
func parallelFor(n, workers int, fn func(i int)) {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if workers > n {
		workers = n
	}
	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}
