// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package fuzz

import (
	"runtime"
	"sync"
)

// RunAll encodes the whole campaign serially and returns the cases in
// generation order.
func (g Generator) RunAll() ([]Case, error) {
	it, err := g.Cases()
	if err != nil {
		return nil, err
	}
	cases := make([]Case, 0, it.Len())
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// RunParallel encodes the campaign across a worker pool. Cases are pure
// values, so the only coordination needed is writing each result to its
// planned slot; the returned slice is identical to RunAll's.
func RunParallel(g Generator, workers int) ([]Case, error) {
	if workers <= 1 {
		return g.RunAll()
	}
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	mcfg, err := g.modemConfig()
	if err != nil {
		return nil, err
	}
	plan, err := g.plan()
	if err != nil {
		return nil, err
	}

	cases := make([]Case, len(plan))
	jobs := make(chan pending)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				cases[p.index] = g.encode(p, mcfg)
			}
		}()
	}

	for _, p := range plan {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	return cases, nil
}
