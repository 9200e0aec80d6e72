package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"sandfall/internal/core"
	"sandfall/internal/sims/sand"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type runResult struct {
	seed      int64
	grains    int
	settledAt int
	peak      int
	violation string
}

func main() {
	steps := flag.Int("steps", 1000, "maximum steps to simulate per run")
	runs := flag.Int("runs", 4, "number of seeds to simulate")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel runs")
	density := flag.Float64("density", 0.3, "fraction of cells filled before the first step")
	var overrides kvList
	flag.Var(&overrides, "set", "world override in key=value form: size, w, h, seed (repeatable)")
	flag.Parse()

	kv := map[string]string{}
	for _, item := range overrides {
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 {
			continue
		}
		kv[parts[0]] = parts[1]
	}
	cfg := sand.FromMap(kv)
	if _, err := core.NewBitGrid(cfg.Width, cfg.Height); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	jobs := make(chan int64)
	results := make(chan runResult)
	var wg sync.WaitGroup
	for i := 0; i < max(*workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				c := cfg
				c.Seed = seed
				results <- simulate(c, *density, *steps)
			}
		}()
	}
	go func() {
		for i := 0; i < *runs; i++ {
			jobs <- cfg.Seed + int64(i)
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []runResult
	for r := range results {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seed < all[j].seed })

	fmt.Printf("World %dx%d, density %.2f, up to %d steps\n", cfg.Width, cfg.Height, *density, *steps)
	failed := false
	for _, r := range all {
		settled := "never"
		if r.settledAt >= 0 {
			settled = fmt.Sprintf("step %d", r.settledAt)
		}
		fmt.Printf("  seed %d: grains %d, settled %s, pile height %d\n", r.seed, r.grains, settled, r.peak)
		if r.violation != "" {
			fmt.Printf("    conservation violated: %s\n", r.violation)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// simulate scatters sand and steps until nothing moves or the budget runs out.
func simulate(cfg sand.Config, density float64, steps int) runResult {
	cur, _ := core.NewBitGrid(cfg.Width, cfg.Height)
	rng := core.NewRNG(cfg.Seed)
	core.FillRandom(cur, rng.Source(), density)

	res := runResult{seed: cfg.Seed, grains: cur.Count(), settledAt: -1}
	for i := 0; i < steps; i++ {
		next := sand.Update(cur, rng)
		if n := next.Count(); n != res.grains && res.violation == "" {
			res.violation = fmt.Sprintf("step %d: %d -> %d grains", i, res.grains, n)
		}
		if next.Equal(cur) {
			res.settledAt = i
			break
		}
		cur = next
	}
	for _, y := range cur.TrueCells() {
		res.peak = max(res.peak, y+1)
	}
	return res
}
