// Package workload supplies the burst-time scenarios a simulation runs
// over: the built-in ones, parsed ones and seeded random ones.
package workload

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"schedsim/internal/sched"
)

// Builtin returns the scenarios of the classic demo: a long job arriving
// last, the same long job arriving first, and a mixed workload.
func Builtin() [][]int64 {
	return [][]int64{
		{8, 8, 8, 8, 8, 8, 8, 256},
		{256, 8, 8, 8, 8, 8, 8, 8},
		{8, 8, 8, 32, 32, 6, 8, 8},
	}
}

// Parse reads a burst list such as "8,8,64" or "8 8 64".
func Parse(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '[' || r == ']'
	})

	bursts := make([]int64, 0, len(fields))
	for _, f := range fields {
		b, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse burst %q: %w", f, err)
		}
		bursts = append(bursts, b)
	}
	if err := sched.ValidateScenario(bursts); err != nil {
		return nil, fmt.Errorf("parse scenario %q: %w", s, err)
	}
	return bursts, nil
}

// Random draws n bursts uniformly from [lo, hi].
func Random(rng *rand.Rand, n int, lo, hi int64) []int64 {
	if n <= 0 {
		return nil
	}
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	bursts := make([]int64, n)
	for i := range bursts {
		bursts[i] = lo + rng.Int63n(hi-lo+1)
	}
	return bursts
}

// Generate builds cfg.Count random scenarios. The same seed always yields
// the same scenarios.
func Generate(cfg sched.RandomWorkload) [][]int64 {
	if cfg.Count <= 0 || cfg.Length <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	out := make([][]int64, cfg.Count)
	for i := range out {
		out[i] = Random(rng, cfg.Length, cfg.Min, cfg.Max)
	}
	return out
}

// Resolve returns the configured scenarios, falling back to Builtin when
// none are listed, followed by any random ones.
func Resolve(cfg sched.Config) [][]int64 {
	scenarios := cfg.Scenarios
	if len(scenarios) == 0 {
		scenarios = Builtin()
	}
	return append(append([][]int64(nil), scenarios...), Generate(cfg.Random)...)
}

// Format renders a scenario the way the scenarios pane lists it.
func Format(bursts []int64) string {
	parts := make([]string, len(bursts))
	for i, b := range bursts {
		parts[i] = strconv.FormatInt(b, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
