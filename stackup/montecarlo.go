// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackup

import (
	"math"
	"sort"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// numHistogramBins is the fixed bin count spec.md §4.3 mandates.
const numHistogramBins = 50

// minNormalStd is the std floor a normal sampler falls back to when the
// requested std is non-positive, matching the original Rust's
// Normal::new(mean, std).unwrap_or(Normal::new(mean, 0.001).unwrap()).
const minNormalStd = 0.001

// sampleLink draws one sample from a link's distribution using src as the
// shared RNG source.
func sampleLink(l Link, src rand.Source) float64 {
	if l.Distribution == DistributionUniform {
		lo := l.Nominal - l.MinusTolerance
		hi := l.Nominal + l.PlusTolerance
		if hi < lo {
			lo, hi = hi, lo
		}
		u := distuv.Uniform{Min: lo, Max: hi, Src: src}
		return u.Rand()
	}

	// Normal (also the default for any unrecognized distribution string).
	mean := l.Nominal + (l.PlusTolerance-l.MinusTolerance)/2.0
	std := (l.PlusTolerance + l.MinusTolerance) / (2.0 * l.sigma())
	if std <= 0 {
		std = minNormalStd
	}
	n := distuv.Normal{Mu: mean, Sigma: std, Src: src}
	return n.Rand()
}

// runMonteCarlo draws `samples` stackup totals and summarizes them per
// spec.md §4.3: mean/std/min/max, the fixed percentile set, a 50-bin
// histogram, optional Cpk, and a supplemented standard error of the mean.
func runMonteCarlo(links []Link, samples int, target *TargetSpec, seed *int64) MonteCarlo {
	s := int64(0)
	if seed != nil {
		s = *seed
	} else {
		s = time.Now().UnixNano()
	}
	src := rand.NewSource(uint64(s))

	results := make([]float64, samples)
	for i := 0; i < samples; i++ {
		var total float64
		for _, l := range links {
			total += l.sign() * sampleLink(l, src)
		}
		results[i] = total
	}

	sort.Float64s(results)

	n := float64(samples)
	var sum float64
	for _, x := range results {
		sum += x
	}
	mean := sum / n

	var sqDiff float64
	for _, x := range results {
		d := x - mean
		sqDiff += d * d
	}
	variance := sqDiff / n
	std := math.Sqrt(variance)
	stdErr := std / math.Sqrt(n)

	min := results[0]
	max := results[samples-1]

	cpk := 1.0
	cpkApplicable := false
	if target != nil {
		upper := target.Nominal + target.PlusTolerance
		lower := target.Nominal - target.MinusTolerance
		cpu := (upper - mean) / (3.0 * std)
		cpl := (mean - lower) / (3.0 * std)
		cpk = math.Min(cpu, cpl)
		cpkApplicable = true
	}

	percentiles := Percentiles{
		P0_1: results[percentileIndex(samples, 0.001)],
		P1:   results[percentileIndex(samples, 0.01)],
		P5:   results[percentileIndex(samples, 0.05)],
		P50:  results[samples/2],
		P95:  results[percentileIndex(samples, 0.95)],
		P99:  results[percentileIndex(samples, 0.99)],
		P999: results[clampIndex(int(float64(samples)*0.999), samples)],
	}

	histogram := buildHistogram(results, min, max, samples)

	return MonteCarlo{
		Mean:          mean,
		Std:           std,
		Min:           min,
		Max:           max,
		Cpk:           cpk,
		CpkApplicable: cpkApplicable,
		Percentiles:   percentiles,
		Histogram:     histogram,
		StdErr:        stdErr,
	}
}

// percentileIndex returns floor(N*p), clamped to a valid results index.
func percentileIndex(samples int, p float64) int {
	return clampIndex(int(float64(samples)*p), samples)
}

// clampIndex clamps idx into [0, samples-1].
func clampIndex(idx, samples int) int {
	if idx < 0 {
		return 0
	}
	if idx > samples-1 {
		return samples - 1
	}
	return idx
}

// buildHistogram bins sorted results into numHistogramBins equal-width
// bins spanning [min, max]. Every bin is half-open [binMin, binMax) except
// the final bin, which is closed on both ends (spec.md §4.3).
func buildHistogram(sortedResults []float64, min, max float64, samples int) []HistogramBin {
	width := (max - min) / float64(numHistogramBins)
	histogram := make([]HistogramBin, numHistogramBins)

	for i := 0; i < numHistogramBins; i++ {
		binMin := min + float64(i)*width
		binMax := binMin + width
		count := 0
		for _, x := range sortedResults {
			if x >= binMin && (i == numHistogramBins-1 || x < binMax) {
				count++
			}
		}
		histogram[i] = HistogramBin{
			Min:        binMin,
			Max:        binMax,
			Count:      count,
			Percentage: 100.0 * float64(count) / float64(samples),
		}
	}

	return histogram
}
