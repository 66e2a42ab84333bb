// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackup

import "math"

// linkVariance returns a link's variance contribution to the RSS total,
// per spec.md §4.3: normal distribution treats the tolerance half-width as
// sigma standard-deviation units, uniform treats the full range as a
// uniform distribution's range. Any unrecognized distribution defaults to
// normal.
func linkVariance(l Link) float64 {
	totalTol := l.PlusTolerance + l.MinusTolerance

	switch l.Distribution {
	case DistributionUniform:
		return totalTol * totalTol / 12.0
	default:
		halfTol := totalTol / 2.0
		ratio := halfTol / l.sigma()
		return ratio * ratio
	}
}

// calculateRSS implements spec.md §4.3's RSS (root-sum-square) statistical
// combination. It also returns the per-link variance slice, reused by
// calculateContributions so the two stay in lockstep.
func calculateRSS(links []Link) (RSS, []float64) {
	var totalNominal float64
	variances := make([]float64, len(links))

	for i, l := range links {
		totalNominal += l.sign() * l.Nominal
		variances[i] = linkVariance(l)
	}

	var totalVariance float64
	for _, v := range variances {
		totalVariance += v
	}
	std := math.Sqrt(totalVariance)
	tolerance := 3.0 * std

	return RSS{
		Min:       totalNominal - tolerance,
		Max:       totalNominal + tolerance,
		Tolerance: tolerance,
		Sigma:     std,
	}, variances
}
