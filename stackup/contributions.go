// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackup

import "sort"

// calculateContributions computes each link's nominal and variance
// contribution and percent share of the total RSS variance (spec.md
// §4.3), then sorts the result descending by Percent and flags the top
// contributor as DominantLink -- a supplemented read of data already
// computed, answering "which link should I tighten first".
func calculateContributions(links []Link, variances []float64) []Contribution {
	var totalVariance float64
	for _, v := range variances {
		totalVariance += v
	}

	contributions := make([]Contribution, len(links))
	for i, l := range links {
		percent := 0.0
		if totalVariance > 0 {
			percent = 100.0 * variances[i] / totalVariance
		}
		contributions[i] = Contribution{
			Index:                i,
			NominalContribution:  l.sign() * l.Nominal,
			VarianceContribution: variances[i],
			Percent:              percent,
		}
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Percent > contributions[j].Percent
	})
	if len(contributions) > 0 {
		contributions[0].DominantLink = true
	}

	return contributions
}
