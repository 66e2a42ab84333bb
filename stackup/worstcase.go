// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackup

// calculateWorstCase implements spec.md §4.3's worst-case interval
// arithmetic: each link contributes [nominal-minus, nominal+plus] if
// positive, or the negated, swapped interval if negative; intervals sum
// componentwise.
func calculateWorstCase(links []Link) WorstCase {
	var totalMin, totalMax float64

	for _, l := range links {
		if l.sign() > 0 {
			totalMin += l.Nominal - l.MinusTolerance
			totalMax += l.Nominal + l.PlusTolerance
		} else {
			totalMin -= l.Nominal + l.PlusTolerance
			totalMax -= l.Nominal - l.MinusTolerance
		}
	}

	return WorstCase{
		Min:       totalMin,
		Max:       totalMax,
		Tolerance: (totalMax - totalMin) / 2.0,
	}
}
