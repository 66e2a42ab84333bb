// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackup

import "github.com/cpmech/gosl/chk"

// Calculate runs worst-case, RSS and Monte-Carlo stackup analysis over
// input.Links, plus per-link contribution accounting. Empty input is the
// sole fatal error (spec.md §4.3); every other malformed field is
// tolerated per the distribution/sign defaults on Link.
func Calculate(input Input) (Result, error) {
	if len(input.Links) == 0 {
		err := chk.Err("stackup: no links provided")
		return Result{
			Success:       false,
			Error:         err.Error(),
			Contributions: []Contribution{},
		}, ErrEmptyInput
	}

	var totalNominal float64
	for _, l := range input.Links {
		totalNominal += l.sign() * l.Nominal
	}

	worstCase := calculateWorstCase(input.Links)
	rss, variances := calculateRSS(input.Links)
	contributions := calculateContributions(input.Links, variances)

	samples := defaultMonteCarloSamples
	if input.MonteCarloSamples != nil {
		samples = *input.MonteCarloSamples
	}
	var monteCarlo *MonteCarlo
	if samples > 0 {
		mc := runMonteCarlo(input.Links, samples, input.TargetSpec, input.Seed)
		monteCarlo = &mc
	}

	return Result{
		Success:       true,
		TotalNominal:  totalNominal,
		WorstCase:     worstCase,
		RSS:           rss,
		MonteCarlo:    monteCarlo,
		Contributions: contributions,
	}, nil
}
