// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/dawarazhar11/ohmframe-stackup/iface"
	"github.com/dawarazhar11/ohmframe-stackup/stackup"
	"github.com/dawarazhar11/ohmframe-stackup/step"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	stepfn, _ := io.ArgToFilename(0, "", ".stp", true)
	linksfn := io.ArgToString(1, "")
	proximityThreshold := io.ArgToFloat(2, iface.DefaultProximityThreshold)
	normalThreshold := io.ArgToFloat(3, iface.DefaultNormalThreshold)

	io.Pf("\n%v\n", io.ArgsTable(
		"STEP assembly file", "stepfn", stepfn,
		"stackup links JSON (optional)", "linksfn", linksfn,
		"interface proximity threshold (mm)", "proximityThreshold", proximityThreshold,
		"interface normal alignment threshold", "normalThreshold", normalThreshold,
	))

	// parse the assembly
	content, err := utl.ReadFile(stepfn)
	if err != nil {
		chk.Panic("cannot read STEP file %q:\n%v", stepfn, err)
	}
	assembly, err := step.ParseAssembly(string(content), stepfn)
	if err != nil {
		chk.Panic("ParseAssembly failed:\n%v", err)
	}
	printJSON("assembly", assembly)

	// detect mating interfaces between the parsed parts
	interfaces := iface.DetectMatingInterfaces(assembly.Parts, proximityThreshold, normalThreshold)
	printJSON("interfaces", interfaces)

	// optionally run a tolerance stackup over a supplied links file
	if linksfn != "" {
		linksData, err := utl.ReadFile(linksfn)
		if err != nil {
			chk.Panic("cannot read stackup links file %q:\n%v", linksfn, err)
		}
		var input stackup.Input
		if err := json.Unmarshal(linksData, &input); err != nil {
			chk.Panic("cannot parse stackup links file %q:\n%v", linksfn, err)
		}
		result, err := stackup.Calculate(input)
		if err != nil {
			io.PfRed("stackup.Calculate: %v\n", err)
		}
		printJSON("stackup", result)
	}
}

// printJSON indent-marshals v under a heading, mirroring gofem's
// io.Pf-based result reporting.
func printJSON(heading string, v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		chk.Panic("cannot marshal %s result:\n%v", heading, err)
	}
	io.Pforan("\n--- %s -------------------------------------\n", heading)
	io.Pf("%s\n", string(b))
}
