package main

import (
	"github.com/a-pavithraa/lambda-build/common"
)

// Plan is the set of phases one invocation runs.
type Plan struct {
	Build       bool
	Update      bool
	FromArchive bool
}

// ResolvePlan applies the implied-flag rules to params. exists reports whether
// a file is present at the given path.
func ResolvePlan(params common.BuildParams, exists func(string) bool) (Plan, error) {
	if params.IsArchive() {
		if params.Build {
			return Plan{}, &common.InputError{
				Message: "cannot specify -b if zip file is given",
			}
		}
		return Plan{Update: true, FromArchive: true}, nil
	}

	plan := Plan{Build: params.Build, Update: params.Update}
	if !plan.Build && !plan.Update {
		plan.Build = true
		plan.Update = true
	}
	if !plan.Build && !exists(params.OutputPath()) {
		plan.Build = true
	}
	return plan, nil
}
