package main

import (
	"testing"

	"github.com/a-pavithraa/lambda-build/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlan(t *testing.T) {
	present := func(string) bool { return true }
	missing := func(string) bool { return false }

	tests := []struct {
		name   string
		params common.BuildParams
		exists func(string) bool
		want   Plan
	}{
		{"no flags", common.BuildParams{MainPackage: "./cmd/fn"}, present, Plan{Build: true, Update: true}},
		{"build only", common.BuildParams{MainPackage: "./cmd/fn", Build: true}, missing, Plan{Build: true}},
		{"update with binary", common.BuildParams{MainPackage: "./cmd/fn", Update: true}, present, Plan{Update: true}},
		{"update without binary", common.BuildParams{MainPackage: "./cmd/fn", Update: true}, missing, Plan{Build: true, Update: true}},
		{"both", common.BuildParams{MainPackage: "./cmd/fn", Build: true, Update: true}, present, Plan{Build: true, Update: true}},
		{"archive", common.BuildParams{MainPackage: "./dist/fn.zip"}, missing, Plan{Update: true, FromArchive: true}},
		{"archive with update", common.BuildParams{MainPackage: "./dist/fn.zip", Update: true}, missing, Plan{Update: true, FromArchive: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePlan(tt.params, tt.exists)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePlanArchiveWithBuild(t *testing.T) {
	_, err := ResolvePlan(common.BuildParams{MainPackage: "./dist/fn.zip", Build: true}, func(string) bool { return true })
	var inputErr *common.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestResolvePlanChecksOutputPath(t *testing.T) {
	var checked string
	params := common.BuildParams{MainPackage: "./cmd/fn", Update: true, BinDir: "out"}
	_, err := ResolvePlan(params, func(path string) bool {
		checked = path
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, "out/fn", checked)
}
