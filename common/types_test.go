package common

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFunctionName(t *testing.T) {
	tests := map[string]string{
		"./cmd/my-func":         "my-func",
		"cmd/my-func/":          "my-func",
		"./dist/my-func.zip":    "my-func",
		"my.handler":            "my",
		"/abs/path/to/function": "function",
	}
	for mainPackage, want := range tests {
		p := BuildParams{MainPackage: mainPackage}
		assert.Equal(t, want, p.DefaultFunctionName(), mainPackage)
	}
}

func TestIsArchive(t *testing.T) {
	assert.True(t, BuildParams{MainPackage: "./dist/fn.zip"}.IsArchive())
	assert.False(t, BuildParams{MainPackage: "./cmd/fn"}.IsArchive())
	assert.False(t, BuildParams{MainPackage: "./cmd/zip"}.IsArchive())
}

func TestTargetFunctions(t *testing.T) {
	p := BuildParams{MainPackage: "./cmd/my-func"}
	assert.Equal(t, []string{"my-func"}, p.TargetFunctions())

	p.Functions = []string{"a", " ", "b"}
	assert.Equal(t, []string{"a", "b"}, p.TargetFunctions())
}

func TestOutputAndArchivePath(t *testing.T) {
	p := BuildParams{MainPackage: "./cmd/my-func"}
	assert.Equal(t, filepath.Join("bin", "my-func"), p.OutputPath())
	assert.Equal(t, filepath.Join("bin", "my-func.zip"), p.ArchivePath())

	p.BinDir = "/tmp/out"
	assert.Equal(t, "/tmp/out/my-func", p.OutputPath())
	assert.Equal(t, "/tmp/out/my-func.zip", p.ArchivePath())
}
