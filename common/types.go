package common

import (
	"path/filepath"
	"strings"
)

const (
	ArchiveExtension   = ".zip"
	DefaultTags        = "lambda.norpc"
	DefaultBinDir      = "./bin/"
	DefaultSessionName = "lambda-build"
)

type BuildParams struct {
	MainPackage     string
	Functions       []string
	RoleArn         string
	RoleSessionName string
	Region          string
	Build           bool
	Update          bool
	Delete          bool
	Tags            string
	BinDir          string
}

// PackageName is the base name of the main package path, e.g. "my-func" for
// "./cmd/my-func" or "my-func.zip" for "./dist/my-func.zip".
func (p BuildParams) PackageName() string {
	return filepath.Base(p.MainPackage)
}

// IsArchive reports whether the main package argument is a pre-built archive.
func (p BuildParams) IsArchive() bool {
	return strings.HasSuffix(p.PackageName(), ArchiveExtension)
}

func (p BuildParams) DefaultFunctionName() string {
	name := p.PackageName()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// TargetFunctions returns the explicitly given functions, or the default
// function name derived from the main package.
func (p BuildParams) TargetFunctions() []string {
	functions := make([]string, 0, len(p.Functions))
	for _, f := range p.Functions {
		if !TrimAndCheckEmptyString(&f) {
			functions = append(functions, f)
		}
	}
	if len(functions) == 0 {
		functions = append(functions, p.DefaultFunctionName())
	}
	return functions
}

func (p BuildParams) OutputPath() string {
	return filepath.Join(p.binDir(), p.PackageName())
}

func (p BuildParams) ArchivePath() string {
	return filepath.Join(p.binDir(), p.PackageName()+ArchiveExtension)
}

func (p BuildParams) binDir() string {
	if p.BinDir == "" {
		return DefaultBinDir
	}
	return p.BinDir
}
